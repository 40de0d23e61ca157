package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"wht-transfer-api/internal/constant"
	"wht-transfer-api/internal/dto"
	"wht-transfer-api/internal/idgen"
)

func TestMain(m *testing.M) {
	idgen.Init(1)
	os.Exit(m.Run())
}

// fakeTransport 以预置应答替代真实微信接口
type fakeTransport struct {
	status int
	body   string
	err    error

	calls    int
	lastPath string
	lastBody []byte
	lastHdrs map[string]string
}

func (f *fakeTransport) Do(_ context.Context, method, urlPath string, body []byte, headers map[string]string) (int, []byte, error) {
	f.calls++
	f.lastPath = urlPath
	f.lastBody = body
	f.lastHdrs = headers
	if f.err != nil {
		return 0, nil, f.err
	}
	return f.status, []byte(f.body), nil
}

type fakeCipher struct{}

func (fakeCipher) EncryptSensitive(plaintext string) (string, error) {
	return "enc:" + plaintext, nil
}

func newOrchestrator(ft *fakeTransport) *Orchestrator {
	return New("wx8888888888888888", "PUB_SERIAL_1", "", ft, fakeCipher{})
}

func cashParams() CreateParams {
	return CreateParams{
		OpenID: "o4GgauInH_RCEdvrrNGrntXDuXXX",
		Amount: 100,
		Scene:  "现金营销",
		Remark: "新年活动奖励",
		ReportInfos: []dto.SceneReportInfo{
			{InfoType: "活动名称", InfoContent: "新会员有礼"},
			{InfoType: "奖励说明", InfoContent: "注册会员抽奖一等奖"},
		},
	}
}

func TestCreateTransferAccepted(t *testing.T) {
	ft := &fakeTransport{status: 200, body: `{"state":"ACCEPTED","out_bill_no":"BILL123","transfer_bill_no":"1330000071100999991182020050700019480001","create_time":"2025-01-15T10:00:00+08:00"}`}
	o := newOrchestrator(ft)

	p := cashParams()
	p.OutBillNo = "BILL123"
	outcome, err := o.CreateTransfer(context.Background(), p)
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if outcome.Action != constant.ActionContinue {
		t.Errorf("action = %s, want continue", outcome.Action)
	}
	if outcome.State != constant.StateAccepted {
		t.Errorf("state = %s, want ACCEPTED", outcome.State)
	}
	if outcome.OutBillNo != "BILL123" {
		t.Errorf("out_bill_no = %s", outcome.OutBillNo)
	}
	if outcome.Final || outcome.NeedConfirm {
		t.Error("ACCEPTED must be non-final, no confirm")
	}
	if ft.calls != 1 {
		t.Errorf("transport calls = %d", ft.calls)
	}
	if !strings.Contains(string(ft.lastBody), `"transfer_scene_id":"1000"`) {
		t.Errorf("scene id not resolved into request: %s", ft.lastBody)
	}
}

func TestCreateTransferGeneratesBillNo(t *testing.T) {
	ft := &fakeTransport{status: 200, body: `{"state":"ACCEPTED"}`}
	o := newOrchestrator(ft)

	outcome, err := o.CreateTransfer(context.Background(), cashParams())
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if !strings.HasPrefix(outcome.OutBillNo, "BILL") {
		t.Errorf("generated bill no %q", outcome.OutBillNo)
	}
	if len(outcome.OutBillNo) > 32 {
		t.Errorf("bill no %q exceeds 32 chars", outcome.OutBillNo)
	}
}

func TestCreateTransferValidationShortCircuits(t *testing.T) {
	ft := &fakeTransport{status: 200, body: `{"state":"ACCEPTED"}`}
	o := newOrchestrator(ft)

	// 金额25万分(2500元)未携带姓名，校验失败且不得触发网络请求
	p := cashParams()
	p.Amount = 250000
	outcome, err := o.CreateTransfer(context.Background(), p)
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if outcome.Action != constant.ActionError {
		t.Errorf("action = %s, want error", outcome.Action)
	}
	if !strings.Contains(outcome.Msg, "user_name") {
		t.Errorf("msg should mention user_name: %q", outcome.Msg)
	}
	if ft.calls != 0 {
		t.Errorf("transport must not be called on validation failure, calls = %d", ft.calls)
	}
}

func TestCreateTransferEncryptsUserName(t *testing.T) {
	ft := &fakeTransport{status: 200, body: `{"state":"ACCEPTED"}`}
	o := newOrchestrator(ft)

	p := cashParams()
	p.Amount = 250000
	p.UserName = "张三"
	outcome, err := o.CreateTransfer(context.Background(), p)
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if outcome.Action != constant.ActionContinue {
		t.Fatalf("action = %s", outcome.Action)
	}
	if !strings.Contains(string(ft.lastBody), `"user_name":"enc:张三"`) {
		t.Errorf("user_name not encrypted in request: %s", ft.lastBody)
	}
	if ft.lastHdrs["Wechatpay-Serial"] != "PUB_SERIAL_1" {
		t.Errorf("Wechatpay-Serial header missing: %v", ft.lastHdrs)
	}
}

func TestCreateTransferRetryKeepsBillNo(t *testing.T) {
	ft := &fakeTransport{status: 500, body: `{"code":"BANK_ERROR","message":"银行系统异常"}`}
	o := newOrchestrator(ft)

	first, err := o.CreateTransfer(context.Background(), cashParams())
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if first.Action != constant.ActionRetry {
		t.Fatalf("action = %s, want retry", first.Action)
	}

	// 以原商户单号重试，请求体中的单号必须与上次完全一致
	p := cashParams()
	p.OutBillNo = first.OutBillNo
	second, err := o.CreateTransfer(context.Background(), p)
	if err != nil {
		t.Fatalf("retry CreateTransfer: %v", err)
	}
	if second.OutBillNo != first.OutBillNo {
		t.Errorf("bill no changed across retry: %q -> %q", first.OutBillNo, second.OutBillNo)
	}
	if !strings.Contains(string(ft.lastBody), fmt.Sprintf(`"out_bill_no":"%s"`, first.OutBillNo)) {
		t.Errorf("retry request does not carry original bill no: %s", ft.lastBody)
	}
	// 同一请求同一应答，分类结果必须一致
	if second.Action != first.Action {
		t.Errorf("classification not deterministic: %s vs %s", first.Action, second.Action)
	}
}

func TestCreateTransferNonRetriableServerError(t *testing.T) {
	ft := &fakeTransport{status: 500, body: `{"code":"NO_AUTH","message":"无权限"}`}
	o := newOrchestrator(ft)

	outcome, err := o.CreateTransfer(context.Background(), cashParams())
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if outcome.Action != constant.ActionError {
		t.Errorf("action = %s, want error", outcome.Action)
	}
	if !strings.Contains(outcome.Msg, "无权限") {
		t.Errorf("wx message not surfaced: %q", outcome.Msg)
	}
}

func TestCreateTransferRateLimited(t *testing.T) {
	ft := &fakeTransport{status: 429, body: `{"code":"FREQUENCY_LIMITED","message":"频率超限"}`}
	o := newOrchestrator(ft)

	outcome, err := o.CreateTransfer(context.Background(), cashParams())
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if outcome.Action != constant.ActionRetry {
		t.Errorf("action = %s, want retry", outcome.Action)
	}
}

func TestCreateTransferTransportError(t *testing.T) {
	ft := &fakeTransport{err: errors.New("context deadline exceeded")}
	o := newOrchestrator(ft)

	p := cashParams()
	p.OutBillNo = "BILL777"
	outcome, err := o.CreateTransfer(context.Background(), p)
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	if outcome.Action != constant.ActionRetry {
		t.Errorf("transport error should classify as retry, got %s", outcome.Action)
	}
	if outcome.OutBillNo != "BILL777" {
		t.Errorf("bill no lost on transport error: %q", outcome.OutBillNo)
	}
}

func TestCreateTransferUnknownScene(t *testing.T) {
	o := newOrchestrator(&fakeTransport{})
	p := cashParams()
	p.Scene = "未申请的场景"
	if _, err := o.CreateTransfer(context.Background(), p); err == nil {
		t.Fatal("unresolvable scene name must be a contract error")
	}
}

func TestQueryTransferSuccess(t *testing.T) {
	ft := &fakeTransport{status: 200, body: `{"out_bill_no":"BILL123","transfer_bill_no":"13300000711","state":"SUCCESS","transfer_amount":100,"update_time":"2025-01-15T10:05:00+08:00"}`}
	o := newOrchestrator(ft)

	outcome, err := o.QueryTransfer(context.Background(), "BILL123")
	if err != nil {
		t.Fatalf("QueryTransfer: %v", err)
	}
	if outcome.Action != constant.ActionContinue || !outcome.Final || !outcome.Success {
		t.Errorf("unexpected outcome: %+v", outcome)
	}
	if outcome.TransferAmount != 100 {
		t.Errorf("amount = %d", outcome.TransferAmount)
	}
	if ft.lastPath != "/v3/fund-app/mch-transfer/transfer-bills/out-bill-no/BILL123" {
		t.Errorf("query path = %s", ft.lastPath)
	}
}

func TestQueryTransferFailSurfacesReason(t *testing.T) {
	ft := &fakeTransport{status: 200, body: `{"out_bill_no":"BILL123","state":"FAIL","fail_reason":"ACCOUNT_FROZEN"}`}
	o := newOrchestrator(ft)

	outcome, err := o.QueryTransfer(context.Background(), "BILL123")
	if err != nil {
		t.Fatalf("QueryTransfer: %v", err)
	}
	if !outcome.Final || outcome.Success {
		t.Error("FAIL must be final, unsuccessful")
	}
	if outcome.FailReason != "ACCOUNT_FROZEN" || outcome.Remediation == "" {
		t.Errorf("fail reason not routed: %+v", outcome)
	}
}

func TestQueryTransferNotFound(t *testing.T) {
	ft := &fakeTransport{status: 404, body: `{"code":"NOT_FOUND","message":"记录不存在"}`}
	o := newOrchestrator(ft)

	outcome, err := o.QueryTransfer(context.Background(), "BILLMISSING")
	if err != nil {
		t.Fatalf("QueryTransfer: %v", err)
	}
	// 404是"订单不存在"的明确结论，区别于查询传输错误
	if outcome.State != constant.StateNotFound {
		t.Errorf("state = %s, want NOT_FOUND", outcome.State)
	}
	if outcome.Action != constant.ActionError {
		t.Errorf("action = %s", outcome.Action)
	}
}

func TestQueryTransferUnknownState(t *testing.T) {
	ft := &fakeTransport{status: 200, body: `{"out_bill_no":"BILL123","state":"BOGUS_STATE"}`}
	o := newOrchestrator(ft)

	outcome, err := o.QueryTransfer(context.Background(), "BILL123")
	if err != nil {
		t.Fatalf("QueryTransfer: %v", err)
	}
	// 未知状态不能吞成成功或失败
	if outcome.Final || outcome.Success {
		t.Error("unknown state must not be terminal")
	}
	if outcome.State.IsKnown() {
		t.Error("state should be outside known vocabulary")
	}
	if !strings.Contains(outcome.Msg, "BOGUS_STATE") {
		t.Errorf("unknown state not surfaced: %q", outcome.Msg)
	}
}

func TestCancelTransfer(t *testing.T) {
	ft := &fakeTransport{status: 200, body: `{"out_bill_no":"BILL123","state":"CANCELING"}`}
	o := newOrchestrator(ft)

	outcome, err := o.CancelTransfer(context.Background(), "BILL123")
	if err != nil {
		t.Fatalf("CancelTransfer: %v", err)
	}
	if outcome.State != constant.StateCanceling || outcome.Final {
		t.Errorf("unexpected outcome: %+v", outcome)
	}
	if ft.lastPath != "/v3/fund-app/mch-transfer/transfer-bills/out-bill-no/BILL123/cancel" {
		t.Errorf("cancel path = %s", ft.lastPath)
	}
}
