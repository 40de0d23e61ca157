package validate

import (
	"strings"
	"testing"

	"wht-transfer-api/internal/dto"
)

func validReq() *dto.TransferRequest {
	return &dto.TransferRequest{
		AppID:           "wx8888888888888888",
		OutBillNo:       "BILL123456789",
		TransferSceneID: "1000",
		OpenID:          "o4GgauInH_RCEdvrrNGrntXDuXXX",
		TransferAmount:  100,
		TransferRemark:  "测试转账",
		TransferSceneReportInfos: []dto.SceneReportInfo{
			{InfoType: "活动名称", InfoContent: "新年活动"},
			{InfoType: "奖励说明", InfoContent: "抽奖活动奖励"},
		},
	}
}

func TestValidRequest(t *testing.T) {
	req := validReq()
	if err := TransferRequest(req); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	// 纯函数，重复调用结果一致
	if err := TransferRequest(req); err != nil {
		t.Fatalf("second call rejected: %v", err)
	}
}

func TestMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.TransferRequest)
		want   string
	}{
		{"appid", func(r *dto.TransferRequest) { r.AppID = "" }, "appid"},
		{"out_bill_no", func(r *dto.TransferRequest) { r.OutBillNo = "" }, "out_bill_no"},
		{"transfer_scene_id", func(r *dto.TransferRequest) { r.TransferSceneID = "" }, "transfer_scene_id"},
		{"openid", func(r *dto.TransferRequest) { r.OpenID = "" }, "openid"},
		{"transfer_remark", func(r *dto.TransferRequest) { r.TransferRemark = "" }, "transfer_remark"},
		{"report_infos", func(r *dto.TransferRequest) { r.TransferSceneReportInfos = nil }, "transfer_scene_report_infos"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validReq()
			c.mutate(req)
			err := TransferRequest(req)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "缺少必填字段") || !strings.Contains(err.Error(), c.want) {
				t.Errorf("unexpected message: %v", err)
			}
		})
	}
}

func TestAmountRange(t *testing.T) {
	cases := []struct {
		amount int64
		valid  bool
	}{
		{29, false},
		{30, true},
		{100, true},
		{2000000, true},
		{2000001, false},
	}
	for _, c := range cases {
		req := validReq()
		req.TransferAmount = c.amount
		err := TransferRequest(req)
		if c.valid && err != nil {
			t.Errorf("amount %d rejected: %v", c.amount, err)
		}
		if !c.valid && err == nil {
			t.Errorf("amount %d accepted", c.amount)
		}
	}
}

func TestLargeAmountRequiresUserName(t *testing.T) {
	req := validReq()
	req.TransferAmount = 250000
	err := TransferRequest(req)
	if err == nil || !strings.Contains(err.Error(), "user_name") {
		t.Fatalf("expected user_name error, got: %v", err)
	}

	req.UserName = "encrypted-ciphertext"
	if err := TransferRequest(req); err != nil {
		t.Errorf("large amount with user_name rejected: %v", err)
	}

	// 恰好低于阈值时无需姓名
	req2 := validReq()
	req2.TransferAmount = 199999
	if err := TransferRequest(req2); err != nil {
		t.Errorf("amount below threshold rejected: %v", err)
	}
}

func TestRemarkByteLength(t *testing.T) {
	req := validReq()
	req.TransferRemark = strings.Repeat("a", 32)
	if err := TransferRequest(req); err != nil {
		t.Errorf("32-byte remark rejected: %v", err)
	}

	req.TransferRemark = strings.Repeat("a", 33)
	if err := TransferRequest(req); err == nil {
		t.Error("33-byte remark accepted")
	}

	// 中文按UTF-8字节数计算，11个汉字=33字节
	req.TransferRemark = strings.Repeat("转", 11)
	if err := TransferRequest(req); err == nil {
		t.Error("33-byte chinese remark accepted")
	}
	req.TransferRemark = strings.Repeat("转", 10)
	if err := TransferRequest(req); err != nil {
		t.Errorf("30-byte chinese remark rejected: %v", err)
	}
}

func TestUnknownScene(t *testing.T) {
	req := validReq()
	req.TransferSceneID = "8888"
	err := TransferRequest(req)
	if err == nil || !strings.Contains(err.Error(), "无效的转账场景ID") {
		t.Fatalf("expected scene error, got: %v", err)
	}
}

func TestPerception(t *testing.T) {
	req := validReq()
	req.UserRecvPerception = "现金奖励"
	if err := TransferRequest(req); err != nil {
		t.Errorf("allowed perception rejected: %v", err)
	}

	req.UserRecvPerception = "劳务报酬"
	if err := TransferRequest(req); err == nil {
		t.Error("perception outside scene accepted")
	}
}

func TestReportInfos(t *testing.T) {
	t.Run("count mismatch", func(t *testing.T) {
		req := validReq()
		req.TransferSceneReportInfos = req.TransferSceneReportInfos[:1]
		err := TransferRequest(req)
		if err == nil || !strings.Contains(err.Error(), "数量不匹配") {
			t.Fatalf("expected count mismatch, got: %v", err)
		}
	})

	t.Run("type mismatch at position", func(t *testing.T) {
		req := validReq()
		// 顺序颠倒也算类型不匹配，按位比较
		req.TransferSceneReportInfos[0], req.TransferSceneReportInfos[1] =
			req.TransferSceneReportInfos[1], req.TransferSceneReportInfos[0]
		err := TransferRequest(req)
		if err == nil || !strings.Contains(err.Error(), "类型不匹配") {
			t.Fatalf("expected type mismatch, got: %v", err)
		}
	})

	t.Run("required content empty", func(t *testing.T) {
		req := validReq()
		req.TransferSceneReportInfos[1].InfoContent = ""
		err := TransferRequest(req)
		if err == nil || !strings.Contains(err.Error(), "缺少必填的报备信息") {
			t.Fatalf("expected required content error, got: %v", err)
		}
	})

	t.Run("missing info_type", func(t *testing.T) {
		req := validReq()
		req.TransferSceneReportInfos[0].InfoType = ""
		err := TransferRequest(req)
		if err == nil || !strings.Contains(err.Error(), "报备信息缺少必填字段") {
			t.Fatalf("expected missing field error, got: %v", err)
		}
	})
}
