package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"wht-transfer-api/internal/classify"
	"wht-transfer-api/internal/constant"
	"wht-transfer-api/internal/dto"
	"wht-transfer-api/internal/idgen"
	"wht-transfer-api/internal/scene"
	"wht-transfer-api/internal/state"
	"wht-transfer-api/internal/validate"
	"wht-transfer-api/internal/wxpay"
)

// SensitiveCipher 敏感字段加密能力，由wxpay.Cipher提供
type SensitiveCipher interface {
	EncryptSensitive(plaintext string) (string, error)
}

// Orchestrator 转账编排器
// 负责组装请求、校验、调用微信接口、分类HTTP结果并解析业务状态
// 自身无共享可变状态，可被并发调用；重试排程由上层负责
type Orchestrator struct {
	appID            string
	platformSerialNo string
	defaultNotifyURL string
	transport        wxpay.Transport
	cipher           SensitiveCipher
}

// New 构造编排器
func New(appID, platformSerialNo, defaultNotifyURL string, transport wxpay.Transport, cipher SensitiveCipher) *Orchestrator {
	return &Orchestrator{
		appID:            appID,
		platformSerialNo: platformSerialNo,
		defaultNotifyURL: defaultNotifyURL,
		transport:        transport,
		cipher:           cipher,
	}
}

// CreateParams 发起转账参数
type CreateParams struct {
	// OutBillNo 重试同一笔逻辑转账时必须传入原单号；为空则生成新单号
	OutBillNo          string
	OpenID             string
	Amount             int64 // 单位为分
	Scene              string
	Remark             string
	ReportInfos        []dto.SceneReportInfo
	UserRecvPerception string
	UserName           string // 明文姓名，发送前加密
	NotifyURL          string
}

// CreateTransfer 发起商家转账
//
// 重要说明：
//  1. 同一笔转账订单的商户单号(out_bill_no)重入时，请求参数需保持一致
//  2. HTTP状态码为5XX或429时可以重试，但必须使用原商户单号
//  3. 失败路径返回的outcome始终携带本次使用的out_bill_no，重试时原样传回
//
// 返回error仅代表编程契约违例(如场景名无法解析)；业务失败通过outcome表达
func (o *Orchestrator) CreateTransfer(ctx context.Context, p CreateParams) (*dto.TransferOutcome, error) {
	sc, err := scene.GetByName(p.Scene)
	if err != nil {
		return nil, err
	}

	outBillNo := p.OutBillNo
	if outBillNo == "" {
		outBillNo = idgen.BillNo()
	}

	req := &dto.TransferRequest{
		AppID:                    o.appID,
		OutBillNo:                outBillNo,
		TransferSceneID:          sc.SceneID,
		OpenID:                   p.OpenID,
		TransferAmount:           p.Amount,
		TransferRemark:           p.Remark,
		TransferSceneReportInfos: p.ReportInfos,
	}

	// 可选参数
	extraHeaders := map[string]string{}
	if p.UserRecvPerception != "" {
		req.UserRecvPerception = p.UserRecvPerception
	}
	if p.UserName != "" {
		// 敏感信息加密，请求头携带加密所用公钥的序列号
		encrypted, err := o.cipher.EncryptSensitive(p.UserName)
		if err != nil {
			return nil, err
		}
		req.UserName = encrypted
		extraHeaders["Wechatpay-Serial"] = o.platformSerialNo
	}
	if p.NotifyURL != "" {
		req.NotifyURL = p.NotifyURL
	} else if o.defaultNotifyURL != "" {
		req.NotifyURL = o.defaultNotifyURL
	}

	// 参数校验失败时不触发任何网络请求
	if err := validate.TransferRequest(req); err != nil {
		log.Warnf("转账参数校验失败，商户单号: %s, 原因: %v", outBillNo, err)
		return &dto.TransferOutcome{
			Action:    constant.ActionError,
			OutBillNo: outBillNo,
			Msg:       err.Error(),
		}, nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("序列化转账请求失败: %w", err)
	}

	status, respBody, err := o.transport.Do(ctx, http.MethodPost, constant.CreateTransferPath, body, extraHeaders)
	if err != nil {
		action, msg := classify.TransportError(err, outBillNo)
		return &dto.TransferOutcome{Action: action, OutBillNo: outBillNo, Msg: msg}, nil
	}

	return o.handleResponse(status, respBody, outBillNo)
}

// QueryTransfer 按商户单号查询转账单
// 查询本身幂等无副作用，不附带重试策略；404单独表达为"订单不存在"
func (o *Orchestrator) QueryTransfer(ctx context.Context, outBillNo string) (*dto.TransferOutcome, error) {
	urlPath := fmt.Sprintf(constant.QueryTransferPath, outBillNo)
	status, respBody, err := o.transport.Do(ctx, http.MethodGet, urlPath, nil, nil)
	if err != nil {
		action, msg := classify.TransportError(err, outBillNo)
		return &dto.TransferOutcome{Action: action, OutBillNo: outBillNo, Msg: msg}, nil
	}

	if status == http.StatusNotFound {
		log.Infof("转账订单不存在，商户单号: %s", outBillNo)
		return &dto.TransferOutcome{
			Action:    constant.ActionError,
			OutBillNo: outBillNo,
			State:     constant.StateNotFound,
			StateMsg:  "订单不存在",
			Msg:       "转账订单不存在",
			Raw:       respBody,
		}, nil
	}

	return o.handleResponse(status, respBody, outBillNo)
}

// CancelTransfer 撤销转账
// 仅待确认单可撤销；受理结果同样经过HTTP分类与状态机解析
func (o *Orchestrator) CancelTransfer(ctx context.Context, outBillNo string) (*dto.TransferOutcome, error) {
	urlPath := fmt.Sprintf(constant.CancelTransferPath, outBillNo)
	status, respBody, err := o.transport.Do(ctx, http.MethodPost, urlPath, nil, nil)
	if err != nil {
		action, msg := classify.TransportError(err, outBillNo)
		return &dto.TransferOutcome{Action: action, OutBillNo: outBillNo, Msg: msg}, nil
	}

	return o.handleResponse(status, respBody, outBillNo)
}

// handleResponse HTTP层分类通过后再解析业务状态
func (o *Orchestrator) handleResponse(status int, respBody []byte, outBillNo string) (*dto.TransferOutcome, error) {
	var wxErr dto.WxErrorResp
	if status < 200 || status >= 300 {
		// 非2xx时包体为错误应答，解析失败也按空业务码分类
		_ = json.Unmarshal(respBody, &wxErr)
	}

	action, msg := classify.HTTPStatus(status, wxErr.Code, outBillNo)
	if action != constant.ActionContinue {
		if wxErr.Message != "" {
			msg = fmt.Sprintf("%s: %s", msg, wxErr.Message)
		}
		return &dto.TransferOutcome{
			Action:    action,
			OutBillNo: outBillNo,
			Msg:       msg,
			Raw:       respBody,
		}, nil
	}

	var bill dto.TransferBillResp
	if err := json.Unmarshal(respBody, &bill); err != nil {
		return nil, fmt.Errorf("解析微信应答失败: %w", err)
	}

	act := state.Interpret(bill.State, state.Context{OutBillNo: outBillNo, FailReason: bill.FailReason})

	return &dto.TransferOutcome{
		Action:         constant.ActionContinue,
		OutBillNo:      outBillNo,
		TransferBillNo: bill.TransferBillNo,
		State:          act.State,
		StateMsg:       act.StateMsg,
		NeedConfirm:    act.NeedConfirm,
		Final:          act.Final,
		Success:        act.Success,
		FailReason:     act.FailReason,
		Remediation:    act.Remediation,
		Msg:            act.Msg,
		CreateTime:     bill.CreateTime,
		UpdateTime:     bill.UpdateTime,
		TransferAmount: bill.TransferAmount,
		PackageInfo:    bill.PackageInfo,
		Raw:            respBody,
	}, nil
}
