package dto

import (
	"encoding/json"

	"wht-transfer-api/internal/constant"
)

// SceneReportInfo 转账报备信息，数量和info_type顺序必须与场景要求一致
type SceneReportInfo struct {
	InfoType    string `json:"info_type" binding:"required"`    // 报备信息类型
	InfoContent string `json:"info_content" binding:"required"` // 报备信息内容
}

// TransferRequest 发起转账请求包体，字段名与微信商家转账API线上契约严格一致
// 同一商户单号重入时，业务字段必须与原单逐字节一致
type TransferRequest struct {
	AppID           string            `json:"appid"`
	OutBillNo       string            `json:"out_bill_no"`
	TransferSceneID string            `json:"transfer_scene_id"`
	OpenID          string            `json:"openid"`
	UserName        string            `json:"user_name,omitempty"` // 收款用户姓名密文，金额>=2000元必填
	TransferAmount  int64             `json:"transfer_amount"`     // 转账金额，单位为分
	TransferRemark  string            `json:"transfer_remark"`     // 转账备注，UTF8编码最多32字节
	NotifyURL       string            `json:"notify_url,omitempty"`
	UserRecvPerception string         `json:"user_recv_perception,omitempty"`
	TransferSceneReportInfos []SceneReportInfo `json:"transfer_scene_report_infos"`
}

// TransferBillResp 微信转账单接口应答，创建与查询共用该字段集
type TransferBillResp struct {
	MchID          string `json:"mch_id,omitempty"`
	OutBillNo      string `json:"out_bill_no"`
	TransferBillNo string `json:"transfer_bill_no"`
	AppID          string `json:"appid,omitempty"`
	State          string `json:"state"`
	TransferAmount int64  `json:"transfer_amount,omitempty"`
	TransferRemark string `json:"transfer_remark,omitempty"`
	FailReason     string `json:"fail_reason,omitempty"`
	OpenID         string `json:"openid,omitempty"`
	CreateTime     string `json:"create_time,omitempty"` // RFC3339
	UpdateTime     string `json:"update_time,omitempty"` // RFC3339
	PackageInfo    string `json:"package_info,omitempty"`
}

// WxErrorResp 微信接口错误应答
type WxErrorResp struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TransferOutcome 一次转账接口交互的结果
// action=continue 仅在HTTP 2xx时出现；state 仅在HTTP层continue后填充
type TransferOutcome struct {
	Action         constant.Action        `json:"action"`
	OutBillNo      string                 `json:"out_bill_no"`
	TransferBillNo string                 `json:"transfer_bill_no,omitempty"`
	State          constant.TransferState `json:"state,omitempty"`
	StateMsg       string                 `json:"state_msg,omitempty"`
	NeedConfirm    bool                   `json:"need_confirm"`
	Final          bool                   `json:"final"`
	Success        bool                   `json:"success"`
	FailReason     string                 `json:"fail_reason,omitempty"`
	Remediation    string                 `json:"remediation,omitempty"` // 失败原因对应的处理建议
	Msg            string                 `json:"msg,omitempty"`
	CreateTime     string                 `json:"create_time,omitempty"`
	UpdateTime     string                 `json:"update_time,omitempty"`
	TransferAmount int64                  `json:"transfer_amount,omitempty"`
	PackageInfo    string                 `json:"package_info,omitempty"` // 待确认单拉起收款确认页面所需跳转信息
	Raw            json.RawMessage        `json:"raw,omitempty"`          // 微信原始应答，便于排障
}
