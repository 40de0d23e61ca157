package constant

// TransferState 微信商家转账单状态
// 状态流转参考 https://pay.weixin.qq.com/doc/v3/merchant/4012715191
type TransferState string

const (
	StateAccepted        TransferState = "ACCEPTED"          // 转账已受理
	StateProcessing      TransferState = "PROCESSING"        // 转账处理中
	StateWaitUserConfirm TransferState = "WAIT_USER_CONFIRM" // 待收款用户确认
	StateTransfering     TransferState = "TRANSFERING"       // 转账处理中（资金流转中）
	StateSuccess         TransferState = "SUCCESS"           // 转账成功
	StateFail            TransferState = "FAIL"              // 转账失败
	StateCanceling       TransferState = "CANCELING"         // 转账撤销中
	StateCancelled       TransferState = "CANCELLED"         // 转账已撤销

	// StateNotFound 本地合成状态：查单返回404，微信侧不存在该商户单号
	// 不属于微信状态词表，仅用于查询结果表达
	StateNotFound TransferState = "NOT_FOUND"
)

// StateMap 转账状态中文描述
var StateMap = map[TransferState]string{
	StateAccepted:        "转账已受理",
	StateProcessing:      "转账处理中",
	StateWaitUserConfirm: "待收款用户确认",
	StateTransfering:     "转账处理中",
	StateSuccess:         "转账成功",
	StateFail:            "转账失败",
	StateCanceling:       "转账撤销中",
	StateCancelled:       "转账已撤销",
}

// Desc 返回状态中文描述，未收录的状态返回"未知状态"
func (s TransferState) Desc() string {
	if msg, ok := StateMap[s]; ok {
		return msg
	}
	return "未知状态"
}

// IsKnown 状态是否在已知状态表内
func (s TransferState) IsKnown() bool {
	_, ok := StateMap[s]
	return ok
}

// IsAccepted 是否为受理初始态
func (s TransferState) IsAccepted() bool {
	return s == StateAccepted
}

// NeedConfirm 是否需要收款用户确认
// 注意：TRANSFERING 归入可重试态而非待确认态，以终态驱动的口径为准
func (s TransferState) NeedConfirm() bool {
	return s == StateWaitUserConfirm
}

// IsRetriable 是否为可原单重查的过渡态
func (s TransferState) IsRetriable() bool {
	return s == StateProcessing || s == StateTransfering
}

// IsCanceling 撤销已发起但尚未确认，需要继续轮询
func (s TransferState) IsCanceling() bool {
	return s == StateCanceling
}

// IsFinal 是否为终态（SUCCESS/FAIL/CANCELLED），终态后不再流转
func (s TransferState) IsFinal() bool {
	return s == StateSuccess || s == StateFail || s == StateCancelled
}

// FailReasonMap 转账失败原因及处理建议
// 每种失败原因对应不同的处理路径，均不允许原单自动重试
var FailReasonMap = map[string]string{
	"ACCOUNT_FROZEN":               "该用户账户被冻结，请引导用户核实账户状态",
	"REAL_NAME_CHECK_FAIL":         "收款人姓名校验不通过，请核实收款用户实名信息",
	"NAME_NOT_CORRECT":             "收款人实名校验不通过，请核实传入姓名与用户实名是否一致",
	"OPENID_INVALID":               "OpenID格式错误或者不属于商家公众账号",
	"TRANSFER_QUOTA_EXCEED":        "超过用户单笔收款额度，请核实产品设置",
	"DAY_RECEIVED_QUOTA_EXCEED":    "超过用户单日收款额度，请核实产品设置",
	"MONTH_RECEIVED_QUOTA_EXCEED":  "超过用户单月收款额度，请核实产品设置",
	"DAY_RECEIVED_COUNT_EXCEED":    "超过用户单日收款次数，请核实产品设置",
	"PRODUCT_AUTH_CHECK_FAIL":      "未开通该转账场景权限或权限被冻结，请核实产品权限状态",
	"OVERDUE_CLOSE":                "超过用户确认收款有效期，转账已关闭",
	"ID_CARD_NOT_CORRECT":          "收款人身份证校验不通过，请核实身份证信息",
	"ACCOUNT_NOT_EXIST":            "该用户账户不存在",
	"TRANSFER_RISK":                "该笔转账可能存在风险，已被微信风控拦截",
	"REALNAME_ACCOUNT_RECEIVED_QUOTA_EXCEED": "用户账户收款受限，请引导用户完善实名信息",
	"RECEIVE_ACCOUNT_NOT_PERMMIT":  "未配置该用户为转账收款人，请核实收款名单",
}

// FailReasonDesc 失败原因处理建议，未收录的原因原样返回
func FailReasonDesc(reason string) string {
	if desc, ok := FailReasonMap[reason]; ok {
		return desc
	}
	return "转账失败: " + reason
}
