package dto

// NotifyResource 回调报文中的加密数据包，AEAD_AES_256_GCM
type NotifyResource struct {
	Algorithm      string `json:"algorithm"`
	Ciphertext     string `json:"ciphertext"`
	AssociatedData string `json:"associated_data"`
	OriginalType   string `json:"original_type"`
	Nonce          string `json:"nonce"`
}

// NotifyMessage 微信支付回调通知外层报文
type NotifyMessage struct {
	ID           string         `json:"id"`
	CreateTime   string         `json:"create_time"`
	ResourceType string         `json:"resource_type"`
	EventType    string         `json:"event_type"` // 如 MCHTRANSFER.BILL.FINISHED
	Summary      string         `json:"summary"`
	Resource     NotifyResource `json:"resource"`
}

// TransferNotifyResource 解密后的转账结果通知内容
type TransferNotifyResource struct {
	MchID          string `json:"mch_id"`
	OutBillNo      string `json:"out_bill_no"`
	TransferBillNo string `json:"transfer_bill_no"`
	State          string `json:"state"`
	TransferAmount int64  `json:"transfer_amount"`
	OpenID         string `json:"openid"`
	FailReason     string `json:"fail_reason,omitempty"`
	CreateTime     string `json:"create_time"`
	UpdateTime     string `json:"update_time"`
}

// NotifyAck 回调应答，微信要求按此格式返回
type NotifyAck struct {
	Code    string `json:"code"`    // SUCCESS / FAIL
	Message string `json:"message"` // 失败时的原因
}
