package dto

// CreateTransferReq 发起转账对外接口参数
type CreateTransferReq struct {
	OpenID             string            `json:"openid" binding:"required"`                  // 收款用户openid
	Amount             int64             `json:"amount" binding:"required"`                  // 转账金额，单位为分
	Scene              string            `json:"scene" binding:"required"`                   // 转账场景名称，如 现金营销
	Remark             string            `json:"remark" binding:"required"`                  // 转账备注，用户收款时可见
	ReportInfos        []SceneReportInfo `json:"report_infos" binding:"required"`            // 转账报备信息，按场景要求传入
	UserRecvPerception string            `json:"user_recv_perception"`                       // 用户收款感知，可选
	UserName           string            `json:"user_name"`                                  // 收款用户姓名明文，大额必填，发送前加密
	NotifyURL          string            `json:"notify_url" binding:"omitempty,url"`         // 回调通知地址，可选
}

// QueryTransferReq 查询转账单接口参数
type QueryTransferReq struct {
	OutBillNo string `uri:"out_bill_no" binding:"required"` // 商户单号
}

// CancelTransferReq 撤销转账接口参数
type CancelTransferReq struct {
	OutBillNo string `uri:"out_bill_no" binding:"required"` // 商户单号
}
