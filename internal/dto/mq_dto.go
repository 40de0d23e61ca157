package dto

// TransferPollMessage 转账单轮询任务消息
// ACCEPTED 及其他非终态单入队，消费者按原商户单号查单直至终态
type TransferPollMessage struct {
	OutBillNo string `json:"out_bill_no"`
	Attempt   int    `json:"attempt"` // 已轮询次数
}
