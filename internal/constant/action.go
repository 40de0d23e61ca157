package constant

// Action HTTP层分类结论，由响应分类器产出
// 分类器本身从不发起重试，重试排程(退避、最大次数)由调用方负责
type Action string

const (
	ActionContinue Action = "continue" // 继续处理业务层状态
	ActionRetry    Action = "retry"    // 可重试，必须使用原商户单号
	ActionError    Action = "error"    // 不可盲目重试，需先修正参数/签名/证书
)
