package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:            {"操作成功", "Success"},
	CodeSystemError:        {"系统错误", "System error"},
	CodeDatabaseError:      {"数据库错误", "Database error"},
	CodeRedisError:         {"缓存服务错误", "Redis error"},
	CodeServiceUnavailable: {"服务暂时不可用", "Service unavailable"},
	CodeTimeout:            {"请求处理超时", "Request timeout"},
	CodeRateLimit:          {"请求频率超限", "Rate limited"},
	CodeInvalidParams:      {"参数格式错误", "Invalid parameters"},
	CodeMissingParams:      {"缺少必要参数", "Missing parameters"},
	CodeSignatureError:     {"签名验证失败", "Signature verification failed"},

	// 转账参数错误
	CodeTransferParamInvalid:  {"转账参数校验失败", "Transfer parameter invalid"},
	CodeTransferAmountInvalid: {"转账金额无效", "Transfer amount invalid"},
	CodeUserNameRequired:      {"大额转账必须提供收款用户姓名", "User name required for large transfer"},
	CodeRemarkTooLong:         {"转账备注超长", "Transfer remark too long"},
	CodeSceneNotFound:         {"转账场景不存在", "Transfer scene not found"},
	CodePerceptionInvalid:     {"收款感知取值无效", "User receive perception invalid"},
	CodeReportInfoMismatch:    {"报备信息与场景要求不匹配", "Scene report infos mismatch"},

	// 转账单错误
	CodeBillNotFound:   {"转账单不存在", "Transfer bill not found"},
	CodeBillInFlight:   {"该商户单号存在在途请求", "Transfer bill already in flight"},
	CodeBillExists:     {"转账单已存在", "Transfer bill already exists"},
	CodeTransferFailed: {"转账失败", "Transfer failed"},
	CodeNeedConfirm:    {"待收款用户确认", "Waiting for user confirmation"},
	CodeUnknownState:   {"未知转账状态，需人工介入", "Unknown transfer state, manual inspection required"},

	// 微信接口错误
	CodeWxPayRetry:       {"微信接口错误(可重试)", "WeChat Pay retriable error"},
	CodeWxPayError:       {"微信接口错误(不可重试)", "WeChat Pay non-retriable error"},
	CodeWxPayRateLimit:   {"微信接口频率限制", "WeChat Pay rate limited"},
	CodeWxPayServerError: {"微信支付服务端错误", "WeChat Pay server error"},
	CodeWxPaySignError:   {"微信支付签名验证失败", "WeChat Pay signature error"},
	CodeWxPayDecryptFail: {"回调报文解密失败", "Notify payload decrypt failed"},
}
