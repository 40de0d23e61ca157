package constant

// 业务级错误码 (2xxx)

// 转账参数相关错误码
const (
	CodeTransferParamInvalid  = 2000 // 转账参数校验失败，请按提示修正参数后重试
	CodeTransferAmountInvalid = 2001 // 转账金额无效，金额必须为整数且在允许区间内
	CodeUserNameRequired      = 2002 // 大额转账必须提供加密后的收款用户姓名
	CodeRemarkTooLong         = 2003 // 转账备注超长，UTF8编码不能超过32字节
	CodeSceneNotFound         = 2004 // 转账场景不存在，请检查场景ID是否已申请
	CodePerceptionInvalid     = 2005 // 收款感知不在当前场景允许的取值范围内
	CodeReportInfoMismatch    = 2006 // 报备信息与场景要求不匹配
)

// 转账单相关错误码
const (
	CodeBillNotFound   = 2100 // 转账单不存在，请检查商户单号是否正确
	CodeBillInFlight   = 2101 // 该商户单号存在在途请求，请勿并发重复提交
	CodeBillExists     = 2102 // 转账单已存在，重入时请求参数需与原单保持一致
	CodeTransferFailed = 2103 // 转账失败，请根据失败原因处理后更换单号重试
	CodeNeedConfirm    = 2104 // 待收款用户确认，请引导用户在微信中确认收款
	CodeUnknownState   = 2105 // 微信返回了未知的转账状态，疑似接口版本不一致，需人工介入
)

// 微信接口调用相关错误码 (3xxx)
const (
	CodeWxPayRetry       = 3000 // 微信支付接口可重试错误，必须使用原商户单号重试
	CodeWxPayError       = 3001 // 微信支付接口不可重试错误，请修正后再处理
	CodeWxPayRateLimit   = 3002 // 微信支付接口频率限制，建议等待2-5秒后原单重试
	CodeWxPayServerError = 3003 // 微信支付服务端错误，重试前请先查单确认订单不存在
	CodeWxPaySignError   = 3004 // 微信支付签名验证失败，请检查商户证书与密钥配置
	CodeWxPayDecryptFail = 3005 // 回调报文解密失败，请检查APIv3密钥配置
)
