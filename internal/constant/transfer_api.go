package constant

// 转账金额限制(单位:分)
const (
	MinTransferAmount = 30      // 最小转账金额0.3元
	MaxTransferAmount = 2000000 // 最大转账金额2万元

	// 转账金额达到该值(2000元)时必须传入加密后的收款用户姓名
	UserNameRequiredAmount = 200000
)

// 商户单号最大长度，只能由数字、大小写字母组成
const MaxOutBillNoLen = 32

// 转账备注最大长度(UTF-8字节数)
const MaxTransferRemarkBytes = 32

// 微信商家转账API路径
const (
	APIHost            = "https://api.mch.weixin.qq.com"
	CreateTransferPath = "/v3/fund-app/mch-transfer/transfer-bills"
	QueryTransferPath  = "/v3/fund-app/mch-transfer/transfer-bills/out-bill-no/%s"
	CancelTransferPath = "/v3/fund-app/mch-transfer/transfer-bills/out-bill-no/%s/cancel"
)

// RetriableBizCodes 可原单重试的业务错误码
// 命中时必须复用原商户单号重试，建议重试前先查单确认订单不存在，避免重复转账
var RetriableBizCodes = map[string]struct{}{
	"SYSTEM_ERROR":          {}, // 系统错误
	"NETWORK_ERROR":         {}, // 网络错误
	"FREQUENCY_LIMITED":     {}, // 频率限制
	"RESOURCE_INSUFFICIENT": {}, // 资源不足
	"BANK_ERROR":            {}, // 银行系统异常
}

// IsRetriableBizCode 业务错误码是否允许原单重试
func IsRetriableBizCode(code string) bool {
	_, ok := RetriableBizCodes[code]
	return ok
}
