package classify

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"wht-transfer-api/internal/constant"
)

// HTTPStatus 按HTTP状态码+业务错误码给出处理结论
//
// 处理建议：
//  1. 2XX: 继续处理业务层state
//  2. 429: 请求频率超限，延迟重试(建议等待2-5秒)，重试必须使用原商户单号
//  3. 500/502/503/504: 服务端错误。业务码可重试时必须原单重试，且建议先查单确认
//     订单不存在再重试，避免重复转账资金风险；不可重试时需联系技术支持
//  4. 其他(4XX等): 业务码可重试时原单重试，否则修复参数/签名/证书后再处理
//
// 该函数只给出结论，从不自行调度重试
func HTTPStatus(statusCode int, bizCode string, outBillNo string) (constant.Action, string) {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return constant.ActionContinue, ""

	case statusCode == 429:
		log.Warnf("请求频率超限，使用原商户单号重试，商户单号: %s", outBillNo)
		return constant.ActionRetry, "请求频率超限，请稍后使用原单号重试"

	case statusCode == 500 || statusCode == 502 || statusCode == 503 || statusCode == 504:
		if constant.IsRetriableBizCode(bizCode) {
			log.Warnf("服务端错误(可重试)，错误码: %s，商户单号: %s", bizCode, outBillNo)
			return constant.ActionRetry, fmt.Sprintf("服务端错误(%s)，请先查询订单状态，使用原单号重试", bizCode)
		}
		log.Errorf("服务端错误(不可重试)，错误码: %s，商户单号: %s", bizCode, outBillNo)
		return constant.ActionError, fmt.Sprintf("服务端错误(%s)，请检查错误信息并联系技术支持", bizCode)

	default:
		if constant.IsRetriableBizCode(bizCode) {
			log.Warnf("业务错误(可重试)，错误码: %s，商户单号: %s", bizCode, outBillNo)
			return constant.ActionRetry, fmt.Sprintf("业务错误(%s)，请先查询订单状态，使用原单号重试", bizCode)
		}
		log.Errorf("业务错误(不可重试)，错误码: %s，商户单号: %s", bizCode, outBillNo)
		return constant.ActionError, fmt.Sprintf("业务错误(%s)，请修复问题后再重试", bizCode)
	}
}

// TransportError 传输层错误(超时、连接失败)视同5xx可重试，原商户单号保持不变
func TransportError(err error, outBillNo string) (constant.Action, string) {
	log.Warnf("请求微信接口失败，商户单号: %s, err: %v", outBillNo, err)
	return constant.ActionRetry, fmt.Sprintf("请求微信接口失败: %v，请先查询订单状态，使用原单号重试", err)
}
