package wxpay

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// NotifyHeaders 回调请求头中的验签字段
type NotifyHeaders struct {
	Timestamp string // Wechatpay-Timestamp
	Nonce     string // Wechatpay-Nonce
	Signature string // Wechatpay-Signature
	Serial    string // Wechatpay-Serial
}

// VerifyNotify 校验回调通知的真实性
// 验签串: timestamp\n nonce\n body\n，使用微信支付公钥验证SHA256-RSA2048签名
func (c *Cipher) VerifyNotify(h NotifyHeaders, body []byte) error {
	if h.Timestamp == "" || h.Nonce == "" || h.Signature == "" {
		return fmt.Errorf("回调验签失败: 缺少验签请求头")
	}

	sig, err := base64.StdEncoding.DecodeString(h.Signature)
	if err != nil {
		return fmt.Errorf("回调验签失败: 签名base64解码错误: %w", err)
	}

	message := fmt.Sprintf("%s\n%s\n%s\n", h.Timestamp, h.Nonce, string(body))
	digest := sha256.Sum256([]byte(message))
	if err := rsa.VerifyPKCS1v15(c.publicKey, crypto.SHA256, digest[:], sig); err != nil {
		return fmt.Errorf("回调验签失败: %w", err)
	}
	return nil
}
