package wxpay

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strconv"
	"time"
)

const nonceChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SignData 一次请求的签名数据
type SignData struct {
	Timestamp string
	Nonce     string
	Signature string
}

// Signer 微信支付v3请求签名器，SHA256-RSA2048
type Signer struct {
	privateKey *rsa.PrivateKey
}

// NewSigner 加载商户API证书私钥(PKCS#8 PEM)
func NewSigner(privateKeyPath string) (*Signer, error) {
	raw, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("加载商户私钥失败: %w", err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("加载商户私钥失败: 非法的PEM文件")
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		// 兼容PKCS#1格式私钥
		if k1, err1 := x509.ParsePKCS1PrivateKey(block.Bytes); err1 == nil {
			return &Signer{privateKey: k1}, nil
		}
		return nil, fmt.Errorf("解析商户私钥失败: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("商户私钥不是RSA私钥")
	}
	return &Signer{privateKey: rsaKey}, nil
}

// Sign 生成请求签名
// 待签名串: method\n path\n timestamp\n nonce\n body\n
func (s *Signer) Sign(method, urlPath, body string) (*SignData, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	nonce, err := randomNonce(32)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n", method, urlPath, timestamp, nonce, body)
	digest := sha256.Sum256([]byte(message))
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.privateKey, crypto.SHA256, digest[:])
	if err != nil {
		return nil, fmt.Errorf("生成请求签名失败: %w", err)
	}

	return &SignData{
		Timestamp: timestamp,
		Nonce:     nonce,
		Signature: base64.StdEncoding.EncodeToString(sig),
	}, nil
}

func randomNonce(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("生成随机串失败: %w", err)
	}
	for i := range buf {
		buf[i] = nonceChars[int(buf[i])%len(nonceChars)]
	}
	return string(buf), nil
}
