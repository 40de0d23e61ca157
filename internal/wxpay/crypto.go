package wxpay

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
)

// Cipher 敏感字段加解密
// 加密使用微信支付公钥(RSA-OAEP)，回调报文解密使用APIv3密钥(AEAD_AES_256_GCM)
type Cipher struct {
	apiV3Key  []byte
	publicKey *rsa.PublicKey
}

// NewCipher 加载微信支付公钥/平台证书
func NewCipher(apiV3Key, platformCertPath string) (*Cipher, error) {
	if len(apiV3Key) != 32 {
		return nil, fmt.Errorf("APIv3密钥长度必须为32字节")
	}

	raw, err := os.ReadFile(platformCertPath)
	if err != nil {
		return nil, fmt.Errorf("加载微信支付平台证书失败: %w", err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("加载微信支付平台证书失败: 非法的PEM文件")
	}

	var pub *rsa.PublicKey
	switch block.Type {
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("解析平台证书失败: %w", err)
		}
		var ok bool
		pub, ok = cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("平台证书公钥不是RSA公钥")
		}
	default:
		// 微信支付公钥文件，PUBLIC KEY 块
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("解析微信支付公钥失败: %w", err)
		}
		var ok bool
		pub, ok = key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("微信支付公钥不是RSA公钥")
		}
	}

	return &Cipher{apiV3Key: []byte(apiV3Key), publicKey: pub}, nil
}

// EncryptSensitive 加密敏感字段(如收款用户姓名)
// 使用微信支付公钥RSA-OAEP加密，请求头需携带对应的Wechatpay-Serial
func (c *Cipher) EncryptSensitive(plaintext string) (string, error) {
	ciphertext, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, c.publicKey, []byte(plaintext), nil)
	if err != nil {
		return "", fmt.Errorf("加密敏感数据失败: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptSensitive 解密微信支付回调等场景下的敏感数据
// AEAD_AES_256_GCM，密钥为APIv3密钥
func (c *Cipher) DecryptSensitive(ciphertext, nonce, associatedData string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("解密敏感数据失败: base64解码错误: %w", err)
	}

	block, err := aes.NewCipher(c.apiV3Key)
	if err != nil {
		return nil, fmt.Errorf("解密敏感数据失败: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("解密敏感数据失败: %w", err)
	}

	plaintext, err := gcm.Open(nil, []byte(nonce), data, []byte(associatedData))
	if err != nil {
		return nil, fmt.Errorf("解密敏感数据失败: %w", err)
	}
	return plaintext, nil
}
