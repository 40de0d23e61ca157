package wxpay

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const testAPIv3Key = "0123456789abcdef0123456789abcdef"

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func writeTestPrivateKey(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	path := filepath.Join(t.TempDir(), "apiclient_key.pem")
	buf := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(path, buf, 0600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	return path
}

func TestSignerSign(t *testing.T) {
	key := newTestKey(t)
	signer, err := NewSigner(writeTestPrivateKey(t, key))
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}

	sign, err := signer.Sign("POST", "/v3/fund-app/mch-transfer/transfer-bills", `{"out_bill_no":"BILL123"}`)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sign.Nonce) != 32 {
		t.Errorf("nonce length = %d, want 32", len(sign.Nonce))
	}

	// 用公钥回验签名串
	message := fmt.Sprintf("POST\n/v3/fund-app/mch-transfer/transfer-bills\n%s\n%s\n%s\n",
		sign.Timestamp, sign.Nonce, `{"out_bill_no":"BILL123"}`)
	digest := sha256.Sum256([]byte(message))
	sig, err := base64.StdEncoding.DecodeString(sign.Signature)
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}
	if err := rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, digest[:], sig); err != nil {
		t.Errorf("signature does not verify: %v", err)
	}
}

func TestEncryptSensitiveRoundTrip(t *testing.T) {
	key := newTestKey(t)
	c := &Cipher{apiV3Key: []byte(testAPIv3Key), publicKey: &key.PublicKey}

	ciphertext, err := c.EncryptSensitive("张三")
	if err != nil {
		t.Fatalf("EncryptSensitive: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		t.Fatalf("decode ciphertext: %v", err)
	}
	plain, err := rsa.DecryptOAEP(sha1.New(), rand.Reader, key, raw, nil)
	if err != nil {
		t.Fatalf("DecryptOAEP: %v", err)
	}
	if string(plain) != "张三" {
		t.Errorf("roundtrip mismatch: %q", plain)
	}
}

func TestDecryptSensitive(t *testing.T) {
	c := &Cipher{apiV3Key: []byte(testAPIv3Key)}

	block, _ := aes.NewCipher([]byte(testAPIv3Key))
	gcm, _ := cipher.NewGCM(block)
	nonce := "abcdef123456"
	aad := "transaction"
	sealed := gcm.Seal(nil, []byte(nonce), []byte(`{"state":"SUCCESS"}`), []byte(aad))
	ciphertext := base64.StdEncoding.EncodeToString(sealed)

	plain, err := c.DecryptSensitive(ciphertext, nonce, aad)
	if err != nil {
		t.Fatalf("DecryptSensitive: %v", err)
	}
	if string(plain) != `{"state":"SUCCESS"}` {
		t.Errorf("plaintext mismatch: %s", plain)
	}

	// 密钥不匹配时必须失败
	if _, err := c.DecryptSensitive(ciphertext, "wrongnonce12", aad); err == nil {
		t.Error("expected decrypt failure with wrong nonce")
	}
}

func TestVerifyNotify(t *testing.T) {
	key := newTestKey(t)
	c := &Cipher{apiV3Key: []byte(testAPIv3Key), publicKey: &key.PublicKey}

	body := []byte(`{"id":"EV-2018022511223320873"}`)
	h := NotifyHeaders{Timestamp: "1554208460", Nonce: "c5ac7061fccab6bf3e254dcf98995b8c", Serial: "SER123"}

	message := fmt.Sprintf("%s\n%s\n%s\n", h.Timestamp, h.Nonce, string(body))
	digest := sha256.Sum256([]byte(message))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	h.Signature = base64.StdEncoding.EncodeToString(sig)

	if err := c.VerifyNotify(h, body); err != nil {
		t.Errorf("VerifyNotify: %v", err)
	}

	// 报文被篡改时验签必须失败
	if err := c.VerifyNotify(h, []byte(`{"id":"tampered"}`)); err == nil {
		t.Error("expected verification failure on tampered body")
	}

	// 缺少验签头
	if err := c.VerifyNotify(NotifyHeaders{}, body); err == nil {
		t.Error("expected verification failure on missing headers")
	}
}
