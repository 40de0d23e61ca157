package wxpay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"wht-transfer-api/internal/config"
)

// Transport 微信支付接口的签名传输层抽象，便于在测试中替换
type Transport interface {
	// Do 发送已签名请求，返回HTTP状态码与应答包体
	Do(ctx context.Context, method, urlPath string, body []byte, extraHeaders map[string]string) (int, []byte, error)
}

// Client 微信支付v3接口客户端，负责签名与HTTP传输
type Client struct {
	host       string
	mchID      string
	serialNo   string
	signer     *Signer
	httpClient *http.Client
}

// NewClient 依据商户配置构造客户端
func NewClient(cfg config.WechatCfg) (*Client, error) {
	signer, err := NewSigner(cfg.PrivateKeyPath)
	if err != nil {
		return nil, err
	}
	return &Client{
		host:       cfg.APIHost,
		mchID:      cfg.MchID,
		serialNo:   cfg.SerialNo,
		signer:     signer,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
	}, nil
}

// Do 签名并发送请求
// 超时与取消由ctx控制，传输层错误原样上抛，由分类器按5xx口径处理
func (c *Client) Do(ctx context.Context, method, urlPath string, body []byte, extraHeaders map[string]string) (int, []byte, error) {
	sign, err := c.signer.Sign(method, urlPath, string(body))
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.host+urlPath, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("构建请求失败: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", fmt.Sprintf(
		`WECHATPAY2-SHA256-RSA2048 mchid="%s",nonce_str="%s",timestamp="%s",serial_no="%s",signature="%s"`,
		c.mchID, sign.Nonce, sign.Timestamp, c.serialNo, sign.Signature))
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("请求微信接口失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("读取微信应答失败: %w", err)
	}

	log.Infof("微信接口应答: %s %s, 状态码: %d", method, urlPath, resp.StatusCode)
	return resp.StatusCode, respBody, nil
}
