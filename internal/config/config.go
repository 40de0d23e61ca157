package config

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

type RabbitCfg struct {
	URL string `mapstructure:"url"`
}

type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WechatCfg 微信支付商户配置
// 商户号、证书序列号获取方式参考 https://pay.weixin.qq.com/doc/v3/merchant/4013070756
type WechatCfg struct {
	MchID              string `mapstructure:"mchId"`              // 商户号
	AppID              string `mapstructure:"appId"`              // 商户绑定的AppID
	APIv3Key           string `mapstructure:"apiV3Key"`           // APIv3密钥，用于回调报文及敏感字段加解密
	SerialNo           string `mapstructure:"serialNo"`           // 商户API证书序列号
	PrivateKeyPath     string `mapstructure:"privateKeyPath"`     // 商户API证书私钥文件路径
	PlatformSerialNo   string `mapstructure:"platformSerialNo"`   // 微信支付公钥/平台证书序列号
	PlatformCertPath   string `mapstructure:"platformCertPath"`   // 微信支付公钥/平台证书文件路径
	APIHost            string `mapstructure:"apiHost"`            // 接口域名，默认生产环境
	TimeoutSec         int    `mapstructure:"timeoutSec"`         // 单次请求超时秒数
	NotifyURL          string `mapstructure:"notifyUrl"`          // 转账结果回调地址，必须HTTPS且不携带参数
}

// TransferCfg 转账业务配置
type TransferCfg struct {
	PollIntervalSec   int `mapstructure:"pollIntervalSec"`   // 非终态单的轮询查单间隔
	PollMaxTimes      int `mapstructure:"pollMaxTimes"`      // 单笔最多轮询次数，超过后告警人工介入
	ConfirmTimeoutMin int `mapstructure:"confirmTimeoutMin"` // 用户确认收款超时分钟数
	InFlightTTLSec    int `mapstructure:"inFlightTTLSec"`    // 商户单号在途锁TTL
}

type Root struct {
	Server   ServerCfg   `mapstructure:"server"`
	Mysql    MysqlCfg    `mapstructure:"mysql"`
	RabbitMQ RabbitCfg   `mapstructure:"rabbitmq"`
	Redis    RedisCfg    `mapstructure:"redis"`
	Wechat   WechatCfg   `mapstructure:"wechat"`
	Transfer TransferCfg `mapstructure:"transfer"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if strings.TrimSpace(C.Wechat.APIHost) == "" {
		C.Wechat.APIHost = "https://api.mch.weixin.qq.com"
	}
	if C.Wechat.TimeoutSec <= 0 {
		C.Wechat.TimeoutSec = 10
	}
	if C.Transfer.PollIntervalSec <= 0 {
		C.Transfer.PollIntervalSec = 5
	}
	if C.Transfer.PollMaxTimes <= 0 {
		C.Transfer.PollMaxTimes = 60
	}
	if C.Transfer.ConfirmTimeoutMin <= 0 {
		C.Transfer.ConfirmTimeoutMin = 30
	}
	if C.Transfer.InFlightTTLSec <= 0 {
		C.Transfer.InFlightTTLSec = 30
	}
}

// WechatTimeout 微信接口请求超时
func WechatTimeout() time.Duration {
	return time.Duration(C.Wechat.TimeoutSec) * time.Second
}
