package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferBillM 商家转账单
type TransferBillM struct {
	ID             uint64           `gorm:"column:id;primaryKey;autoIncrement;not null" json:"id"`
	OutBillNo      string           `gorm:"column:out_bill_no;type:varchar(32);uniqueIndex;not null" json:"outBillNo"`  // 商户转账单号
	TransferBillNo string           `gorm:"column:transfer_bill_no;type:varchar(64)" json:"transferBillNo"`             // 微信转账单号
	AppID          string           `gorm:"column:app_id;type:varchar(32);not null" json:"appId"`                       // 商户AppID
	OpenID         string           `gorm:"column:openid;type:varchar(64);not null" json:"openid"`                      // 收款用户OpenID
	UserName       string           `gorm:"column:user_name;type:varchar(128)" json:"userName"`                         // 收款用户姓名(密文)
	SceneID        string           `gorm:"column:scene_id;type:varchar(16);not null" json:"sceneId"`                   // 转账场景ID
	SceneName      string           `gorm:"column:scene_name;type:varchar(32);not null" json:"sceneName"`               // 转账场景名称
	Amount         int64            `gorm:"column:amount;not null" json:"amount"`                                       // 转账金额，单位分
	AmountYuan     *decimal.Decimal `gorm:"column:amount_yuan;type:decimal(18,2)" json:"amountYuan"`                    // 转账金额，单位元
	Remark         string           `gorm:"column:remark;type:varchar(32);not null" json:"remark"`                      // 转账备注
	Perception     string           `gorm:"column:perception;type:varchar(32)" json:"perception"`                       // 用户收款感知
	State          string           `gorm:"column:state;type:varchar(32);not null" json:"state"`                        // 转账单状态
	FailReason     string           `gorm:"column:fail_reason;type:varchar(64)" json:"failReason"`                      // 失败原因
	PackageInfo    string           `gorm:"column:package_info;type:varchar(512)" json:"packageInfo"`                   // 用户确认跳转信息
	NotifyURL      string           `gorm:"column:notify_url;type:varchar(256)" json:"notifyUrl"`                       // 回调通知URL
	PollTimes      int              `gorm:"column:poll_times;not null;default:0" json:"pollTimes"`                      // 已轮询次数
	CreateTime     *time.Time       `gorm:"column:create_time;autoCreateTime;not null" json:"createTime"`               // 创建时间
	UpdateTime     *time.Time       `gorm:"column:update_time;autoUpdateTime;not null" json:"updateTime"`               // 更新时间
	FinishTime     *time.Time       `gorm:"column:finish_time" json:"finishTime"`                                       // 终态时间
}

func (TransferBillM) TableName() string {
	return "transfer_bill"
}
