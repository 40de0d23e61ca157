package scene

import "fmt"

// ReportConfig 转账场景下需报备的一项内容，报备内容用户不可见
// 参考 https://pay.weixin.qq.com/doc/v3/merchant/4012711988#（3）按转账场景报备背景信息
type ReportConfig struct {
	InfoType string // 报备信息类型
	Required bool   // 是否必填
	Desc     string // 填写说明
}

// TransferScene 转账场景配置
// 在"商户平台-产品中心-商家转账"中申请转账场景权限后方可使用
type TransferScene struct {
	Name            string         // 场景名称
	SceneID         string         // 页面上获取到的转账场景ID
	UserPerceptions []string       // 用户在客户端收款时可感知的收款原因
	ReportConfigs   []ReportConfig // 需报备的内容，场景下有多个字段时需填写完整
}

// AllowPerception 收款感知是否在当前场景允许的取值范围内
func (s *TransferScene) AllowPerception(p string) bool {
	for _, v := range s.UserPerceptions {
		if v == p {
			return true
		}
	}
	return false
}

// 静态场景目录，进程启动即定型，运行期只读
var scenes = []*TransferScene{
	{
		Name:            "现金营销",
		SceneID:         "1000",
		UserPerceptions: []string{"活动奖励", "现金奖励"},
		ReportConfigs: []ReportConfig{
			{InfoType: "活动名称", Required: true, Desc: "请在信息内容描述用户参与活动的名称，如新会员有礼"},
			{InfoType: "奖励说明", Required: true, Desc: "请在信息内容描述用户因为什么奖励获取这笔资金，如注册会员抽奖一等奖"},
		},
	},
	{
		Name:            "佣金报酬",
		SceneID:         "1002",
		UserPerceptions: []string{"劳务报酬", "报销款", "企业补贴", "开工利是"},
		ReportConfigs: []ReportConfig{
			{InfoType: "岗位类型", Required: true, Desc: "请在信息内容描述收款用户的岗位类型，如外卖员、专家顾问"},
			{InfoType: "报酬说明", Required: true, Desc: "请在信息内容描述用户接收当前这笔报酬的原因，如7月份配送费，高温补贴"},
		},
	},
}

var (
	byName = make(map[string]*TransferScene, len(scenes))
	byID   = make(map[string]*TransferScene, len(scenes))
)

func init() {
	for _, s := range scenes {
		byName[s.Name] = s
		byID[s.SceneID] = s
	}
}

// GetByName 按场景名称查找
func GetByName(name string) (*TransferScene, error) {
	if s, ok := byName[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("转账场景不存在: %s", name)
}

// GetByID 按场景ID查找，校验器通常只持有请求里的transfer_scene_id
func GetByID(sceneID string) (*TransferScene, error) {
	if s, ok := byID[sceneID]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("无效的转账场景ID: %s", sceneID)
}
