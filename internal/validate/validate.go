package validate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"wht-transfer-api/internal/constant"
	"wht-transfer-api/internal/dto"
	"wht-transfer-api/internal/scene"
)

// yuan 分转元，仅用于提示文案
func yuan(fen int64) string {
	return decimal.NewFromInt(fen).Div(decimal.NewFromInt(100)).String()
}

// TransferRequest 发起转账前的参数校验，按固定顺序短路返回首个失败原因
// 纯函数，无副作用，同一输入重复调用结果一致
func TransferRequest(req *dto.TransferRequest) error {
	// 1. 基础字段校验
	var missing []string
	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"appid", req.AppID != ""},
		{"out_bill_no", req.OutBillNo != ""},
		{"transfer_scene_id", req.TransferSceneID != ""},
		{"openid", req.OpenID != ""},
		{"transfer_amount", req.TransferAmount != 0},
		{"transfer_remark", req.TransferRemark != ""},
		{"transfer_scene_report_infos", req.TransferSceneReportInfos != nil},
	} {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("缺少必填字段: %s", strings.Join(missing, ", "))
	}

	// 2. 金额校验
	amount := req.TransferAmount
	if amount < constant.MinTransferAmount {
		return fmt.Errorf("转账金额不能小于%s元", yuan(constant.MinTransferAmount))
	}
	if amount > constant.MaxTransferAmount {
		return fmt.Errorf("转账金额不能大于%s元", yuan(constant.MaxTransferAmount))
	}

	// 3. 大额转账校验用户姓名
	if amount >= constant.UserNameRequiredAmount && req.UserName == "" {
		return fmt.Errorf("转账金额大于等于%s元时，必须提供加密后的用户姓名 user_name", yuan(constant.UserNameRequiredAmount))
	}

	// 4. 转账备注校验
	if len(req.TransferRemark) > constant.MaxTransferRemarkBytes {
		return fmt.Errorf("转账备注不能超过%d个字符", constant.MaxTransferRemarkBytes)
	}

	// 5. 场景校验，校验器只持有数字场景ID
	sc, err := scene.GetByID(req.TransferSceneID)
	if err != nil {
		return err
	}

	// 6. 用户收款感知校验
	if req.UserRecvPerception != "" && !sc.AllowPerception(req.UserRecvPerception) {
		return fmt.Errorf("当前场景(%s)下收款感知可选值为: %s", sc.Name, strings.Join(sc.UserPerceptions, ", "))
	}

	// 7. 报备信息校验，数量与info_type顺序逐位匹配
	infos := req.TransferSceneReportInfos
	if len(infos) != len(sc.ReportConfigs) {
		return fmt.Errorf("报备信息数量不匹配，需要%d个，实际提供%d个", len(sc.ReportConfigs), len(infos))
	}
	for i, cfg := range sc.ReportConfigs {
		info := infos[i]
		if info.InfoType == "" {
			return fmt.Errorf("报备信息缺少必填字段")
		}
		if info.InfoType != cfg.InfoType {
			return fmt.Errorf("报备信息类型不匹配: %s", info.InfoType)
		}
		if cfg.Required && info.InfoContent == "" {
			return fmt.Errorf("缺少必填的报备信息: %s", cfg.InfoType)
		}
	}

	return nil
}
