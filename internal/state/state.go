package state

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"wht-transfer-api/internal/constant"
)

// Decision 调用方在当前转账状态下必须执行的动作
type Decision int

const (
	DecisionPersistAndPoll Decision = iota // 落库并安排异步轮询/等待回调
	DecisionKeepPolling                    // 过渡态，原单号继续轮询
	DecisionAwaitConfirm                   // 引导用户在微信中确认收款，设置确认超时
	DecisionFinalizeSuccess                // 终态成功，完成账务归档
	DecisionFinalizeFail                   // 终态失败，按失败原因走对应处理流程，禁止原单自动重试
	DecisionReleaseCancelled               // 终态已撤销，释放预占资金
	DecisionUnknownState                   // 未知状态，疑似接口版本不一致，需人工介入
)

func (d Decision) String() string {
	switch d {
	case DecisionPersistAndPoll:
		return "persist_and_poll"
	case DecisionKeepPolling:
		return "keep_polling"
	case DecisionAwaitConfirm:
		return "await_confirm"
	case DecisionFinalizeSuccess:
		return "finalize_success"
	case DecisionFinalizeFail:
		return "finalize_fail"
	case DecisionReleaseCancelled:
		return "release_cancelled"
	default:
		return "unknown_state"
	}
}

// Context 解析状态时的上下文
type Context struct {
	OutBillNo  string
	FailReason string // FAIL态时微信返回的失败原因
}

// LifecycleAction 状态机产出的决策与诊断信息
type LifecycleAction struct {
	Decision    Decision
	State       constant.TransferState
	StateMsg    string // 状态中文描述
	NeedConfirm bool   // 是否需要用户确认收款
	Final       bool   // 是否终态
	Success     bool   // 仅终态有意义
	FailReason  string
	Remediation string // 失败原因对应的处理建议
	Msg         string
}

// Interpret 解析微信返回的转账状态，给出调用方必须执行的动作
// 纯分类器：不做IO，持久化与通知副作用全部留给调用方
func Interpret(rawState string, ctx Context) LifecycleAction {
	s := constant.TransferState(rawState)
	act := LifecycleAction{
		State:    s,
		StateMsg: s.Desc(),
	}

	if rawState == "" {
		// 空状态与未知状态同样处理：既不是成功也不是失败
		log.Warnf("转账状态为空，商户单号: %s", ctx.OutBillNo)
		act.Decision = DecisionUnknownState
		act.Msg = "转账状态未知"
		return act
	}

	switch s {
	case constant.StateAccepted:
		// 受理成功只代表微信已登记该单，后续需轮询查单或等待回调扭转状态
		log.Infof("转账申请已受理，商户单号: %s", ctx.OutBillNo)
		act.Decision = DecisionPersistAndPoll
		act.Msg = "转账申请已受理"

	case constant.StateWaitUserConfirm:
		log.Infof("等待用户确认收款，商户单号: %s", ctx.OutBillNo)
		act.Decision = DecisionAwaitConfirm
		act.NeedConfirm = true
		act.Msg = "请在微信中确认收款"

	case constant.StateProcessing, constant.StateTransfering:
		// 一直停留在此状态时建议检查商户账户余额是否充足
		log.Infof("转账处理中，商户单号: %s, 状态: %s", ctx.OutBillNo, s)
		act.Decision = DecisionKeepPolling
		act.Msg = act.StateMsg

	case constant.StateCanceling:
		// 撤销已发起但未确认，继续轮询直至CANCELLED或FAIL
		log.Infof("转账撤销中，商户单号: %s", ctx.OutBillNo)
		act.Decision = DecisionKeepPolling
		act.Msg = act.StateMsg

	case constant.StateSuccess:
		log.Infof("转账成功，商户单号: %s", ctx.OutBillNo)
		act.Decision = DecisionFinalizeSuccess
		act.Final = true
		act.Success = true
		act.Msg = act.StateMsg

	case constant.StateFail:
		log.Errorf("转账失败，商户单号: %s，失败原因: %s", ctx.OutBillNo, ctx.FailReason)
		act.Decision = DecisionFinalizeFail
		act.Final = true
		act.FailReason = ctx.FailReason
		if ctx.FailReason != "" {
			act.Remediation = constant.FailReasonDesc(ctx.FailReason)
		}
		act.Msg = act.StateMsg

	case constant.StateCancelled:
		log.Warnf("转账已撤销，商户单号: %s", ctx.OutBillNo)
		act.Decision = DecisionReleaseCancelled
		act.Final = true
		act.Msg = act.StateMsg

	default:
		// 未知状态不能吞成成功或失败，单独上抛等待人工确认接口版本
		log.Errorf("未知转账状态: %s，商户单号: %s", rawState, ctx.OutBillNo)
		act.Decision = DecisionUnknownState
		act.Msg = fmt.Sprintf("未知状态: %s", rawState)
	}

	return act
}
