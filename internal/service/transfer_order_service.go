package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"wht-transfer-api/internal/config"
	"wht-transfer-api/internal/constant"
	"wht-transfer-api/internal/dal"
	"wht-transfer-api/internal/dao"
	"wht-transfer-api/internal/dto"
	"wht-transfer-api/internal/idgen"
	"wht-transfer-api/internal/model"
	"wht-transfer-api/internal/scene"
	"wht-transfer-api/internal/state"
	"wht-transfer-api/internal/transfer"
	"wht-transfer-api/internal/wxpay"
)

// ================== Redis 在途锁 ==================
const billInFlightKey = "transfer_inflight:"

// 同一次下单内对可重试结果的最大自动重试次数，均复用原商户单号
const maxCreateAttempts = 3

type TransferOrderService struct {
	billDao    *dao.TransferBillDao
	orch       *transfer.Orchestrator
	cipher     *wxpay.Cipher
	queryGroup singleflight.Group
}

func NewTransferOrderService() (*TransferOrderService, error) {
	wc := config.C.Wechat

	client, err := wxpay.NewClient(wc)
	if err != nil {
		return nil, fmt.Errorf("init wxpay client failed: %w", err)
	}
	cipher, err := wxpay.NewCipher(wc.APIv3Key, wc.PlatformCertPath)
	if err != nil {
		return nil, fmt.Errorf("init wxpay cipher failed: %w", err)
	}

	svc := &TransferOrderService{
		billDao: dao.NewTransferBillDao(),
		orch:    transfer.New(wc.AppID, wc.PlatformSerialNo, wc.NotifyURL, client, cipher),
		cipher:  cipher,
	}
	log.Println("TransferOrderService 初始化成功")
	return svc, nil
}

// Cipher 回调处理需要用它验签与解密报文
func (s *TransferOrderService) Cipher() *wxpay.Cipher {
	return s.cipher
}

// ================== 在途锁 ==================

// 防止同一商户单号被并发提交，锁随终态释放或TTL到期
func (s *TransferOrderService) acquireInFlight(outBillNo string) bool {
	ttl := time.Duration(config.C.Transfer.InFlightTTLSec) * time.Second
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	ok, err := dal.RedisClient.SetNX(dal.RedisCtx, billInFlightKey+outBillNo, 1, ttl).Result()
	if err != nil {
		// Redis 故障时放行，幂等性由微信侧的 out_bill_no 保证
		log.Errorf("acquire inflight lock failed: %v", err)
		return true
	}
	return ok
}

func (s *TransferOrderService) releaseInFlight(outBillNo string) {
	dal.RedisClient.Del(dal.RedisCtx, billInFlightKey+outBillNo)
}

// Create 发起商家转账（防 panic、自动原单重试、入库）
func (s *TransferOrderService) Create(ctx context.Context, req dto.CreateTransferReq) (outcome *dto.TransferOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[PANIC] Transfer Create panic: %v\n%s", r, debug.Stack())
			outcome = nil
			err = fmt.Errorf("internal error")
		}
	}()

	outBillNo := idgen.BillNo()
	if !s.acquireInFlight(outBillNo) {
		return nil, constant.NewError(constant.CodeBillInFlight)
	}
	defer s.releaseInFlight(outBillNo)

	params := transfer.CreateParams{
		OutBillNo:          outBillNo,
		OpenID:             req.OpenID,
		Amount:             req.Amount,
		Scene:              req.Scene,
		Remark:             req.Remark,
		ReportInfos:        req.ReportInfos,
		UserRecvPerception: req.UserRecvPerception,
		UserName:           req.UserName,
		NotifyURL:          req.NotifyURL,
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		outcome, err = s.orch.CreateTransfer(ctx, params)
		if err != nil {
			return nil, err
		}
		if outcome.Action != constant.ActionRetry {
			break
		}
		if attempt < maxCreateAttempts {
			log.Warnf("转账请求可重试: out_bill_no=%s attempt=%d msg=%s", outBillNo, attempt, outcome.Msg)
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	// 参数校验失败且请求未发出，不入库；凡是到过微信侧的单都要留痕，便于原单重试
	if outcome.Action == constant.ActionError && len(outcome.Raw) == 0 {
		return outcome, nil
	}

	if dbErr := s.insertBill(req, outcome); dbErr != nil {
		log.Errorf("转账单入库失败: out_bill_no=%s err=%v", outBillNo, dbErr)
	}
	return outcome, nil
}

func (s *TransferOrderService) insertBill(req dto.CreateTransferReq, outcome *dto.TransferOutcome) error {
	var m model.TransferBillM
	if err := copier.Copy(&m, &req); err != nil {
		return fmt.Errorf("copy transfer bill failed: %w", err)
	}

	sc, err := scene.GetByName(req.Scene)
	if err != nil {
		return err
	}

	yuan := decimal.NewFromInt(req.Amount).Div(decimal.NewFromInt(100))
	m.OutBillNo = outcome.OutBillNo
	m.TransferBillNo = outcome.TransferBillNo
	m.AppID = config.C.Wechat.AppID
	m.SceneID = sc.SceneID
	m.SceneName = sc.Name
	m.AmountYuan = &yuan
	m.Perception = req.UserRecvPerception
	m.State = string(outcome.State)
	m.FailReason = outcome.FailReason
	m.PackageInfo = outcome.PackageInfo
	if m.NotifyURL == "" {
		m.NotifyURL = config.C.Wechat.NotifyURL
	}
	if outcome.Final {
		now := time.Now()
		m.FinishTime = &now
	}
	return s.billDao.Insert(&m)
}

// Query 查询转账单，合并并发查询并回写本地状态
func (s *TransferOrderService) Query(ctx context.Context, outBillNo string) (*dto.TransferOutcome, error) {
	v, err, _ := s.queryGroup.Do(outBillNo, func() (interface{}, error) {
		outcome, err := s.orch.QueryTransfer(ctx, outBillNo)
		if err != nil {
			return nil, err
		}
		if outcome.State == constant.StateNotFound {
			if bill, _ := s.billDao.GetByOutBillNo(outBillNo); bill == nil {
				return nil, constant.NewError(constant.CodeBillNotFound)
			}
			// 本地有单而微信查不到，说明下单请求未到达微信，可原单重试
			log.Warnf("本地转账单在微信侧不存在: out_bill_no=%s", outBillNo)
			return outcome, nil
		}
		s.syncBillState(outcome)
		return outcome, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.TransferOutcome), nil
}

// Cancel 撤销转账，仅待确认单可撤销，结果以后续查单为准
func (s *TransferOrderService) Cancel(ctx context.Context, outBillNo string) (*dto.TransferOutcome, error) {
	bill, err := s.billDao.GetByOutBillNo(outBillNo)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, constant.NewError(constant.CodeBillNotFound)
	}

	if !s.acquireInFlight(outBillNo) {
		return nil, constant.NewError(constant.CodeBillInFlight)
	}
	defer s.releaseInFlight(outBillNo)

	outcome, err := s.orch.CancelTransfer(ctx, outBillNo)
	if err != nil {
		return nil, err
	}
	s.syncBillState(outcome)
	return outcome, nil
}

// ApplyNotify 将回调通知的终态落库，返回解释后的状态动作
func (s *TransferOrderService) ApplyNotify(res *dto.TransferNotifyResource) state.LifecycleAction {
	act := state.Interpret(res.State, state.Context{
		OutBillNo:  res.OutBillNo,
		FailReason: res.FailReason,
	})

	data := map[string]interface{}{
		"state":       res.State,
		"fail_reason": res.FailReason,
	}
	if res.TransferBillNo != "" {
		data["transfer_bill_no"] = res.TransferBillNo
	}
	if act.Final {
		data["finish_time"] = time.Now()
	}
	if err := s.billDao.UpdateState(res.OutBillNo, data); err != nil {
		log.Errorf("回调落库失败: out_bill_no=%s err=%v", res.OutBillNo, err)
	}
	if act.Final {
		s.releaseInFlight(res.OutBillNo)
	}
	return act
}

// 查单结果回写本地转账单
func (s *TransferOrderService) syncBillState(outcome *dto.TransferOutcome) {
	if outcome.State == "" || outcome.State == constant.StateNotFound {
		return
	}
	data := map[string]interface{}{
		"state":       string(outcome.State),
		"fail_reason": outcome.FailReason,
	}
	if outcome.TransferBillNo != "" {
		data["transfer_bill_no"] = outcome.TransferBillNo
	}
	if outcome.PackageInfo != "" {
		data["package_info"] = outcome.PackageInfo
	}
	if outcome.Final {
		data["finish_time"] = time.Now()
	}
	if err := s.billDao.UpdateState(outcome.OutBillNo, data); err != nil {
		log.Errorf("查单状态回写失败: out_bill_no=%s err=%v", outcome.OutBillNo, err)
	}
}
