package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"

	"wht-transfer-api/internal/config"
	"wht-transfer-api/internal/constant"
	"wht-transfer-api/internal/dal"
	"wht-transfer-api/internal/dao"
	"wht-transfer-api/internal/dto"
	"wht-transfer-api/internal/service"
)

// StartPollConsumer 转账单状态轮询
// 非终态单靠回调加定期查单双保险收敛，消息按原商户单号查单直至终态
func StartPollConsumer(svc *service.TransferOrderService) {
	if dal.RabbitCh == nil {
		log.Println("RabbitMQ channel not initialized")
		return
	}
	msgs, err := dal.RabbitCh.Consume("transfer_poll", "", false, false, false, false, nil)
	if err != nil {
		log.Printf("❌ consume transfer_poll failed: %v", err)
		return
	}
	log.Println("[POLL] RabbitMQ transfer poll consumer is starting")
	for d := range msgs {
		go handlePollMessage(svc, d)
	}
}

func handlePollMessage(svc *service.TransferOrderService, d amqp.Delivery) {
	var msg dto.TransferPollMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		log.Printf("❌ poll message unmarshal err: %v", err)
		d.Nack(false, false)
		return
	}

	interval := time.Duration(config.C.Transfer.PollIntervalSec) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	// 入队即带延迟语义，消费端自行等待一个轮询间隔
	time.Sleep(interval)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	outcome, err := svc.Query(ctx, msg.OutBillNo)
	if err != nil {
		log.Printf("❌ poll query failed: out_bill_no=%s err=%v", msg.OutBillNo, err)
		requeue(msg)
		d.Ack(false)
		return
	}

	_ = dao.NewTransferBillDao().IncrPollTimes(msg.OutBillNo)

	if outcome.Final {
		log.Printf("✅ transfer reached final state: out_bill_no=%s state=%s", msg.OutBillNo, outcome.State)
		d.Ack(false)
		return
	}
	if outcome.State == constant.StateWaitUserConfirm {
		// 待确认单不再轮询，等回调或用户确认超时后的人工处理
		log.Printf("⏸ transfer waiting user confirm: out_bill_no=%s", msg.OutBillNo)
		d.Ack(false)
		return
	}

	requeue(msg)
	d.Ack(false)
}

func requeue(msg dto.TransferPollMessage) {
	maxTimes := config.C.Transfer.PollMaxTimes
	if maxTimes <= 0 {
		maxTimes = 60
	}
	if msg.Attempt >= maxTimes {
		log.Printf("🚨 poll attempts exhausted, manual intervention needed: out_bill_no=%s attempts=%d",
			msg.OutBillNo, msg.Attempt)
		return
	}
	msg.Attempt++
	_ = PublishTransferPoll(msg)
}

// StartPendingSweeper 兜底扫描
// 回调丢失或进程重启后队列消息缺失时，把长期非终态的单重新拉回轮询
func StartPendingSweeper() {
	interval := time.Duration(config.C.Transfer.PollIntervalSec) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	sweep := 10 * interval

	confirmTimeout := time.Duration(config.C.Transfer.ConfirmTimeoutMin) * time.Minute
	if confirmTimeout <= 0 {
		confirmTimeout = 30 * time.Minute
	}

	ticker := time.NewTicker(sweep)
	defer ticker.Stop()
	for range ticker.C {
		bills, err := dao.NewTransferBillDao().ListPending(time.Now().Add(-sweep), 100)
		if err != nil {
			log.Printf("❌ pending sweep failed: %v", err)
			continue
		}
		requeued := 0
		for _, b := range bills {
			if b.State == string(constant.StateWaitUserConfirm) {
				// 待确认单只在超过确认时限后才重新查单，微信侧会将超时单置为FAIL
				if b.CreateTime == nil || time.Since(*b.CreateTime) < confirmTimeout {
					continue
				}
				log.Printf("⏰ wait-confirm timeout, requery: out_bill_no=%s", b.OutBillNo)
			}
			_ = PublishTransferPoll(dto.TransferPollMessage{OutBillNo: b.OutBillNo, Attempt: b.PollTimes})
			requeued++
		}
		if requeued > 0 {
			log.Printf("[SWEEP] requeued %d pending transfer bills", requeued)
		}
	}
}
