package mq

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"wht-transfer-api/internal/dal"
	"wht-transfer-api/internal/dto"
)

// PublishTransferPoll 非终态转账单入轮询队列
func PublishTransferPoll(msg dto.TransferPollMessage) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(msg)
	err := dal.RabbitCh.Publish(
		"transfer_events",
		"transfer.poll",
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish transfer.poll failed: %v", err)
	}
	return err
}
