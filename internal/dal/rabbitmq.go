package dal

import (
	"log"

	"wht-transfer-api/internal/config"

	"github.com/streadway/amqp"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	// exchange & queues
	if err := ch.ExchangeDeclare("transfer_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare failed: %v", err)
	}
	if _, err := ch.QueueDeclare("transfer_poll", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare transfer_poll failed: %v", err)
	}
	if err := ch.QueueBind("transfer_poll", "transfer.poll", "transfer_events", false, nil); err != nil {
		log.Fatalf("queue bind transfer_poll failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
