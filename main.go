package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"wht-transfer-api/internal/config"
	"wht-transfer-api/internal/dal"
	"wht-transfer-api/internal/handler"
	"wht-transfer-api/internal/idgen"
	"wht-transfer-api/internal/middleware"
	"wht-transfer-api/internal/mq"
	"wht-transfer-api/internal/service"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen
	idgen.Init(1)

	svc, err := service.NewTransferOrderService()
	if err != nil {
		log.Fatal(err)
	}

	// start consumers
	go mq.StartPollConsumer(svc)
	go mq.StartPendingSweeper()

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover(), middleware.RequestLogger())

	v1 := r.Group("/api/v1")
	{
		th := handler.NewTransferHandler(svc)
		v1.POST("/transfer", th.Create)
		v1.GET("/transfer/:out_bill_no", th.Query)
		v1.POST("/transfer/:out_bill_no/cancel", th.Cancel)

		nh := handler.NewNotifyHandler(svc)
		v1.POST("/notify/transfer", nh.TransferNotify)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
