package main

import (
	"log"

	"github.com/ngocchau04/ktpm-webbansach/config"
	"github.com/ngocchau04/ktpm-webbansach/consumers"
	"github.com/ngocchau04/ktpm-webbansach/handlers"
	"github.com/ngocchau04/ktpm-webbansach/jwt"
	"github.com/ngocchau04/ktpm-webbansach/mailer"
	"github.com/ngocchau04/ktpm-webbansach/rabbitmq"
	"github.com/ngocchau04/ktpm-webbansach/routers"
)

func main() {
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Không đọc được file config: %v", err)
	}

	db, err := config.SetupMySQLConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Không kết nối được database: %v", err)
	}
	dbInstance, err := db.DB()
	if err != nil {
		log.Fatalf("Không lấy được connection pool: %v", err)
	}
	defer dbInstance.Close()

	rdb := config.SetupRedisConnection(cfg.Redis)
	defer rdb.Close()

	verifier := jwt.NewVerifier(cfg.JWT.Secret)

	// RabbitMQ không bắt buộc, thiếu thì chỉ mất phần gửi email
	rmq, err := rabbitmq.NewRabbitMQ(cfg.RabbitMQ)
	if err != nil {
		log.Printf("Không kết nối được RabbitMQ, bỏ qua phần gửi email: %v", err)
	} else {
		defer rmq.Close()
		if err := rmq.SetupQueues(); err != nil {
			log.Fatalf("Không khai báo được queue: %v", err)
		}
		handlers.SetRabbitMQ(rmq)
		consumers.StartOrderConsumer(rmq.Channel, cfg.RabbitMQ.OrderQueue, db, mailer.New(cfg.SMTP))
	}

	router := routers.SetupRouters(db, rdb, verifier, cfg.JWT.ExpireHours)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Không khởi động được server: %v", err)
	}
}
