package main

import (
	"context"
	"log"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"
	"Lee_Social/internal/repository/redis"
	"Lee_Social/internal/router"
	"Lee_Social/internal/service"
)

func main() {
	dsn := "user:password@tcp(127.0.0.1:3306)/social?charset=utf8mb4&parseTime=True"
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	// 连接 redis
	if err := redis.Init("127.0.0.1:6379", "", 0); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Follower{},
		&model.FollowerOutbox{},
		&model.Post{},
		&model.Feed{},
	)

	// outbox -> kafka 投递；没有 broker 时退回日志 sender
	sender := service.LogSender
	producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
		Brokers: []string{"127.0.0.1:9092"},
		Topic:   "follower-events",
	})
	if err == nil {
		defer producer.Close()
		sender = service.KafkaSender(producer)
	} else {
		log.Printf("kafka producer unavailable, using log sender: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	relayer := service.NewOutboxRelayer(&mysql.OutboxRepository{DB: mysql.DB}, sender)
	go relayer.Run(ctx)

	// Gin
	r := router.InitRouter()
	if err := r.Run(":8080"); err != nil {
		return
	}
}
