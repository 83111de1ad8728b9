package consumers

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"github.com/ngocchau04/ktpm-webbansach/mailer"
	"github.com/ngocchau04/ktpm-webbansach/models"
)

// Nhận sự kiện đơn hàng từ queue và gửi email cho khách
func StartOrderConsumer(ch *amqp.Channel, queue string, db *gorm.DB, sender *mailer.Mailer) {
	msgs, err := ch.Consume(
		queue,
		"bookstore-mailer", // consumer tag
		false,              // auto-ack
		false,              // exclusive
		false,              // no-local
		false,              // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("Failed to register consumer: %v", err)
	}

	go func() {
		for msg := range msgs {
			processOrderMessage(msg, db, sender)
		}
	}()
}

func processOrderMessage(msg amqp.Delivery, db *gorm.DB, sender *mailer.Mailer) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in message processing: %v", r)
		}
	}()

	parts := strings.Split(string(msg.Body), "|")
	if len(parts) < 2 {
		log.Printf("Invalid message format: %s", msg.Body)
		msg.Nack(false, false)
		return
	}

	orderID, err := strconv.Atoi(parts[0])
	if err != nil {
		log.Printf("Invalid order ID: %s", parts[0])
		msg.Nack(false, false)
		return
	}
	eventType := parts[1]

	var order models.Order
	err = db.Preload("Products").First(&order, orderID).Error
	if err != nil {
		log.Printf("Failed to load order %d: %v", orderID, err)
		msg.Nack(false, false)
		return
	}

	switch eventType {
	case "created":
		sendOrderCreatedMail(&order, sender)
	case "status_updated":
		sendStatusUpdatedMail(&order, sender)
	default:
		log.Printf("Unknown event type: %s", eventType)
	}

	msg.Ack(false)
}

func sendOrderCreatedMail(order *models.Order, sender *mailer.Mailer) {
	if order.Email == "" {
		return
	}

	body := fmt.Sprintf(
		"Xin chào %s,\n\nĐơn hàng #%d của bạn đã được tạo thành công.\nTổng tiền: %d VND.\n\nCảm ơn bạn đã mua sách tại cửa hàng!",
		order.Name, order.ID, order.Total,
	)
	if err := sender.Send(order.Email, fmt.Sprintf("Xác nhận đơn hàng #%d", order.ID), body); err != nil {
		log.Printf("Error sending email for order %d: %v", order.ID, err)
		return
	}
	log.Printf("Confirmation email sent for order %d", order.ID)
}

func sendStatusUpdatedMail(order *models.Order, sender *mailer.Mailer) {
	if order.Email == "" {
		return
	}

	body := fmt.Sprintf(
		"Xin chào %s,\n\nĐơn hàng #%d của bạn vừa chuyển sang trạng thái: %s.",
		order.Name, order.ID, order.Status,
	)
	if err := sender.Send(order.Email, fmt.Sprintf("Cập nhật đơn hàng #%d", order.ID), body); err != nil {
		log.Printf("Error sending email for order %d: %v", order.ID, err)
	}
}
