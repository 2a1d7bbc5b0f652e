package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReminderPayload é o que o scanner publica quando um follow-up vence.
type ReminderPayload struct {
	FollowUpID  string `json:"follow_up_id"`
	LeadID      string `json:"lead_id"`
	LeadName    string `json:"lead_name"`
	LeadEmail   string `json:"lead_email"`
	OwnerEmail  string `json:"owner_email"`
	Description string `json:"description"`
	ReminderAt  string `json:"reminder_at"` // RFC3339
}

type ReminderProducerInterface interface {
	PublishReminder(ctx context.Context, payload ReminderPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishReminder(ctx context.Context, payload ReminderPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
