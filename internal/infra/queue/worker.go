package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReminderSender é o contrato do lado de email (gomail em infra/mail).
type ReminderSender interface {
	SendReminder(to, leadName, description, reminderAt string) error
}

type Worker struct {
	Channel *amqp.Channel
	Sender  ReminderSender
}

func NewWorker(ch *amqp.Channel, sender ReminderSender) *Worker {
	return &Worker{
		Channel: ch,
		Sender:  sender,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ReminderPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Lembrete recebido: follow-up %s (lead %s)",
				payload.FollowUpID, payload.LeadName)

			if err := w.Sender.SendReminder(
				payload.OwnerEmail, payload.LeadName, payload.Description, payload.ReminderAt,
			); err != nil {
				log.Printf("❌ [WORKER] Erro ao enviar lembrete: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Lembrete do lead %s enviado para %s",
					payload.LeadName, payload.OwnerEmail)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}
