package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadConvertedPayload é o evento publicado por conversão bem-sucedida.
// É o insumo do fluxo futuro de Opportunity (DCI-7): este job só produz.
type LeadConvertedPayload struct {
	RunID         string    `json:"run_id"`
	LeadID        string    `json:"sf_lead_id"`
	ClientID      string    `json:"client_id"`
	AccountID     string    `json:"account_id"`
	ContactID     string    `json:"contact_id"`
	OpportunityID string    `json:"opportunity_id,omitempty"`
	ConvertedAt   time.Time `json:"converted_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadConverted(ctx context.Context, payload LeadConvertedPayload) error {
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
