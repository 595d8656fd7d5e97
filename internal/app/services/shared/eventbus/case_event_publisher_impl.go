package eventbus

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
)

type caseEventPublisher struct {
	Channel *amqp091.Channel
	Queue   string
}

func NewCaseEventPublisher(channel *amqp091.Channel, queue string) contracts.CaseEventPublisher {
	return &caseEventPublisher{
		Channel: channel,
		Queue:   queue,
	}
}

func (p *caseEventPublisher) Publish(ctx context.Context, event *models.CaseEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         event.Transition,
		Headers: amqp091.Table{
			"message_type": "JSON",
			"case_id":      event.CaseID,
		},
	}

	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}
	return nil
}
