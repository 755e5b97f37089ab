package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/dparedesb/gymcontrol/internal/models"
)

// ValidationPublisher публикует записи журнала валидаций в обменник
// событий доступа.
type ValidationPublisher struct {
	ch *amqp.Channel
}

// NewValidationPublisher создает новый экземпляр ValidationPublisher.
func NewValidationPublisher(ch *amqp.Channel) *ValidationPublisher {
	return &ValidationPublisher{ch: ch}
}

// Publish отправляет запись журнала в очередь событий валидации.
func (p *ValidationPublisher) Publish(entry models.ValidationLog) error {
	return PublishMessage(p.ch, AccessExchange, RoutingKey, entry)
}
