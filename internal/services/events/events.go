// Package services публикует события аккаунтов в RabbitMQ.
package services

import (
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/account-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// UserRegisteredEvent уходит в очередь accounts.registered при регистрации.
type UserRegisteredEvent struct {
	UID          string    `json:"uid"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// EventsService публикует события аккаунтов через канал RabbitMQ.
type EventsService struct {
	ch *amqp.Channel
}

// NewEventsService создает новый экземпляр EventsService.
func NewEventsService(ch *amqp.Channel) *EventsService {
	return &EventsService{ch: ch}
}

// PublishUserRegistered публикует событие о новой регистрации.
func (s *EventsService) PublishUserRegistered(user *models.User) error {
	return rabbitmq.PublishMessage(s.ch, rabbitmq.Exchange, "registered", UserRegisteredEvent{
		UID:          user.UID,
		Name:         user.Name,
		Email:        user.Email,
		RegisteredAt: user.CreatedAt,
	})
}
