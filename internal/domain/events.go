package domain

import (
	"time"

	"github.com/google/uuid"
)

// Фиксированный словарь ключей маршрутизации доменных событий.
const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductApproved = "product.approved"
	EventProductDeleted  = "product.deleted"
)

// AggregateTypeProduct — тип агрегата в конверте события.
const AggregateTypeProduct = "Product"

// Envelope — конверт доменного события для шины сообщений.
type Envelope struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	OccurredAt    time.Time      `json:"occurredAt"`
	AggregateType string         `json:"aggregateType"`
	AggregateID   string         `json:"aggregateId"`
	Actor         *string        `json:"actor"`
	Data          map[string]any `json:"data"`
}

// NewEnvelope собирает конверт события. Идентификатор — случайный uuid,
// устойчивый к коллизиям при совпадении таймстемпов.
func NewEnvelope(eventType, aggregateID string, data map[string]any, actorID string) *Envelope {
	var actor *string
	if actorID != "" {
		actor = &actorID
	}

	return &Envelope{
		ID:            uuid.NewString(),
		Type:          eventType,
		OccurredAt:    time.Now().UTC(),
		AggregateType: AggregateTypeProduct,
		AggregateID:   aggregateID,
		Actor:         actor,
		Data:          data,
	}
}
