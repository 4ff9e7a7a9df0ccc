package usecase

import (
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

// PRODUCT USECASE

// Actor — действующий пользователь операции, поставляется слоем аутентификации.
type Actor struct {
	UserID string
	Role   domain.Role
}

// CreateProductReq — запрос на создание продукта.
type CreateProductReq struct {
	Actor        Actor
	GTIN         string
	Name         string
	Description  string
	Brand        string
	Manufacturer domain.Manufacturer
	NetWeight    *float64
	WeightUnit   *domain.WeightUnit
}

// UpdateProductReq — запрос на частичное обновление продукта.
// Status заполняется только для того, чтобы операция могла его отклонить:
// единственный путь смены статуса — ApproveProduct.
type UpdateProductReq struct {
	Actor   Actor
	ID      string
	Updates *domain.ProductUpdate
	Status  *string
}

// ListProductsReq — фильтр и пагинация списка продуктов.
type ListProductsReq struct {
	Search    string // подстрочный поиск по name/brand/description
	Brand     string
	Status    string
	CreatedBy string
	Page      int // 0-based
	Limit     int
}

// ListProductsRes — страница продуктов с общим количеством.
type ListProductsRes struct {
	Products   []domain.Product
	TotalCount int64
}

// UploadImageReq — запрос на загрузку одного изображения продукта.
type UploadImageReq struct {
	ProductID string
	Data      []byte
	MimeType  string
	Size      int64
	Name      string // оригинальное имя файла (для логов)
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "PENDING"
	Processing OutboxStatus = "PROCESSING"
	Processed  OutboxStatus = "PROCESSED"
)

// OutboxEvent — запись транзакционного outbox для публикации в шину.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   string
	ProductID   string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// WriteRawMessageReq — запрос на запись готового payload в шину сообщений.
type WriteRawMessageReq struct {
	ProductID string
	EventType string
	Payload   []byte
}

// MAPPERS

func NewOutboxEvent(eventID, eventType, productID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

func NewWriteRawMessageReq(productID, eventType string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		EventType: eventType,
		Payload:   payload,
	}
}

func NewListProductsRes(products []domain.Product, totalCount int64) *ListProductsRes {
	return &ListProductsRes{
		Products:   products,
		TotalCount: totalCount,
	}
}
