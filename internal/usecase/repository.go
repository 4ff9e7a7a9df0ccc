package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	UpdateByID(ctx context.Context, id string, updates *domain.ProductUpdate) (*domain.Product, error)
	// ApproveIfPending переводит продукт в PUBLISHED атомарно:
	// условие по текущему статусу входит в фильтр UPDATE,
	// при конкурентном одобрении выигрывает ровно один вызов.
	ApproveIfPending(ctx context.Context, id string) (*domain.Product, error)
	SoftDelete(ctx context.Context, id string) error
	SetImages(ctx context.Context, id string, images []string) (*domain.Product, error)
	List(ctx context.Context, req *ListProductsReq) ([]domain.Product, int64, error)
}

type ProductChangeRepository interface {
	Append(ctx context.Context, change *domain.ProductChange) (*domain.ProductChange, error)
	// ListByProduct возвращает записи журнала по продукту,
	// отсортированные по changed_at по убыванию.
	ListByProduct(ctx context.Context, productID string) ([]domain.ProductChange, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
