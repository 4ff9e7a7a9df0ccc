package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

// SearchIndexer — полнотекстовый индекс продуктов. Вызовы Upsert/Delete
// выполняются в режиме best-effort: оркестратор логирует и проглатывает ошибки.
type SearchIndexer interface {
	Upsert(ctx context.Context, doc *domain.ProductDocument) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, limit int) ([]domain.ProductDocument, error)
}

// MessageProducer — запись сообщений в шину (Kafka). Используется outbox-воркером.
type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// ImagesInfra — загрузка и фоновая очистка изображений продуктов.
type ImagesInfra interface {
	UploadImage(ctx context.Context, req *UploadImageReq) (string, error)
	CleanupImages(keys []string)
}
