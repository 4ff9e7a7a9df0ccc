package qdrant

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// SearchRepo — полнотекстовый индекс продуктов в Qdrant.
// Коллекция безвекторная: точки несут только payload,
// поиск идёт по текстовым индексам полей name/brand/description.
type SearchRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewSearchRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *SearchRepo {
	return &SearchRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upsert сохраняет или обновляет документ продукта в индексе.
func (q *SearchRepo) Upsert(ctx context.Context, doc *domain.ProductDocument) error {
	point := &qdrant.PointStruct{
		Id: qdrant.NewIDUUID(doc.ID),
		Payload: qdrant.NewValueMap(map[string]any{
			"gtin":        doc.GTIN,
			"name":        doc.Name,
			"brand":       doc.Brand,
			"description": doc.Description,
			"status":      doc.Status,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.CollectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete убирает документ продукта из индекса.
func (q *SearchRepo) Delete(ctx context.Context, id string) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.cfg.CollectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewIDUUID(id)),
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Search ищет продукты по текстовому совпадению в name/brand/description.
func (q *SearchRepo) Search(ctx context.Context, query string, limit int) ([]domain.ProductDocument, error) {
	points, err := q.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: q.cfg.CollectionName,
		Filter: &qdrant.Filter{
			Should: []*qdrant.Condition{
				qdrant.NewMatchText("name", query),
				qdrant.NewMatchText("brand", query),
				qdrant.NewMatchText("description", query),
			},
		},
		Limit:       qdrant.PtrOf(uint32(limit)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	docs := make([]domain.ProductDocument, 0, len(points))
	for _, point := range points {
		payload := point.GetPayload()
		docs = append(docs, domain.ProductDocument{
			ID:          point.GetId().GetUuid(),
			GTIN:        payload["gtin"].GetStringValue(),
			Name:        payload["name"].GetStringValue(),
			Brand:       payload["brand"].GetStringValue(),
			Description: payload["description"].GetStringValue(),
			Status:      payload["status"].GetStringValue(),
		})
	}

	return docs, nil
}
