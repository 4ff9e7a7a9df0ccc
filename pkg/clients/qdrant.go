package clients

import (
	"context"
	"fmt"

	config "github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

type QdrantClient struct {
	Client *qdrant.Client
	cfg    *config.QdrantCfg
}

func NewQdrantClient(cfg *config.QdrantCfg) (*QdrantClient, error) {
	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.ApiKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &QdrantClient{
		Client: qdrantClient,
		cfg:    cfg,
	}, nil
}

// EnsureCollection создаёт безвекторную коллекцию полнотекстового индекса
// продуктов и текстовые индексы по полям name/brand/description.
func EnsureCollection(ctx context.Context, client *QdrantClient) error {
	exists, err := client.Client.CollectionExists(ctx, client.cfg.CollectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if !exists {
		// Коллекция без векторов: точки несут только payload.
		if err := client.Client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: client.cfg.CollectionName,
			VectorsConfig:  qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{}),
		}); err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
	}

	for _, field := range []string{"name", "brand", "description"} {
		if err := createTextIndex(ctx, client, field); err != nil {
			return fmt.Errorf("failed to create text index for %s: %w", field, err)
		}
	}

	return nil
}

func createTextIndex(ctx context.Context, client *QdrantClient, field string) error {
	_, err := client.Client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: client.cfg.CollectionName,
		FieldName:      field,
		FieldType:      qdrant.FieldType_FieldTypeText.Enum(),
		FieldIndexParams: &qdrant.PayloadIndexParams{
			IndexParams: &qdrant.PayloadIndexParams_TextIndexParams{
				TextIndexParams: &qdrant.TextIndexParams{
					Tokenizer: qdrant.TokenizerType_Word,
					Lowercase: qdrant.PtrOf(true),
				},
			},
		},
	})

	return err
}
