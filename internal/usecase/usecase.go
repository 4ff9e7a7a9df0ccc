package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

type ProductUC interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error)
	ApproveProduct(ctx context.Context, actor Actor, id string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actor Actor, id string) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
	ListProductChanges(ctx context.Context, productID string) ([]domain.ProductChange, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]domain.ProductDocument, error)
	AttachImage(ctx context.Context, actor Actor, req *UploadImageReq) (*domain.Product, error)
	RemoveImage(ctx context.Context, actor Actor, productID, key string) (*domain.Product, error)
}
