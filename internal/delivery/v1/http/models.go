package http

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

// manufacturerDTO — производитель в JSON-представлении.
type manufacturerDTO struct {
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Country string `json:"country,omitempty"`
}

// createProductRequest — тело POST /products.
type createProductRequest struct {
	GTIN         string          `json:"gtin"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Brand        string          `json:"brand"`
	Manufacturer manufacturerDTO `json:"manufacturer"`
	NetWeight    *json.Number    `json:"netWeight,omitempty"`
	WeightUnit   *string         `json:"weightUnit,omitempty"`
}

// updateProductRequest — тело PATCH /products/{id}. Все поля опциональны;
// поле status разбирается отдельно и всегда отклоняется операцией.
type updateProductRequest struct {
	GTIN         *string          `json:"gtin,omitempty"`
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Brand        *string          `json:"brand,omitempty"`
	Manufacturer *manufacturerDTO `json:"manufacturer,omitempty"`
	NetWeight    *json.Number     `json:"netWeight,omitempty"`
	WeightUnit   *string          `json:"weightUnit,omitempty"`
	Status       *string          `json:"status,omitempty"`
}

// productResponse — продукт в ответах API.
type productResponse struct {
	ID           string          `json:"id"`
	GTIN         string          `json:"gtin"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Brand        string          `json:"brand"`
	Manufacturer manufacturerDTO `json:"manufacturer"`
	NetWeight    *float64        `json:"netWeight,omitempty"`
	WeightUnit   *string         `json:"weightUnit,omitempty"`
	Status       string          `json:"status"`
	CreatedBy    string          `json:"createdBy"`
	Images       []string        `json:"images,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

// listProductsResponse — страница продуктов.
type listProductsResponse struct {
	Products   []productResponse `json:"products"`
	TotalCount int64             `json:"totalCount"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// productChangeResponse — запись журнала изменений.
type productChangeResponse struct {
	ID             string         `json:"id"`
	ProductID      string         `json:"productId"`
	ChangedBy      string         `json:"changedBy"`
	ChangedAt      time.Time      `json:"changedAt"`
	Operation      string         `json:"operation"`
	PreviousValues map[string]any `json:"previousValues"`
	NewValues      map[string]any `json:"newValues"`
}

// searchResultResponse — документ из полнотекстового индекса.
type searchResultResponse struct {
	ID          string `json:"id"`
	GTIN        string `json:"gtin"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

func toProductResponse(p *domain.Product) *productResponse {
	var weightUnit *string
	if p.WeightUnit != nil {
		u := string(*p.WeightUnit)
		weightUnit = &u
	}

	return &productResponse{
		ID:          p.ID,
		GTIN:        p.GTIN,
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Manufacturer: manufacturerDTO{
			Name:    p.Manufacturer.Name,
			Code:    p.Manufacturer.Code,
			Country: p.Manufacturer.Country,
		},
		NetWeight:  p.NetWeight,
		WeightUnit: weightUnit,
		Status:     string(p.Status),
		CreatedBy:  p.CreatedBy,
		Images:     p.Images,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toArrProductResponse(products []domain.Product) []productResponse {
	result := make([]productResponse, 0, len(products))
	for i := range products {
		result = append(result, *toProductResponse(&products[i]))
	}
	return result
}

func toProductChangeResponse(c *domain.ProductChange) *productChangeResponse {
	return &productChangeResponse{
		ID:             c.ID,
		ProductID:      c.ProductID,
		ChangedBy:      c.ChangedBy,
		ChangedAt:      c.ChangedAt,
		Operation:      string(c.Operation),
		PreviousValues: c.PreviousValues,
		NewValues:      c.NewValues,
	}
}

func toSearchResultResponse(doc *domain.ProductDocument) *searchResultResponse {
	return &searchResultResponse{
		ID:          doc.ID,
		GTIN:        doc.GTIN,
		Name:        doc.Name,
		Brand:       doc.Brand,
		Description: doc.Description,
		Status:      doc.Status,
	}
}
