package converter

import "time"

// ProductRedisModel — представление продукта в кэше Redis.
type ProductRedisModel struct {
	ID                  string     `json:"id"`
	GTIN                string     `json:"gtin"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Brand               string     `json:"brand"`
	ManufacturerName    string     `json:"manufacturerName"`
	ManufacturerCode    string     `json:"manufacturerCode"`
	ManufacturerCountry string     `json:"manufacturerCountry"`
	NetWeight           *float64   `json:"netWeight,omitempty"`
	WeightUnit          *string    `json:"weightUnit,omitempty"`
	Status              string     `json:"status"`
	CreatedBy           string     `json:"createdBy"`
	Images              []string   `json:"images,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}
