package converter

import "github.com/DRSN-tech/catalog-backend/internal/domain"

// ProductCacheConverter преобразует продукты между domain и Redis-моделью.
type ProductCacheConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) *domain.Product
}

type ProductCacheConverterImpl struct{}

func NewProductCacheConverterImpl() *ProductCacheConverterImpl {
	return &ProductCacheConverterImpl{}
}

func (c *ProductCacheConverterImpl) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	var weightUnit *string
	if entity.WeightUnit != nil {
		u := string(*entity.WeightUnit)
		weightUnit = &u
	}

	return &ProductRedisModel{
		ID:                  entity.ID,
		GTIN:                entity.GTIN,
		Name:                entity.Name,
		Description:         entity.Description,
		Brand:               entity.Brand,
		ManufacturerName:    entity.Manufacturer.Name,
		ManufacturerCode:    entity.Manufacturer.Code,
		ManufacturerCountry: entity.Manufacturer.Country,
		NetWeight:           entity.NetWeight,
		WeightUnit:          weightUnit,
		Status:              string(entity.Status),
		CreatedBy:           entity.CreatedBy,
		Images:              entity.Images,
		CreatedAt:           entity.CreatedAt,
		UpdatedAt:           entity.UpdatedAt,
	}
}

func (c *ProductCacheConverterImpl) ToEntity(model *ProductRedisModel) *domain.Product {
	var weightUnit *domain.WeightUnit
	if model.WeightUnit != nil {
		u := domain.WeightUnit(*model.WeightUnit)
		weightUnit = &u
	}

	return &domain.Product{
		ID:          model.ID,
		GTIN:        model.GTIN,
		Name:        model.Name,
		Description: model.Description,
		Brand:       model.Brand,
		Manufacturer: domain.Manufacturer{
			Name:    model.ManufacturerName,
			Code:    model.ManufacturerCode,
			Country: model.ManufacturerCountry,
		},
		NetWeight:  model.NetWeight,
		WeightUnit: weightUnit,
		Status:     domain.ProductStatus(model.Status),
		CreatedBy:  model.CreatedBy,
		Images:     model.Images,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
