package converter

import (
	"encoding/json"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []*ProductModel) []domain.Product
}

// ProductChangeConverter преобразует записи журнала изменений между domain
// и моделью PostgreSQL, включая (де)сериализацию JSONB-снимков.
type ProductChangeConverter interface {
	ToModel(entity *domain.ProductChange) (*ProductChangeModel, error)
	ToEntity(model *ProductChangeModel) (*domain.ProductChange, error)
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	var weightUnit *string
	if entity.WeightUnit != nil {
		u := string(*entity.WeightUnit)
		weightUnit = &u
	}

	return &ProductModel{
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
		DeletedAt:           entity.DeletedAt,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
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
		DeletedAt:  model.DeletedAt,
	}
}

func (c *ProductConverterImpl) ToArrEntity(models []*ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for _, model := range models {
		result = append(result, *c.ToEntity(model))
	}
	return result
}

type ProductChangeConverterImpl struct{}

func NewProductChangeConverterImpl() *ProductChangeConverterImpl {
	return &ProductChangeConverterImpl{}
}

func (c *ProductChangeConverterImpl) ToModel(entity *domain.ProductChange) (*ProductChangeModel, error) {
	previous, err := json.Marshal(entity.PreviousValues)
	if err != nil {
		return nil, err
	}

	next, err := json.Marshal(entity.NewValues)
	if err != nil {
		return nil, err
	}

	return &ProductChangeModel{
		ID:             entity.ID,
		ProductID:      entity.ProductID,
		ChangedBy:      entity.ChangedBy,
		ChangedAt:      entity.ChangedAt,
		Operation:      string(entity.Operation),
		PreviousValues: previous,
		NewValues:      next,
	}, nil
}

func (c *ProductChangeConverterImpl) ToEntity(model *ProductChangeModel) (*domain.ProductChange, error) {
	var previous, next map[string]any
	if err := json.Unmarshal(model.PreviousValues, &previous); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(model.NewValues, &next); err != nil {
		return nil, err
	}

	return &domain.ProductChange{
		ID:             model.ID,
		ProductID:      model.ProductID,
		ChangedBy:      model.ChangedBy,
		ChangedAt:      model.ChangedAt,
		Operation:      domain.ChangeOperation(model.Operation),
		PreviousValues: previous,
		NewValues:      next,
	}, nil
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   entity.EventType,
		ProductID:   entity.ProductID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   model.EventType,
		ProductID:   model.ProductID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}
	return result
}
