package domain

import "time"

// ProductStatus описывает состояние продукта в редакционном процессе.
type ProductStatus string

const (
	StatusPendingReview ProductStatus = "PENDING_REVIEW"
	StatusPublished     ProductStatus = "PUBLISHED"
)

// WeightUnit — единица измерения веса нетто.
type WeightUnit string

const (
	UnitGram       WeightUnit = "g"
	UnitKilogram   WeightUnit = "kg"
	UnitMilliliter WeightUnit = "ml"
	UnitLiter      WeightUnit = "l"
	UnitOunce      WeightUnit = "oz"
	UnitPound      WeightUnit = "lb"
)

// IsValid сообщает, входит ли единица в закрытый словарь.
func (u WeightUnit) IsValid() bool {
	switch u {
	case UnitGram, UnitKilogram, UnitMilliliter, UnitLiter, UnitOunce, UnitPound:
		return true
	default:
		return false
	}
}

// Manufacturer — встроенный объект-значение производителя.
type Manufacturer struct {
	Name    string
	Code    string
	Country string
}

// Product описывает продукт каталога
type Product struct {
	ID           string
	GTIN         string
	Name         string
	Description  string
	Brand        string
	Manufacturer Manufacturer
	NetWeight    *float64
	WeightUnit   *WeightUnit
	Status       ProductStatus
	CreatedBy    string
	Images       []string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

func NewProduct(gtin, name, description, brand string, manufacturer Manufacturer,
	netWeight *float64, weightUnit *WeightUnit, status ProductStatus, createdBy string) *Product {
	return &Product{
		GTIN:         gtin,
		Name:         name,
		Description:  description,
		Brand:        brand,
		Manufacturer: manufacturer,
		NetWeight:    netWeight,
		WeightUnit:   weightUnit,
		Status:       status,
		CreatedBy:    createdBy,
	}
}

// ProductUpdate описывает частичное обновление продукта:
// nil-поле означает «не менять».
type ProductUpdate struct {
	GTIN         *string
	Name         *string
	Description  *string
	Brand        *string
	Manufacturer *Manufacturer
	NetWeight    *float64
	WeightUnit   *WeightUnit
}

// IsEmpty сообщает, что обновление не содержит ни одного поля.
func (u *ProductUpdate) IsEmpty() bool {
	return u.GTIN == nil && u.Name == nil && u.Description == nil && u.Brand == nil &&
		u.Manufacturer == nil && u.NetWeight == nil && u.WeightUnit == nil
}
