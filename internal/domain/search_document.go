package domain

// ProductDocument — денормализованное представление продукта
// для полнотекстового индекса.
type ProductDocument struct {
	ID          string
	GTIN        string
	Name        string
	Brand       string
	Description string
	Status      string
}

func NewProductDocument(p *Product) *ProductDocument {
	return &ProductDocument{
		ID:          p.ID,
		GTIN:        p.GTIN,
		Name:        p.Name,
		Brand:       p.Brand,
		Description: p.Description,
		Status:      string(p.Status),
	}
}
