package domain

// Имена бизнес-полей, попадающих в журнал изменений.
// Ровно эти восемь полей подлежат аудиту; служебные поля (id, таймстемпы,
// картинки) в снимки не входят.
const (
	FieldGTIN         = "gtin"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldBrand        = "brand"
	FieldManufacturer = "manufacturer"
	FieldNetWeight    = "netWeight"
	FieldWeightUnit   = "weightUnit"
	FieldStatus       = "status"
)

// AuditDiff — снимки «до» и «после» по полям, присутствующим в обновлении.
// Пустые карты — сигнал «фактических изменений нет».
type AuditDiff struct {
	Previous map[string]any
	Next     map[string]any
}

// IsEmpty сообщает, что ни одно поле фактически не изменилось.
func (d *AuditDiff) IsEmpty() bool {
	return len(d.Previous) == 0 && len(d.Next) == 0
}

// ChangedFields возвращает имена фактически изменившихся полей.
func (d *AuditDiff) ChangedFields() []string {
	fields := make([]string, 0, len(d.Next))
	for _, name := range []string{
		FieldGTIN, FieldName, FieldDescription, FieldBrand,
		FieldManufacturer, FieldNetWeight, FieldWeightUnit, FieldStatus,
	} {
		if _, ok := d.Next[name]; ok {
			fields = append(fields, name)
		}
	}
	return fields
}

// ComputeAuditDiff сравнивает текущий продукт с частичным обновлением и
// возвращает снимки «до»/«после» только по полям, присутствующим в updates.
// Сравнение структурное: manufacturer сравнивается по содержимому,
// опциональные поля — с учётом nil. Поле, присланное с тем же значением,
// в diff не попадает; если не изменилось ничего — возвращается пустой diff.
func ComputeAuditDiff(current *Product, updates *ProductUpdate) *AuditDiff {
	diff := &AuditDiff{
		Previous: map[string]any{},
		Next:     map[string]any{},
	}

	if updates.GTIN != nil && *updates.GTIN != current.GTIN {
		diff.Previous[FieldGTIN] = current.GTIN
		diff.Next[FieldGTIN] = *updates.GTIN
	}

	if updates.Name != nil && *updates.Name != current.Name {
		diff.Previous[FieldName] = current.Name
		diff.Next[FieldName] = *updates.Name
	}

	if updates.Description != nil && *updates.Description != current.Description {
		diff.Previous[FieldDescription] = current.Description
		diff.Next[FieldDescription] = *updates.Description
	}

	if updates.Brand != nil && *updates.Brand != current.Brand {
		diff.Previous[FieldBrand] = current.Brand
		diff.Next[FieldBrand] = *updates.Brand
	}

	if updates.Manufacturer != nil && *updates.Manufacturer != current.Manufacturer {
		diff.Previous[FieldManufacturer] = manufacturerValues(current.Manufacturer)
		diff.Next[FieldManufacturer] = manufacturerValues(*updates.Manufacturer)
	}

	if updates.NetWeight != nil && !equalFloatPtr(updates.NetWeight, current.NetWeight) {
		diff.Previous[FieldNetWeight] = optionalFloat(current.NetWeight)
		diff.Next[FieldNetWeight] = *updates.NetWeight
	}

	if updates.WeightUnit != nil && !equalUnitPtr(updates.WeightUnit, current.WeightUnit) {
		diff.Previous[FieldWeightUnit] = optionalUnit(current.WeightUnit)
		diff.Next[FieldWeightUnit] = string(*updates.WeightUnit)
	}

	return diff
}

// BusinessSnapshot возвращает снимок восьми бизнес-полей продукта
// для записи CREATE в журнале изменений.
func BusinessSnapshot(p *Product) map[string]any {
	return map[string]any{
		FieldGTIN:         p.GTIN,
		FieldName:         p.Name,
		FieldDescription:  p.Description,
		FieldBrand:        p.Brand,
		FieldManufacturer: manufacturerValues(p.Manufacturer),
		FieldNetWeight:    optionalFloat(p.NetWeight),
		FieldWeightUnit:   optionalUnit(p.WeightUnit),
		FieldStatus:       string(p.Status),
	}
}

// ApplyUpdate возвращает копию продукта с применённым частичным обновлением.
func ApplyUpdate(current *Product, updates *ProductUpdate) *Product {
	next := *current
	if updates.GTIN != nil {
		next.GTIN = *updates.GTIN
	}
	if updates.Name != nil {
		next.Name = *updates.Name
	}
	if updates.Description != nil {
		next.Description = *updates.Description
	}
	if updates.Brand != nil {
		next.Brand = *updates.Brand
	}
	if updates.Manufacturer != nil {
		next.Manufacturer = *updates.Manufacturer
	}
	if updates.NetWeight != nil {
		w := *updates.NetWeight
		next.NetWeight = &w
	}
	if updates.WeightUnit != nil {
		u := *updates.WeightUnit
		next.WeightUnit = &u
	}
	return &next
}

func manufacturerValues(m Manufacturer) map[string]any {
	return map[string]any{
		"name":    m.Name,
		"code":    m.Code,
		"country": m.Country,
	}
}

func optionalFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func optionalUnit(u *WeightUnit) any {
	if u == nil {
		return nil
	}
	return string(*u)
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalUnitPtr(a, b *WeightUnit) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
