package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID                  string     `db:"id"`
	GTIN                string     `db:"gtin"`
	Name                string     `db:"name"`
	Description         string     `db:"description"`
	Brand               string     `db:"brand"`
	ManufacturerName    string     `db:"manufacturer_name"`
	ManufacturerCode    string     `db:"manufacturer_code"`
	ManufacturerCountry string     `db:"manufacturer_country"`
	NetWeight           *float64   `db:"net_weight"`
	WeightUnit          *string    `db:"weight_unit"`
	Status              string     `db:"status"`
	CreatedBy           string     `db:"created_by"`
	Images              []string   `db:"images"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           *time.Time `db:"updated_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
}

// ProductChangeModel представляет запись таблицы product_changes в PostgreSQL.
// Снимки хранятся как JSONB.
type ProductChangeModel struct {
	ID             string    `db:"id"`
	ProductID      string    `db:"product_id"`
	ChangedBy      string    `db:"changed_by"`
	ChangedAt      time.Time `db:"changed_at"`
	Operation      string    `db:"operation"`
	PreviousValues []byte    `db:"previous_values"`
	NewValues      []byte    `db:"new_values"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ProductID   string     `db:"product_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
