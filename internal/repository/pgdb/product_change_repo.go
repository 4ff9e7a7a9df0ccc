package pgdb

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductChangeRepo хранит журнал изменений продуктов.
// Записи неизменяемы: только вставка и чтение.
type ProductChangeRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductChangeConverter
}

func NewProductChangeRepo(pool *pgxpool.Pool, conv converter.ProductChangeConverter) *ProductChangeRepo {
	return &ProductChangeRepo{
		pool: pool,
		conv: conv,
	}
}

// Append добавляет запись журнала в рамках текущей транзакции.
func (p *ProductChangeRepo) Append(ctx context.Context, change *domain.ProductChange) (*domain.ProductChange, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := p.conv.ToModel(change)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO product_changes (
			product_id, changed_by, operation, previous_values, new_values
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, changed_at`

	if err := tx.QueryRow(ctx, query,
		model.ProductID,
		model.ChangedBy,
		model.Operation,
		model.PreviousValues,
		model.NewValues,
	).Scan(&model.ID, &model.ChangedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model)
}

// ListByProduct возвращает историю изменений продукта, новые записи первыми.
func (p *ProductChangeRepo) ListByProduct(ctx context.Context, productID string) ([]domain.ProductChange, error) {
	query := `
		SELECT id, product_id, changed_by, changed_at, operation, previous_values, new_values
		FROM product_changes
		WHERE product_id = $1
		ORDER BY changed_at DESC, id DESC`

	rows, err := p.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var changes []domain.ProductChange
	for rows.Next() {
		var model converter.ProductChangeModel
		if err := rows.Scan(
			&model.ID,
			&model.ProductID,
			&model.ChangedBy,
			&model.ChangedAt,
			&model.Operation,
			&model.PreviousValues,
			&model.NewValues,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		change, err := p.conv.ToEntity(&model)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		changes = append(changes, *change)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return changes, nil
}
