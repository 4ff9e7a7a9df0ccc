package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// productColumns — список колонок products в порядке сканирования.
const productColumns = `
	id, gtin, name, description, brand,
	manufacturer_name, manufacturer_code, manufacturer_country,
	net_weight, weight_unit, status, created_by, images,
	created_at, updated_at, deleted_at`

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
// Все запросы, кроме явно оговорённых, исключают soft-deleted записи.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Insert создаёт продукт. Нарушение уникальности gtin поднимается
// как e.ErrDuplicateGTIN.
func (p *ProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (
			gtin, name, description, brand,
			manufacturer_name, manufacturer_code, manufacturer_country,
			net_weight, weight_unit, status, created_by, images
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + productColumns

	row := tx.QueryRow(ctx, query,
		model.GTIN, model.Name, model.Description, model.Brand,
		model.ManufacturerName, model.ManufacturerCode, model.ManufacturerCountry,
		model.NetWeight, model.WeightUnit, model.Status, model.CreatedBy, model.Images,
	)

	created, err := scanProduct(row)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrDuplicateGTIN)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(created), nil
}

// GetByID возвращает активный продукт по идентификатору.
func (p *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND deleted_at IS NULL`

	row := p.pool.QueryRow(ctx, query, id)

	model, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// UpdateByID применяет частичное обновление: меняются только присланные поля.
// Manufacturer заменяется целиком как объект-значение.
func (p *ProductRepo) UpdateByID(ctx context.Context, id string, updates *domain.ProductUpdate) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	sets := []string{"updated_at = NOW()"}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.GTIN != nil {
		addSet("gtin", *updates.GTIN)
	}
	if updates.Name != nil {
		addSet("name", *updates.Name)
	}
	if updates.Description != nil {
		addSet("description", *updates.Description)
	}
	if updates.Brand != nil {
		addSet("brand", *updates.Brand)
	}
	if updates.Manufacturer != nil {
		addSet("manufacturer_name", updates.Manufacturer.Name)
		addSet("manufacturer_code", updates.Manufacturer.Code)
		addSet("manufacturer_country", updates.Manufacturer.Country)
	}
	if updates.NetWeight != nil {
		addSet("net_weight", *updates.NetWeight)
	}
	if updates.WeightUnit != nil {
		addSet("weight_unit", string(*updates.WeightUnit))
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE products SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s`, strings.Join(sets, ", "), len(args), productColumns)

	row := tx.QueryRow(ctx, query, args...)

	model, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrDuplicateGTIN)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// ApproveIfPending переводит продукт в PUBLISHED, только если он всё ещё
// PENDING_REVIEW: статус входит в фильтр UPDATE, так что из двух
// конкурирующих одобрений выигрывает ровно одно.
func (p *ProductRepo) ApproveIfPending(ctx context.Context, id string) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL AND status = $3
		RETURNING ` + productColumns

	row := tx.QueryRow(ctx, query,
		string(domain.StatusPublished), id, string(domain.StatusPendingReview))

	model, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// SoftDelete помечает продукт удалённым.
func (p *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

// SetImages заменяет список ключей изображений продукта.
func (p *ProductRepo) SetImages(ctx context.Context, id string, images []string) (*domain.Product, error) {
	query := `
		UPDATE products
		SET images = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING ` + productColumns

	row := p.pool.QueryRow(ctx, query, images, id)

	model, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// List возвращает страницу активных продуктов по фильтру.
// Подстрочный поиск — регистронезависимый по name/brand/description;
// сортировка стабильная: created_at DESC, id DESC.
func (p *ProductRepo) List(ctx context.Context, req *usecase.ListProductsReq) ([]domain.Product, int64, error) {
	where := []string{"deleted_at IS NULL"}
	args := []any{}

	addFilter := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if req.Search != "" {
		addFilter(`(name ILIKE '%%' || $%[1]d || '%%' OR brand ILIKE '%%' || $%[1]d || '%%' OR description ILIKE '%%' || $%[1]d || '%%')`, req.Search)
	}
	if req.Brand != "" {
		addFilter("brand = $%d", req.Brand)
	}
	if req.Status != "" {
		addFilter("status = $%d", req.Status)
	}
	if req.CreatedBy != "" {
		addFilter("created_by = $%d", req.CreatedBy)
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products WHERE %s", whereClause)
	if err := p.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM products
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT %d OFFSET %d`,
		productColumns, whereClause, req.Limit, req.Page*req.Limit)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []*converter.ProductModel
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), total, nil
}

// scanProduct сканирует строку products в модель.
func scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	err := row.Scan(
		&model.ID, &model.GTIN, &model.Name, &model.Description, &model.Brand,
		&model.ManufacturerName, &model.ManufacturerCode, &model.ManufacturerCountry,
		&model.NetWeight, &model.WeightUnit, &model.Status, &model.CreatedBy, &model.Images,
		&model.CreatedAt, &model.UpdatedAt, &model.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}
