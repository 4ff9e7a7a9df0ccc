package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/gtin"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

const (
	// propagationTimeout ограничивает фоновое распространение изменений
	// (поисковый индекс, кэш), чтобы медленный индекс не задерживал shutdown.
	propagationTimeout = 2 * time.Second

	// maxPageSize — жёсткий предел размера страницы списка.
	maxPageSize = 100
)

// ProductUseCase реализует редакционный жизненный цикл продукта:
// создание с ролевым выводом статуса, частичное обновление с аудитом диффа,
// одобрение и best-effort распространение изменений в индекс и шину.
type ProductUseCase struct {
	productRepo ProductRepository
	changeRepo  ProductChangeRepository
	outboxRepo  OutboxRepository
	cacheRepo   CacheRepository
	searchRepo  SearchIndexer
	imagesInfra ImagesInfra
	dbPool      transaction.Transactional
	logger      logger.Logger
	wg          sync.WaitGroup
}

func NewProductUC(
	productRepo ProductRepository,
	changeRepo ProductChangeRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	searchRepo SearchIndexer,
	imagesInfra ImagesInfra,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		changeRepo:  changeRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		searchRepo:  searchRepo,
		imagesInfra: imagesInfra,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// CreateProduct создаёт продукт. EDITOR публикует сразу, остальные роли
// создают продукт в статусе PENDING_REVIEW. Запись продукта, запись журнала
// изменений и outbox-событие выполняются в одной транзакции.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	if err := validateCreate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	status := domain.StatusPendingReview
	if req.Actor.Role == domain.RoleEditor {
		status = domain.StatusPublished
	}

	product := domain.NewProduct(
		req.GTIN, req.Name, req.Description, req.Brand,
		req.Manufacturer, req.NetWeight, req.WeightUnit,
		status, req.Actor.UserID,
	)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	created, err := p.productRepo.Insert(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	change := domain.NewProductChange(
		created.ID, req.Actor.UserID, domain.OperationCreate,
		map[string]any{}, domain.BusinessSnapshot(created),
	)
	if _, err = p.changeRepo.Append(ctx, change); err != nil {
		return nil, e.Wrap(op, err)
	}

	err = p.enqueueEvent(ctx, domain.EventProductCreated, created.ID, req.Actor.UserID, map[string]any{
		"productId": created.ID,
		"status":    string(created.Status),
		"gtin":      created.GTIN,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.propagateUpsert(created)

	return created, nil
}

// UpdateProduct выполняет частичное обновление. PROVIDER может менять только
// собственные продукты в статусе PENDING_REVIEW; ключ status отклоняется для
// всех ролей — единственный путь смены статуса это ApproveProduct.
// Обновление без фактических изменений — идемпотентный no-op: без записи
// в журнал и без побочных эффектов.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	if req.Status != nil {
		return nil, e.Wrap(op, e.ErrStatusChangeNotAllowed)
	}

	if err := validateUpdate(req.Updates); err != nil {
		return nil, e.Wrap(op, err)
	}

	current, err := p.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.Actor.Role == domain.RoleProvider {
		if current.CreatedBy != req.Actor.UserID {
			return nil, e.Wrap(op, e.ErrNotProductOwner)
		}
		if current.Status != domain.StatusPendingReview {
			return nil, e.Wrap(op, e.ErrProviderNotPending)
		}
	}

	diff := domain.ComputeAuditDiff(current, req.Updates)
	if diff.IsEmpty() {
		return current, nil
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	updated, err := p.productRepo.UpdateByID(ctx, req.ID, req.Updates)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	change := domain.NewProductChange(
		updated.ID, req.Actor.UserID, domain.OperationUpdate,
		diff.Previous, diff.Next,
	)
	if _, err = p.changeRepo.Append(ctx, change); err != nil {
		return nil, e.Wrap(op, err)
	}

	err = p.enqueueEvent(ctx, domain.EventProductUpdated, updated.ID, req.Actor.UserID, map[string]any{
		"productId": updated.ID,
		"changed":   diff.ChangedFields(),
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.propagateUpsert(updated)

	return updated, nil
}

// ApproveProduct переводит продукт PENDING_REVIEW -> PUBLISHED.
// Доступно только EDITOR. Условие по статусу входит в фильтр UPDATE,
// поэтому при конкурентном одобрении выигрывает ровно один вызов.
func (p *ProductUseCase) ApproveProduct(ctx context.Context, actor Actor, id string) (*domain.Product, error) {
	const op = "ProductUseCase.ApproveProduct"

	if actor.Role != domain.RoleEditor {
		return nil, e.Wrap(op, e.ErrOnlyEditorsCanApprove)
	}

	current, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if current.Status != domain.StatusPendingReview {
		return nil, e.Wrap(op, e.ErrProductNotPending)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	approved, err := p.productRepo.ApproveIfPending(ctx, id)
	if err != nil {
		// Продукт успел смениться между чтением и условным UPDATE:
		// конкурирующее одобрение выиграло гонку.
		if errors.Is(err, e.ErrProductNotFound) {
			return nil, e.Wrap(op, e.ErrProductNotPending)
		}
		return nil, e.Wrap(op, err)
	}

	change := domain.NewProductChange(
		approved.ID, actor.UserID, domain.OperationStatusChange,
		map[string]any{domain.FieldStatus: string(domain.StatusPendingReview)},
		map[string]any{domain.FieldStatus: string(domain.StatusPublished)},
	)
	if _, err = p.changeRepo.Append(ctx, change); err != nil {
		return nil, e.Wrap(op, err)
	}

	err = p.enqueueEvent(ctx, domain.EventProductApproved, approved.ID, actor.UserID, map[string]any{
		"productId": approved.ID,
		"status":    string(domain.StatusPublished),
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.propagateUpsert(approved)

	return approved, nil
}

// DeleteProduct помечает продукт удалённым (soft delete). Доступно только EDITOR.
// Запись журнала не создаётся: аудируются только CREATE/UPDATE/STATUS_CHANGE.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, actor Actor, id string) error {
	const op = "ProductUseCase.DeleteProduct"

	if actor.Role != domain.RoleEditor {
		return e.Wrap(op, e.ErrOnlyEditorsCanDelete)
	}

	if _, err := p.productRepo.GetByID(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = p.productRepo.SoftDelete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	err = p.enqueueEvent(ctx, domain.EventProductDeleted, id, actor.UserID, map[string]any{
		"productId": id,
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	p.propagateDelete(id)

	return nil
}

// GetProduct возвращает продукт по идентификатору, используя кэш.
// Промах кэша дочитывается из БД с фоновым прогревом кэша.
func (p *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	if cached, err := p.cacheRepo.GetProduct(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновый прогрев кэша
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProduct(bgCtx, product); err != nil {
			p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// ListProducts возвращает страницу активных продуктов по фильтру.
// Размер страницы ограничен сверху, сортировка — по времени создания по убыванию.
func (p *ProductUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "ProductUseCase.ListProducts"

	if req.Page < 0 {
		req.Page = 0
	}
	if req.Limit <= 0 || req.Limit > maxPageSize {
		req.Limit = maxPageSize
	}

	products, total, err := p.productRepo.List(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewListProductsRes(products, total), nil
}

// ListProductChanges возвращает журнал изменений продукта, свежие записи первыми.
func (p *ProductUseCase) ListProductChanges(ctx context.Context, productID string) ([]domain.ProductChange, error) {
	const op = "ProductUseCase.ListProductChanges"

	if _, err := p.productRepo.GetByID(ctx, productID); err != nil {
		return nil, e.Wrap(op, err)
	}

	changes, err := p.changeRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return changes, nil
}

// SearchProducts выполняет полнотекстовый поиск по индексу.
func (p *ProductUseCase) SearchProducts(ctx context.Context, query string, limit int) ([]domain.ProductDocument, error) {
	const op = "ProductUseCase.SearchProducts"

	if strings.TrimSpace(query) == "" {
		return nil, e.Wrap(op, e.ErrEmptySearchQuery)
	}
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	docs, err := p.searchRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return docs, nil
}

// AttachImage загружает изображение в объектное хранилище и добавляет ключ
// к продукту. Доступно EDITOR и владельцу-поставщику.
func (p *ProductUseCase) AttachImage(ctx context.Context, actor Actor, req *UploadImageReq) (*domain.Product, error) {
	const op = "ProductUseCase.AttachImage"

	if len(req.Data) == 0 {
		return nil, e.Wrap(op, e.ErrNoImage)
	}

	current, err := p.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := authorizeImageChange(actor, current); err != nil {
		return nil, e.Wrap(op, err)
	}

	key, err := p.imagesInfra.UploadImage(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := p.productRepo.SetImages(ctx, current.ID, append(current.Images, key))
	if err != nil {
		// Запись в БД не удалась — подчищаем осиротевший объект.
		p.imagesInfra.CleanupImages([]string{key})
		return nil, e.Wrap(op, err)
	}

	p.propagateUpsert(updated)

	return updated, nil
}

// RemoveImage убирает ключ изображения с продукта и удаляет объект фоном.
func (p *ProductUseCase) RemoveImage(ctx context.Context, actor Actor, productID, key string) (*domain.Product, error) {
	const op = "ProductUseCase.RemoveImage"

	current, err := p.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := authorizeImageChange(actor, current); err != nil {
		return nil, e.Wrap(op, err)
	}

	images := make([]string, 0, len(current.Images))
	found := false
	for _, k := range current.Images {
		if k == key {
			found = true
			continue
		}
		images = append(images, k)
	}
	if !found {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	updated, err := p.productRepo.SetImages(ctx, current.ID, images)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.imagesInfra.CleanupImages([]string{key})
	p.propagateUpsert(updated)

	return updated, nil
}

// WaitForPropagation ожидает завершения фоновых задач распространения
// с учётом таймаута завершения приложения.
func (p *ProductUseCase) WaitForPropagation(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enqueueEvent кладёт конверт доменного события в транзакционный outbox.
// Доставку в Kafka выполняет воркер после коммита; сбой доставки никогда
// не влияет на результат операции.
func (p *ProductUseCase) enqueueEvent(ctx context.Context, eventType, productID, actorID string, data map[string]any) error {
	envelope := domain.NewEnvelope(eventType, productID, data, actorID)

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	_, err = p.outboxRepo.Create(ctx, NewOutboxEvent(envelope.ID, envelope.Type, productID, payload))
	return err
}

// propagateUpsert фоново обновляет поисковый индекс и сбрасывает кэш.
// Ошибки логируются и проглатываются: распространение не влияет на результат
// завершившейся операции.
func (p *ProductUseCase) propagateUpsert(product *domain.Product) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), propagationTimeout)
		defer cancel()

		if err := p.cacheRepo.DeleteProduct(ctx, product.ID); err != nil {
			p.logger.Warnf("Failed to invalidate product cache: product_id=%s: %v", product.ID, err)
		}

		if err := p.searchRepo.Upsert(ctx, domain.NewProductDocument(product)); err != nil {
			p.logger.Warnf("Failed to upsert product into search index: product_id=%s: %v", product.ID, err)
		}
	}()
}

// propagateDelete фоново убирает продукт из индекса и кэша.
func (p *ProductUseCase) propagateDelete(id string) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), propagationTimeout)
		defer cancel()

		if err := p.cacheRepo.DeleteProduct(ctx, id); err != nil {
			p.logger.Warnf("Failed to invalidate product cache: product_id=%s: %v", id, err)
		}

		if err := p.searchRepo.Delete(ctx, id); err != nil {
			p.logger.Warnf("Failed to delete product from search index: product_id=%s: %v", id, err)
		}
	}()
}

// validateCreate проверяет корректность входных данных запроса на создание продукта.
func validateCreate(req *CreateProductReq) error {
	if strings.TrimSpace(req.GTIN) == "" {
		return e.ErrGTINRequired
	}
	if !gtin.IsValid(req.GTIN) {
		return e.ErrInvalidGTIN
	}
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}
	if strings.TrimSpace(req.Brand) == "" {
		return e.ErrBrandRequired
	}
	if strings.TrimSpace(req.Manufacturer.Name) == "" {
		return e.ErrManufacturerNameRequired
	}
	if req.NetWeight != nil && *req.NetWeight < 0 {
		return e.ErrNegativeNetWeight
	}
	if req.WeightUnit != nil && !req.WeightUnit.IsValid() {
		return e.ErrInvalidWeightUnit
	}

	return nil
}

// validateUpdate проверяет присланные поля частичного обновления.
func validateUpdate(updates *domain.ProductUpdate) error {
	if updates == nil {
		return e.ErrStatusBadRequest
	}
	if updates.GTIN != nil && !gtin.IsValid(*updates.GTIN) {
		return e.ErrInvalidGTIN
	}
	if updates.Name != nil && strings.TrimSpace(*updates.Name) == "" {
		return e.ErrProductNameRequired
	}
	if updates.Brand != nil && strings.TrimSpace(*updates.Brand) == "" {
		return e.ErrBrandRequired
	}
	if updates.Manufacturer != nil && strings.TrimSpace(updates.Manufacturer.Name) == "" {
		return e.ErrManufacturerNameRequired
	}
	if updates.NetWeight != nil && *updates.NetWeight < 0 {
		return e.ErrNegativeNetWeight
	}
	if updates.WeightUnit != nil && !updates.WeightUnit.IsValid() {
		return e.ErrInvalidWeightUnit
	}

	return nil
}

// authorizeImageChange разрешает изменение изображений редактору и
// владельцу-поставщику продукта.
func authorizeImageChange(actor Actor, product *domain.Product) error {
	if actor.Role == domain.RoleEditor {
		return nil
	}
	if actor.Role == domain.RoleProvider && product.CreatedBy == actor.UserID {
		return nil
	}
	return e.ErrNotProductOwner
}
