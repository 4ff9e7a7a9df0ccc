package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- моки ---

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...any)            {}
func (noopLogger) Infof(format string, args ...any)             {}
func (noopLogger) Warnf(format string, args ...any)             {}
func (noopLogger) Errorf(err error, format string, args ...any) {}

// stubTx — пустая реализация pgx.Tx для транзакций в тестах.
type stubTx struct{}

func (stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return stubTx{}, nil }
func (stubTx) Commit(ctx context.Context) error          { return nil }
func (stubTx) Rollback(ctx context.Context) error        { return nil }
func (stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (stubTx) Conn() *pgx.Conn                                               { return nil }

type mockTransactional struct{}

func (mockTransactional) Begin(ctx context.Context) (pgx.Tx, error) {
	return stubTx{}, nil
}

func (mockTransactional) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return stubTx{}, nil
}

type mockProductRepo struct {
	insertFn     func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.Product, error)
	updateFn     func(ctx context.Context, id string, updates *domain.ProductUpdate) (*domain.Product, error)
	approveFn    func(ctx context.Context, id string) (*domain.Product, error)
	softDeleteFn func(ctx context.Context, id string) error
	setImagesFn  func(ctx context.Context, id string, images []string) (*domain.Product, error)
	listFn       func(ctx context.Context, req *ListProductsReq) ([]domain.Product, int64, error)

	insertCalls    int
	updateCalls    int
	softDeleteRuns []string
}

func (m *mockProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	m.insertCalls++
	return m.insertFn(ctx, product)
}
func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockProductRepo) UpdateByID(ctx context.Context, id string, updates *domain.ProductUpdate) (*domain.Product, error) {
	m.updateCalls++
	return m.updateFn(ctx, id, updates)
}
func (m *mockProductRepo) ApproveIfPending(ctx context.Context, id string) (*domain.Product, error) {
	return m.approveFn(ctx, id)
}
func (m *mockProductRepo) SoftDelete(ctx context.Context, id string) error {
	m.softDeleteRuns = append(m.softDeleteRuns, id)
	return m.softDeleteFn(ctx, id)
}
func (m *mockProductRepo) SetImages(ctx context.Context, id string, images []string) (*domain.Product, error) {
	return m.setImagesFn(ctx, id, images)
}
func (m *mockProductRepo) List(ctx context.Context, req *ListProductsReq) ([]domain.Product, int64, error) {
	return m.listFn(ctx, req)
}

type mockChangeRepo struct {
	appended []*domain.ProductChange
	listFn   func(ctx context.Context, productID string) ([]domain.ProductChange, error)
}

func (m *mockChangeRepo) Append(ctx context.Context, change *domain.ProductChange) (*domain.ProductChange, error) {
	m.appended = append(m.appended, change)
	return change, nil
}
func (m *mockChangeRepo) ListByProduct(ctx context.Context, productID string) ([]domain.ProductChange, error) {
	if m.listFn != nil {
		return m.listFn(ctx, productID)
	}
	return nil, nil
}

type mockOutboxRepo struct {
	created []*OutboxEvent
}

func (m *mockOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	m.created = append(m.created, event)
	return event, nil
}
func (m *mockOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}
func (m *mockOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error { return nil }

type mockCacheRepo struct {
	getFn   func(ctx context.Context, id string) (*domain.Product, error)
	setCh   chan string
	deleted chan string
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{
		setCh:   make(chan string, 16),
		deleted: make(chan string, 16),
	}
}

func (m *mockCacheRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}
func (m *mockCacheRepo) SetProduct(ctx context.Context, product *domain.Product) error {
	m.setCh <- product.ID
	return nil
}
func (m *mockCacheRepo) DeleteProduct(ctx context.Context, id string) error {
	m.deleted <- id
	return nil
}

type mockSearchIndexer struct {
	upsertErr error
	upserted  chan string
	deleted   chan string
	searchFn  func(ctx context.Context, query string, limit int) ([]domain.ProductDocument, error)
}

func newMockSearchIndexer() *mockSearchIndexer {
	return &mockSearchIndexer{
		upserted: make(chan string, 16),
		deleted:  make(chan string, 16),
	}
}

func (m *mockSearchIndexer) Upsert(ctx context.Context, doc *domain.ProductDocument) error {
	m.upserted <- doc.ID
	return m.upsertErr
}
func (m *mockSearchIndexer) Delete(ctx context.Context, id string) error {
	m.deleted <- id
	return nil
}
func (m *mockSearchIndexer) Search(ctx context.Context, query string, limit int) ([]domain.ProductDocument, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return nil, nil
}

type mockImagesInfra struct {
	uploadFn func(ctx context.Context, req *UploadImageReq) (string, error)
	cleaned  [][]string
}

func (m *mockImagesInfra) UploadImage(ctx context.Context, req *UploadImageReq) (string, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, req)
	}
	return "key", nil
}
func (m *mockImagesInfra) CleanupImages(keys []string) {
	m.cleaned = append(m.cleaned, keys)
}

// --- общий каркас ---

type ucFixture struct {
	uc          *ProductUseCase
	productRepo *mockProductRepo
	changeRepo  *mockChangeRepo
	outboxRepo  *mockOutboxRepo
	cacheRepo   *mockCacheRepo
	searchRepo  *mockSearchIndexer
	imagesInfra *mockImagesInfra
}

func newFixture() *ucFixture {
	f := &ucFixture{
		productRepo: &mockProductRepo{},
		changeRepo:  &mockChangeRepo{},
		outboxRepo:  &mockOutboxRepo{},
		cacheRepo:   newMockCacheRepo(),
		searchRepo:  newMockSearchIndexer(),
		imagesInfra: &mockImagesInfra{},
	}
	f.uc = NewProductUC(
		f.productRepo, f.changeRepo, f.outboxRepo,
		f.cacheRepo, f.searchRepo, f.imagesInfra,
		mockTransactional{}, noopLogger{},
	)
	return f
}

func (f *ucFixture) waitPropagation(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, f.uc.WaitForPropagation(ctx))
}

func floatPtr(v float64) *float64                  { return &v }
func strPtr(s string) *string                      { return &s }
func unitPtr(u domain.WeightUnit) *domain.WeightUnit { return &u }

func pendingProduct() *domain.Product {
	return &domain.Product{
		ID:           "p-1",
		GTIN:         "04006381333931",
		Name:         "Шоколад молочный",
		Brand:        "Tasty",
		Manufacturer: domain.Manufacturer{Name: "Tasty Foods GmbH"},
		Status:       domain.StatusPendingReview,
		CreatedBy:    "provider-1",
		CreatedAt:    time.Now().UTC(),
	}
}

func validCreateReq(actor Actor) *CreateProductReq {
	return &CreateProductReq{
		Actor:        actor,
		GTIN:         "04006381333931",
		Name:         "Шоколад молочный",
		Brand:        "Tasty",
		Manufacturer: domain.Manufacturer{Name: "Tasty Foods GmbH"},
		NetWeight:    floatPtr(100),
		WeightUnit:   unitPtr(domain.UnitGram),
	}
}

// --- CreateProduct ---

func TestCreateProduct_ProviderGetsPendingReview(t *testing.T) {
	f := newFixture()
	f.productRepo.insertFn = func(ctx context.Context, product *domain.Product) (*domain.Product, error) {
		created := *product
		created.ID = "p-1"
		return &created, nil
	}

	product, err := f.uc.CreateProduct(context.Background(), validCreateReq(Actor{UserID: "provider-1", Role: domain.RoleProvider}))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingReview, product.Status)
	assert.Equal(t, "provider-1", product.CreatedBy)

	require.Len(t, f.changeRepo.appended, 1)
	change := f.changeRepo.appended[0]
	assert.Equal(t, domain.OperationCreate, change.Operation)
	assert.Empty(t, change.PreviousValues)
	assert.Equal(t, "PENDING_REVIEW", change.NewValues[domain.FieldStatus])

	require.Len(t, f.outboxRepo.created, 1)
	assert.Equal(t, domain.EventProductCreated, f.outboxRepo.created[0].EventType)

	var envelope domain.Envelope
	require.NoError(t, json.Unmarshal(f.outboxRepo.created[0].Payload, &envelope))
	assert.Equal(t, "p-1", envelope.AggregateID)
	assert.NotEmpty(t, envelope.ID)
	require.NotNil(t, envelope.Actor)
	assert.Equal(t, "provider-1", *envelope.Actor)

	f.waitPropagation(t)
	assert.Equal(t, "p-1", <-f.searchRepo.upserted)
	assert.Equal(t, "p-1", <-f.cacheRepo.deleted)
}

func TestCreateProduct_EditorPublishesImmediately(t *testing.T) {
	f := newFixture()
	f.productRepo.insertFn = func(ctx context.Context, product *domain.Product) (*domain.Product, error) {
		created := *product
		created.ID = "p-2"
		return &created, nil
	}

	product, err := f.uc.CreateProduct(context.Background(), validCreateReq(Actor{UserID: "editor-1", Role: domain.RoleEditor}))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, product.Status)
	f.waitPropagation(t)
}

func TestCreateProduct_ValidationFailuresSkipInsert(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(req *CreateProductReq)
		wantErr error
	}{
		{"пустой gtin", func(r *CreateProductReq) { r.GTIN = "  " }, e.ErrGTINRequired},
		{"некорректная контрольная цифра", func(r *CreateProductReq) { r.GTIN = "04006381333932" }, e.ErrInvalidGTIN},
		{"нечисловой gtin", func(r *CreateProductReq) { r.GTIN = "0400638133393a" }, e.ErrInvalidGTIN},
		{"пустое имя", func(r *CreateProductReq) { r.Name = "" }, e.ErrProductNameRequired},
		{"пустой бренд", func(r *CreateProductReq) { r.Brand = "" }, e.ErrBrandRequired},
		{"пустой производитель", func(r *CreateProductReq) { r.Manufacturer.Name = "" }, e.ErrManufacturerNameRequired},
		{"отрицательный вес", func(r *CreateProductReq) { r.NetWeight = floatPtr(-1) }, e.ErrNegativeNetWeight},
		{"неизвестная единица", func(r *CreateProductReq) { r.WeightUnit = unitPtr("stone") }, e.ErrInvalidWeightUnit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			req := validCreateReq(Actor{UserID: "provider-1", Role: domain.RoleProvider})
			tc.mutate(req)

			_, err := f.uc.CreateProduct(context.Background(), req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, f.productRepo.insertCalls)
		})
	}
}

func TestCreateProduct_DuplicateGTIN(t *testing.T) {
	f := newFixture()
	f.productRepo.insertFn = func(ctx context.Context, product *domain.Product) (*domain.Product, error) {
		return nil, e.ErrDuplicateGTIN
	}

	_, err := f.uc.CreateProduct(context.Background(), validCreateReq(Actor{UserID: "provider-1", Role: domain.RoleProvider}))

	assert.ErrorIs(t, err, e.ErrDuplicateGTIN)
	assert.Empty(t, f.outboxRepo.created)
}

// --- UpdateProduct ---

func TestUpdateProduct_StatusKeyRejectedForAllRoles(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleProvider, domain.RoleEditor, domain.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.UpdateProduct(context.Background(), &UpdateProductReq{
				Actor:   Actor{UserID: "u", Role: role},
				ID:      "p-1",
				Updates: &domain.ProductUpdate{Name: strPtr("x")},
				Status:  strPtr("PUBLISHED"),
			})

			assert.ErrorIs(t, err, e.ErrStatusChangeNotAllowed)
			assert.Zero(t, f.productRepo.updateCalls)
		})
	}
}

func TestUpdateProduct_ProviderMustOwnProduct(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return pendingProduct(), nil
	}

	_, err := f.uc.UpdateProduct(context.Background(), &UpdateProductReq{
		Actor:   Actor{UserID: "provider-2", Role: domain.RoleProvider},
		ID:      "p-1",
		Updates: &domain.ProductUpdate{Name: strPtr("x")},
	})

	assert.ErrorIs(t, err, e.ErrNotProductOwner)
}

func TestUpdateProduct_ProviderCannotTouchPublished(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		p := pendingProduct()
		p.Status = domain.StatusPublished
		return p, nil
	}

	_, err := f.uc.UpdateProduct(context.Background(), &UpdateProductReq{
		Actor:   Actor{UserID: "provider-1", Role: domain.RoleProvider},
		ID:      "p-1",
		Updates: &domain.ProductUpdate{Name: strPtr("x")},
	})

	assert.ErrorIs(t, err, e.ErrProviderNotPending)
}

func TestUpdateProduct_NoopWhenValuesUnchanged(t *testing.T) {
	f := newFixture()
	current := pendingProduct()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return current, nil
	}

	product, err := f.uc.UpdateProduct(context.Background(), &UpdateProductReq{
		Actor:   Actor{UserID: "provider-1", Role: domain.RoleProvider},
		ID:      "p-1",
		Updates: &domain.ProductUpdate{Name: strPtr(current.Name), Brand: strPtr(current.Brand)},
	})

	require.NoError(t, err)
	assert.Equal(t, current, product)
	assert.Zero(t, f.productRepo.updateCalls)
	assert.Empty(t, f.changeRepo.appended)
	assert.Empty(t, f.outboxRepo.created)
}

func TestUpdateProduct_RecordsDiffAndEvent(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return pendingProduct(), nil
	}
	f.productRepo.updateFn = func(ctx context.Context, id string, updates *domain.ProductUpdate) (*domain.Product, error) {
		return domain.ApplyUpdate(pendingProduct(), updates), nil
	}

	product, err := f.uc.UpdateProduct(context.Background(), &UpdateProductReq{
		Actor:   Actor{UserID: "provider-1", Role: domain.RoleProvider},
		ID:      "p-1",
		Updates: &domain.ProductUpdate{Name: strPtr("Шоколад тёмный")},
	})

	require.NoError(t, err)
	assert.Equal(t, "Шоколад тёмный", product.Name)

	require.Len(t, f.changeRepo.appended, 1)
	change := f.changeRepo.appended[0]
	assert.Equal(t, domain.OperationUpdate, change.Operation)
	assert.Equal(t, "Шоколад молочный", change.PreviousValues[domain.FieldName])
	assert.Equal(t, "Шоколад тёмный", change.NewValues[domain.FieldName])
	assert.Len(t, change.NewValues, 1)

	require.Len(t, f.outboxRepo.created, 1)
	assert.Equal(t, domain.EventProductUpdated, f.outboxRepo.created[0].EventType)

	f.waitPropagation(t)
	assert.Equal(t, "p-1", <-f.searchRepo.upserted)
}

func TestUpdateProduct_EditorMayUpdatePublished(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		p := pendingProduct()
		p.Status = domain.StatusPublished
		return p, nil
	}
	f.productRepo.updateFn = func(ctx context.Context, id string, updates *domain.ProductUpdate) (*domain.Product, error) {
		p := pendingProduct()
		p.Status = domain.StatusPublished
		return domain.ApplyUpdate(p, updates), nil
	}

	_, err := f.uc.UpdateProduct(context.Background(), &UpdateProductReq{
		Actor:   Actor{UserID: "editor-1", Role: domain.RoleEditor},
		ID:      "p-1",
		Updates: &domain.ProductUpdate{Brand: strPtr("Tastier")},
	})

	require.NoError(t, err)
	f.waitPropagation(t)
}

// --- ApproveProduct ---

func TestApproveProduct_OnlyEditor(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ApproveProduct(context.Background(), Actor{UserID: "u", Role: domain.RoleProvider}, "p-1")

	assert.ErrorIs(t, err, e.ErrOnlyEditorsCanApprove)
}

func TestApproveProduct_AlreadyPublished(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		p := pendingProduct()
		p.Status = domain.StatusPublished
		return p, nil
	}

	_, err := f.uc.ApproveProduct(context.Background(), Actor{UserID: "editor-1", Role: domain.RoleEditor}, "p-1")

	assert.ErrorIs(t, err, e.ErrProductNotPending)
}

func TestApproveProduct_LostRaceMapsToConflict(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return pendingProduct(), nil
	}
	// Конкурирующее одобрение выиграло между чтением и условным UPDATE
	f.productRepo.approveFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return nil, e.Wrap("ProductRepo.ApproveIfPending", e.ErrProductNotFound)
	}

	_, err := f.uc.ApproveProduct(context.Background(), Actor{UserID: "editor-1", Role: domain.RoleEditor}, "p-1")

	assert.ErrorIs(t, err, e.ErrProductNotPending)
	assert.NotErrorIs(t, err, e.ErrProductNotFound)
	assert.Empty(t, f.changeRepo.appended)
}

func TestApproveProduct_WritesStatusChangeAudit(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return pendingProduct(), nil
	}
	f.productRepo.approveFn = func(ctx context.Context, id string) (*domain.Product, error) {
		p := pendingProduct()
		p.Status = domain.StatusPublished
		return p, nil
	}

	product, err := f.uc.ApproveProduct(context.Background(), Actor{UserID: "editor-1", Role: domain.RoleEditor}, "p-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, product.Status)

	require.Len(t, f.changeRepo.appended, 1)
	change := f.changeRepo.appended[0]
	assert.Equal(t, domain.OperationStatusChange, change.Operation)
	assert.Equal(t, map[string]any{domain.FieldStatus: "PENDING_REVIEW"}, change.PreviousValues)
	assert.Equal(t, map[string]any{domain.FieldStatus: "PUBLISHED"}, change.NewValues)
	assert.Equal(t, "editor-1", change.ChangedBy)

	require.Len(t, f.outboxRepo.created, 1)
	assert.Equal(t, domain.EventProductApproved, f.outboxRepo.created[0].EventType)

	f.waitPropagation(t)
	assert.Equal(t, "p-1", <-f.searchRepo.upserted)
}

// --- DeleteProduct ---

func TestDeleteProduct_OnlyEditor(t *testing.T) {
	f := newFixture()

	err := f.uc.DeleteProduct(context.Background(), Actor{UserID: "u", Role: domain.RoleProvider}, "p-1")

	assert.ErrorIs(t, err, e.ErrOnlyEditorsCanDelete)
	assert.Empty(t, f.productRepo.softDeleteRuns)
}

func TestDeleteProduct_RemovesFromIndexAndCache(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return pendingProduct(), nil
	}
	f.productRepo.softDeleteFn = func(ctx context.Context, id string) error { return nil }

	err := f.uc.DeleteProduct(context.Background(), Actor{UserID: "editor-1", Role: domain.RoleEditor}, "p-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"p-1"}, f.productRepo.softDeleteRuns)
	assert.Empty(t, f.changeRepo.appended) // удаление не аудируется

	require.Len(t, f.outboxRepo.created, 1)
	assert.Equal(t, domain.EventProductDeleted, f.outboxRepo.created[0].EventType)

	f.waitPropagation(t)
	assert.Equal(t, "p-1", <-f.cacheRepo.deleted)
	assert.Equal(t, "p-1", <-f.searchRepo.deleted)
}

// --- GetProduct ---

func TestGetProduct_CacheHitSkipsRepository(t *testing.T) {
	f := newFixture()
	cached := pendingProduct()
	f.cacheRepo.getFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return cached, nil
	}
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		t.Fatal("repository must not be hit on cache hit")
		return nil, nil
	}

	product, err := f.uc.GetProduct(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, cached, product)
}

func TestGetProduct_CacheMissFillsCacheInBackground(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return pendingProduct(), nil
	}

	product, err := f.uc.GetProduct(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, "p-1", product.ID)

	f.waitPropagation(t)
	assert.Equal(t, "p-1", <-f.cacheRepo.setCh)
}

// --- устойчивость распространения ---

func TestCreateProduct_SearchIndexFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture()
	f.searchRepo.upsertErr = errors.New("qdrant is down")
	f.productRepo.insertFn = func(ctx context.Context, product *domain.Product) (*domain.Product, error) {
		created := *product
		created.ID = "p-1"
		return &created, nil
	}

	_, err := f.uc.CreateProduct(context.Background(), validCreateReq(Actor{UserID: "provider-1", Role: domain.RoleProvider}))

	require.NoError(t, err)
	f.waitPropagation(t)
}

// --- SearchProducts ---

func TestSearchProducts_EmptyQuery(t *testing.T) {
	f := newFixture()

	_, err := f.uc.SearchProducts(context.Background(), "   ", 10)

	assert.ErrorIs(t, err, e.ErrEmptySearchQuery)
}

func TestSearchProducts_ClampsLimit(t *testing.T) {
	f := newFixture()
	var gotLimit int
	f.searchRepo.searchFn = func(ctx context.Context, query string, limit int) ([]domain.ProductDocument, error) {
		gotLimit = limit
		return nil, nil
	}

	_, err := f.uc.SearchProducts(context.Background(), "шоколад", 100500)

	require.NoError(t, err)
	assert.Equal(t, 100, gotLimit)
}

// --- ListProducts ---

func TestListProducts_ClampsPagination(t *testing.T) {
	f := newFixture()
	var gotReq *ListProductsReq
	f.productRepo.listFn = func(ctx context.Context, req *ListProductsReq) ([]domain.Product, int64, error) {
		gotReq = req
		return []domain.Product{*pendingProduct()}, 1, nil
	}

	res, err := f.uc.ListProducts(context.Background(), &ListProductsReq{Page: -5, Limit: 100500})

	require.NoError(t, err)
	assert.Equal(t, 0, gotReq.Page)
	assert.Equal(t, 100, gotReq.Limit)
	assert.Equal(t, int64(1), res.TotalCount)
	require.Len(t, res.Products, 1)
}

// --- изображения ---

func TestAttachImage_CleansUpOrphanOnDBFailure(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return pendingProduct(), nil
	}
	f.imagesInfra.uploadFn = func(ctx context.Context, req *UploadImageReq) (string, error) {
		return "p-1/img-123.jpg", nil
	}
	f.productRepo.setImagesFn = func(ctx context.Context, id string, images []string) (*domain.Product, error) {
		return nil, errors.New("db write failed")
	}

	_, err := f.uc.AttachImage(context.Background(), Actor{UserID: "provider-1", Role: domain.RoleProvider}, &UploadImageReq{
		ProductID: "p-1",
		Data:      []byte{0xff, 0xd8},
		MimeType:  "image/jpeg",
		Size:      2,
		Name:      "img",
	})

	require.Error(t, err)
	require.Len(t, f.imagesInfra.cleaned, 1)
	assert.Equal(t, []string{"p-1/img-123.jpg"}, f.imagesInfra.cleaned[0])
}

func TestAttachImage_StrangerProviderForbidden(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return pendingProduct(), nil
	}

	_, err := f.uc.AttachImage(context.Background(), Actor{UserID: "provider-2", Role: domain.RoleProvider}, &UploadImageReq{
		ProductID: "p-1",
		Data:      []byte{1},
		MimeType:  "image/png",
		Size:      1,
		Name:      "img",
	})

	assert.ErrorIs(t, err, e.ErrNotProductOwner)
}

func TestRemoveImage_UnknownKey(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		p := pendingProduct()
		p.Images = []string{"p-1/a.jpg"}
		return p, nil
	}

	_, err := f.uc.RemoveImage(context.Background(), Actor{UserID: "editor-1", Role: domain.RoleEditor}, "p-1", "p-1/missing.jpg")

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestRemoveImage_RemovesKeyAndCleansUpObject(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		p := pendingProduct()
		p.Images = []string{"p-1/a.jpg", "p-1/b.jpg"}
		return p, nil
	}
	f.productRepo.setImagesFn = func(ctx context.Context, id string, images []string) (*domain.Product, error) {
		p := pendingProduct()
		p.Images = images
		return p, nil
	}

	product, err := f.uc.RemoveImage(context.Background(), Actor{UserID: "editor-1", Role: domain.RoleEditor}, "p-1", "p-1/a.jpg")

	require.NoError(t, err)
	assert.Equal(t, []string{"p-1/b.jpg"}, product.Images)
	require.Len(t, f.imagesInfra.cleaned, 1)
	assert.Equal(t, []string{"p-1/a.jpg"}, f.imagesInfra.cleaned[0])
	f.waitPropagation(t)
}

// --- ListProductChanges ---

func TestListProductChanges_UnknownProduct(t *testing.T) {
	f := newFixture()
	f.productRepo.getByIDFn = func(ctx context.Context, id string) (*domain.Product, error) {
		return nil, e.Wrap("ProductRepo.GetByID", e.ErrProductNotFound)
	}

	_, err := f.uc.ListProductChanges(context.Background(), "missing")

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}
