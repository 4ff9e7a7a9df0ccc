package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// createProduct
//
//	@Summary		Создание продукта
//	@Description	Создаёт продукт в каталоге. Продукт поставщика попадает на модерацию (PENDING_REVIEW), продукт редактора публикуется сразу.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			X-User-Id	header		string					true	"ID пользователя"
//	@Param			X-User-Role	header		string					true	"Роль пользователя"
//	@Param			request		body		createProductRequest	true	"Данные продукта"
//	@Success		201			{object}	productResponse			"Продукт создан"
//	@Failure		400			{object}	ErrorResponse			"Ошибка валидации"
//	@Failure		403			{object}	ErrorResponse			"Нет прав"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	var body createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	netWeight, err := parseNetWeight(body.NetWeight)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	var weightUnit *domain.WeightUnit
	if body.WeightUnit != nil {
		u := domain.WeightUnit(*body.WeightUnit)
		weightUnit = &u
	}

	product, err := p.productUsecase.CreateProduct(r.Context(), &usecase.CreateProductReq{
		Actor:       actor,
		GTIN:        body.GTIN,
		Name:        body.Name,
		Description: body.Description,
		Brand:       body.Brand,
		Manufacturer: domain.Manufacturer{
			Name:    body.Manufacturer.Name,
			Code:    body.Manufacturer.Code,
			Country: body.Manufacturer.Country,
		},
		NetWeight:  netWeight,
		WeightUnit: weightUnit,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// updateProduct
//
//	@Summary		Обновление продукта
//	@Description	Частично обновляет продукт. Поле status отклоняется: статус меняется только через approve.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			X-User-Id	header		string					true	"ID пользователя"
//	@Param			X-User-Role	header		string					true	"Роль пользователя"
//	@Param			id			path		string					true	"ID продукта"
//	@Param			request		body		updateProductRequest	true	"Изменяемые поля"
//	@Success		200			{object}	productResponse			"Обновлённый продукт"
//	@Failure		400			{object}	ErrorResponse			"Ошибка валидации"
//	@Failure		403			{object}	ErrorResponse			"Нет прав"
//	@Failure		404			{object}	ErrorResponse			"Продукт не найден"
//	@Router			/products/{id} [patch]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	var body updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	netWeight, err := parseNetWeight(body.NetWeight)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	updates := &domain.ProductUpdate{
		GTIN:        body.GTIN,
		Name:        body.Name,
		Description: body.Description,
		Brand:       body.Brand,
		NetWeight:   netWeight,
	}
	if body.Manufacturer != nil {
		updates.Manufacturer = &domain.Manufacturer{
			Name:    body.Manufacturer.Name,
			Code:    body.Manufacturer.Code,
			Country: body.Manufacturer.Country,
		}
	}
	if body.WeightUnit != nil {
		u := domain.WeightUnit(*body.WeightUnit)
		updates.WeightUnit = &u
	}

	product, err := p.productUsecase.UpdateProduct(r.Context(), &usecase.UpdateProductReq{
		Actor:   actor,
		ID:      chi.URLParam(r, "id"),
		Updates: updates,
		Status:  body.Status,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// approveProduct
//
//	@Summary		Одобрение продукта
//	@Description	Переводит продукт из PENDING_REVIEW в PUBLISHED. Доступно только редакторам.
//	@Tags			products
//	@Produce		json
//	@Param			X-User-Id	header		string			true	"ID пользователя"
//	@Param			X-User-Role	header		string			true	"Роль пользователя"
//	@Param			id			path		string			true	"ID продукта"
//	@Success		200			{object}	productResponse	"Одобренный продукт"
//	@Failure		400			{object}	ErrorResponse	"Продукт не на модерации"
//	@Failure		403			{object}	ErrorResponse	"Нет прав"
//	@Failure		404			{object}	ErrorResponse	"Продукт не найден"
//	@Router			/products/{id}/approve [post]
func (p *ProductHandler) approveProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.ApproveProduct(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary		Удаление продукта
//	@Description	Мягко удаляет продукт из каталога. Доступно только редакторам.
//	@Tags			products
//	@Produce		json
//	@Param			X-User-Id	header	string	true	"ID пользователя"
//	@Param			X-User-Role	header	string	true	"Роль пользователя"
//	@Param			id			path	string	true	"ID продукта"
//	@Success		204			"Продукт удалён"
//	@Failure		403			{object}	ErrorResponse	"Нет прав"
//	@Failure		404			{object}	ErrorResponse	"Продукт не найден"
//	@Router			/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.DeleteProduct(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getProduct
//
//	@Summary		Получение продукта
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string			true	"ID продукта"
//	@Success		200	{object}	productResponse	"Продукт"
//	@Failure		404	{object}	ErrorResponse	"Продукт не найден"
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := p.productUsecase.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// listProducts
//
//	@Summary		Список продуктов
//	@Description	Возвращает страницу продуктов с фильтрами по подстроке, бренду, статусу и создателю.
//	@Tags			products
//	@Produce		json
//	@Param			search		query		string	false	"Подстрочный поиск по name/brand/description"
//	@Param			brand		query		string	false	"Точный фильтр по бренду"
//	@Param			status		query		string	false	"Фильтр по статусу"
//	@Param			createdBy	query		string	false	"Фильтр по создателю"
//	@Param			page		query		int		false	"Номер страницы (с нуля)"
//	@Param			limit		query		int		false	"Размер страницы"
//	@Success		200			{object}	listProductsResponse	"Страница продуктов"
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	res, err := p.productUsecase.ListProducts(r.Context(), &usecase.ListProductsReq{
		Search:    r.URL.Query().Get("search"),
		Brand:     r.URL.Query().Get("brand"),
		Status:    r.URL.Query().Get("status"),
		CreatedBy: r.URL.Query().Get("createdBy"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &listProductsResponse{
		Products:   toArrProductResponse(res.Products),
		TotalCount: res.TotalCount,
		Page:       page,
		Limit:      limit,
	})
}

// searchProducts
//
//	@Summary		Полнотекстовый поиск продуктов
//	@Description	Ищет по текстовому индексу name/brand/description.
//	@Tags			products
//	@Produce		json
//	@Param			q		query		string	true	"Поисковый запрос"
//	@Param			limit	query		int		false	"Максимум результатов"
//	@Success		200		{array}		searchResultResponse	"Найденные документы"
//	@Failure		400		{object}	ErrorResponse			"Пустой запрос"
//	@Router			/products/search [get]
func (p *ProductHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	_, limit := parsePagination(r)

	docs, err := p.productUsecase.SearchProducts(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	results := make([]searchResultResponse, 0, len(docs))
	for i := range docs {
		results = append(results, *toSearchResultResponse(&docs[i]))
	}

	WriteSuccess(w, http.StatusOK, results)
}

// listProductChanges
//
//	@Summary		Журнал изменений продукта
//	@Description	Возвращает историю изменений продукта, новые записи первыми.
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string					true	"ID продукта"
//	@Success		200	{array}		productChangeResponse	"Записи журнала"
//	@Failure		404	{object}	ErrorResponse			"Продукт не найден"
//	@Router			/products/{id}/changes [get]
func (p *ProductHandler) listProductChanges(w http.ResponseWriter, r *http.Request) {
	changes, err := p.productUsecase.ListProductChanges(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	results := make([]productChangeResponse, 0, len(changes))
	for i := range changes {
		results = append(results, *toProductChangeResponse(&changes[i]))
	}

	WriteSuccess(w, http.StatusOK, results)
}

// attachImage
//
//	@Summary		Загрузка изображения продукта
//	@Description	Принимает одно изображение (jpeg/png/webp) multipart-полем image.
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			X-User-Id	header		string			true	"ID пользователя"
//	@Param			X-User-Role	header		string			true	"Роль пользователя"
//	@Param			id			path		string			true	"ID продукта"
//	@Param			image		formData	file			true	"Файл изображения"
//	@Success		200			{object}	productResponse	"Продукт с обновлёнными изображениями"
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		403			{object}	ErrorResponse	"Нет прав"
//	@Failure		404			{object}	ErrorResponse	"Продукт не найден"
//	@Router			/products/{id}/images [post]
func (p *ProductHandler) attachImage(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 20 << 20
		maxMemory           = 16 << 20
		maxFileSize         = 15 << 20
	)

	actor, err := actorFromContext(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		p.logger.Warnf("%d %s", http.StatusBadRequest, e.ErrNoImage.Error())
		WriteError(w, e.ErrNoImage)
		return
	}

	data, mimeType, err := readFile(files[0], maxFileSize)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.AttachImage(r.Context(), actor, &usecase.UploadImageReq{
		ProductID: chi.URLParam(r, "id"),
		Data:      data,
		MimeType:  mimeType,
		Size:      int64(len(data)),
		Name:      files[0].Filename,
	})
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// removeImage
//
//	@Summary		Удаление изображения продукта
//	@Tags			products
//	@Produce		json
//	@Param			X-User-Id	header		string			true	"ID пользователя"
//	@Param			X-User-Role	header		string			true	"Роль пользователя"
//	@Param			id			path		string			true	"ID продукта"
//	@Param			key			path		string			true	"Ключ объекта"
//	@Success		200			{object}	productResponse	"Продукт с обновлёнными изображениями"
//	@Failure		403			{object}	ErrorResponse	"Нет прав"
//	@Failure		404			{object}	ErrorResponse	"Продукт не найден"
//	@Router			/products/{id}/images/{key} [delete]
func (p *ProductHandler) removeImage(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	// Ключ объекта содержит слэши, поэтому маршрут заканчивается wildcard'ом.
	product, err := p.productUsecase.RemoveImage(r.Context(), actor, chi.URLParam(r, "id"), chi.URLParam(r, "*"))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}
