package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// badRequestErrors — ошибки валидации и конфликтов бизнес-правил,
// возвращаемые как 400.
var badRequestErrors = []error{
	e.ErrStatusBadRequest,
	e.ErrGTINRequired,
	e.ErrInvalidGTIN,
	e.ErrProductNameRequired,
	e.ErrBrandRequired,
	e.ErrManufacturerNameRequired,
	e.ErrNegativeNetWeight,
	e.ErrInvalidNetWeight,
	e.ErrInvalidWeightUnit,
	e.ErrInvalidRole,
	e.ErrStatusChangeNotAllowed,
	e.ErrEmptySearchQuery,
	e.ErrNoImage,
	e.ErrFileTooLarge,
	e.ErrUnsupportedMediaType,
	e.ErrDuplicateGTIN,
	e.ErrProductNotPending,
	e.ErrProviderNotPending,
}

// forbiddenErrors — ошибки авторизации, возвращаемые как 403.
var forbiddenErrors = []error{
	e.ErrMissingActor,
	e.ErrNotProductOwner,
	e.ErrOnlyEditorsCanApprove,
	e.ErrOnlyEditorsCanDelete,
}

func ToHTTPResponse(err error) (int, string) {
	for _, sentinel := range badRequestErrors {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest, sentinel.Error()
		}
	}

	for _, sentinel := range forbiddenErrors {
		if errors.Is(err, sentinel) {
			return http.StatusForbidden, sentinel.Error()
		}
	}

	if errors.Is(err, e.ErrProductNotFound) {
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseNetWeight разбирает netWeight из JSON. Значение должно быть
// корректным десятичным числом и неотрицательным.
func parseNetWeight(n *json.Number) (*float64, error) {
	if n == nil {
		return nil, nil
	}

	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil, e.ErrInvalidNetWeight
	}

	if d.LessThan(decimal.Zero) {
		return nil, e.ErrNegativeNetWeight
	}

	value := d.InexactFloat64()
	return &value, nil
}

// parsePagination читает page и limit из query-параметров.
// Отсутствующие или некорректные значения заменяются значениями по умолчанию.
func parsePagination(r *http.Request) (page, limit int) {
	const defaultLimit = 20

	page = 0
	limit = defaultLimit

	if v := r.URL.Query().Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			page = parsed
		}
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return page, limit
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
