package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request — валидация полей
	ErrGTINRequired             = fmt.Errorf("gtin is required")
	ErrInvalidGTIN              = fmt.Errorf("invalid gtin")
	ErrProductNameRequired      = fmt.Errorf("product name is required")
	ErrBrandRequired            = fmt.Errorf("brand is required")
	ErrManufacturerNameRequired = fmt.Errorf("manufacturer name is required")
	ErrNegativeNetWeight        = fmt.Errorf("net weight must be non-negative")
	ErrInvalidNetWeight         = fmt.Errorf("invalid net weight")
	ErrInvalidWeightUnit        = fmt.Errorf("invalid weight unit")
	ErrInvalidRole              = fmt.Errorf("invalid role")
	ErrStatusChangeNotAllowed   = fmt.Errorf("status changes are not allowed in this operation")
	ErrEmptySearchQuery         = fmt.Errorf("search query is empty")
	ErrNoImage                  = fmt.Errorf("no image provided")
	ErrFileTooLarge             = fmt.Errorf("file too large")
	ErrUnsupportedMediaType     = fmt.Errorf("unsupported media type")
	ErrStatusBadRequest         = fmt.Errorf("bad request")

	// 400 Bad Request — конфликты бизнес-правил
	ErrDuplicateGTIN      = fmt.Errorf("product with this gtin already exists")
	ErrProductNotPending  = fmt.Errorf("only pending products can be approved")
	ErrProviderNotPending = fmt.Errorf("only pending products can be updated by provider")

	// 403 Forbidden
	ErrMissingActor          = fmt.Errorf("actor is not set")
	ErrNotProductOwner       = fmt.Errorf("not owner")
	ErrOnlyEditorsCanApprove = fmt.Errorf("only editors can approve products")
	ErrOnlyEditorsCanDelete  = fmt.Errorf("only editors can delete products")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
