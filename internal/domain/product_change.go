package domain

import "time"

// ChangeOperation — вид операции в журнале изменений.
type ChangeOperation string

const (
	OperationCreate       ChangeOperation = "CREATE"
	OperationUpdate       ChangeOperation = "UPDATE"
	OperationStatusChange ChangeOperation = "STATUS_CHANGE"
)

// ProductChange — неизменяемая запись журнала изменений продукта.
// Создаётся ровно один раз на успешную операцию записи и никогда не мутируется.
type ProductChange struct {
	ID             string
	ProductID      string
	ChangedBy      string
	ChangedAt      time.Time
	Operation      ChangeOperation
	PreviousValues map[string]any
	NewValues      map[string]any
}

func NewProductChange(productID, changedBy string, operation ChangeOperation,
	previousValues, newValues map[string]any) *ProductChange {
	return &ProductChange{
		ProductID:      productID,
		ChangedBy:      changedBy,
		Operation:      operation,
		PreviousValues: previousValues,
		NewValues:      newValues,
	}
}
