package domain

import (
	"strings"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
)

// Role — закрытое перечисление ролей, поставляемых слоем аутентификации.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
	RoleProvider Role = "PROVIDER"
	RoleEditor   Role = "EDITOR"
)

// ParseRole валидирует строковое представление роли.
// Сравнение без учёта регистра; неизвестная роль — ошибка.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleManager:
		return RoleManager, nil
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleProvider:
		return RoleProvider, nil
	case RoleEditor:
		return RoleEditor, nil
	default:
		return "", e.ErrInvalidRole
	}
}
