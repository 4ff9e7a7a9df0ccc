// Package gtin реализует проверку идентификаторов GS1 (GTIN-8/12/13/14):
// формат, контрольная цифра по модулю 10 и нормализация до 14 знаков.
package gtin

import (
	"fmt"
	"regexp"
	"strings"
)

var gtinPattern = regexp.MustCompile(`^\d{8}$|^\d{12}$|^\d{13}$|^\d{14}$`)

// ComputeCheckDigit вычисляет контрольную цифру для базовой части GTIN
// (длина 7, 11, 12 или 13). Вес позиции равен 3, когда чётность позиции
// совпадает с чётностью длины базы, иначе 1.
func ComputeCheckDigit(base string) (int, error) {
	switch len(base) {
	case 7, 11, 12, 13:
	default:
		return 0, fmt.Errorf("invalid base length %d", len(base))
	}

	sum := 0
	evenLen := len(base)%2 == 0
	for i, r := range base {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric character %q at position %d", r, i+1)
		}

		digit := int(r - '0')
		pos := i + 1
		weight := 1
		if evenLen == (pos%2 == 0) {
			weight = 3
		}
		sum += digit * weight
	}

	return (10 - sum%10) % 10, nil
}

// IsValid сообщает, является ли строка корректным GTIN:
// допустимая длина, только цифры и верная контрольная цифра.
func IsValid(s string) bool {
	if !gtinPattern.MatchString(s) {
		return false
	}

	check, err := ComputeCheckDigit(s[:len(s)-1])
	if err != nil {
		return false
	}

	return int(s[len(s)-1]-'0') == check
}

// NormalizeTo14 дополняет GTIN нулями слева до 14 знаков.
// Возвращает ошибку, если строка не соответствует формату GTIN.
func NormalizeTo14(s string) (string, error) {
	if !gtinPattern.MatchString(s) {
		return "", fmt.Errorf("invalid gtin format: %q", s)
	}

	return strings.Repeat("0", 14-len(s)) + s, nil
}
