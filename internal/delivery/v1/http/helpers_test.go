package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTTPResponse(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"ошибка валидации", e.Wrap("op", e.ErrInvalidGTIN), http.StatusBadRequest, e.ErrInvalidGTIN.Error()},
		{"дубликат gtin", e.Wrap("op", e.ErrDuplicateGTIN), http.StatusBadRequest, e.ErrDuplicateGTIN.Error()},
		{"продукт не на модерации", e.Wrap("op", e.ErrProductNotPending), http.StatusBadRequest, e.ErrProductNotPending.Error()},
		{"нет актора", e.Wrap("op", e.ErrMissingActor), http.StatusForbidden, e.ErrMissingActor.Error()},
		{"не владелец", e.Wrap("op", e.ErrNotProductOwner), http.StatusForbidden, e.ErrNotProductOwner.Error()},
		{"не редактор", e.Wrap("op", e.ErrOnlyEditorsCanApprove), http.StatusForbidden, e.ErrOnlyEditorsCanApprove.Error()},
		{"не найден", e.Wrap("op", e.ErrProductNotFound), http.StatusNotFound, e.ErrProductNotFound.Error()},
		{"неизвестная ошибка", assert.AnError, http.StatusInternalServerError, e.ErrInternalServerError.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tc.err)

			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantMsg, msg)
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, e.Wrap("op", e.ErrProductNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Equal(t, e.ErrProductNotFound.Error(), body.Message)
}

func TestParseNetWeight(t *testing.T) {
	num := func(s string) *json.Number {
		n := json.Number(s)
		return &n
	}

	t.Run("nil остаётся nil", func(t *testing.T) {
		value, err := parseNetWeight(nil)
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("десятичное значение", func(t *testing.T) {
		value, err := parseNetWeight(num("99.5"))
		require.NoError(t, err)
		require.NotNil(t, value)
		assert.Equal(t, 99.5, *value)
	})

	t.Run("ноль допустим", func(t *testing.T) {
		value, err := parseNetWeight(num("0"))
		require.NoError(t, err)
		require.NotNil(t, value)
		assert.Equal(t, float64(0), *value)
	})

	t.Run("отрицательное значение", func(t *testing.T) {
		_, err := parseNetWeight(num("-0.1"))
		assert.ErrorIs(t, err, e.ErrNegativeNetWeight)
	})

	t.Run("не число", func(t *testing.T) {
		_, err := parseNetWeight(num("abc"))
		assert.ErrorIs(t, err, e.ErrInvalidNetWeight)
	})
}

func TestParsePagination(t *testing.T) {
	newReq := func(query string) *http.Request {
		return httptest.NewRequest(http.MethodGet, "/products?"+query, nil)
	}

	t.Run("значения по умолчанию", func(t *testing.T) {
		page, limit := parsePagination(newReq(""))
		assert.Equal(t, 0, page)
		assert.Equal(t, 20, limit)
	})

	t.Run("явные значения", func(t *testing.T) {
		page, limit := parsePagination(newReq("page=3&limit=50"))
		assert.Equal(t, 3, page)
		assert.Equal(t, 50, limit)
	})

	t.Run("мусор заменяется значениями по умолчанию", func(t *testing.T) {
		page, limit := parsePagination(newReq("page=-1&limit=abc"))
		assert.Equal(t, 0, page)
		assert.Equal(t, 20, limit)
	})
}
