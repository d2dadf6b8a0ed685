package response

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestError(t *testing.T) {
	t.Run("AppError keeps status, kind and field", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Error(c, apperror.Invalid("returnDate", "is required for round trips"))

		require.Equal(t, http.StatusBadRequest, w.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, apperror.KindInvalidInput, body.Kind)
		assert.Equal(t, "returnDate", body.Field)
		assert.Equal(t, "is required for round trips", body.Error)
	})

	t.Run("Unknown error becomes internal and is recorded on the context", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Error(c, errors.New("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"kind":"internal"`)
		assert.NotContains(t, w.Body.String(), "connection reset")
		require.Len(t, c.Errors, 1)
	})
}

func TestFromBindError(t *testing.T) {
	type body struct {
		Email string `json:"email" validate:"required,email"`
	}

	t.Run("Validation error names the field", func(t *testing.T) {
		v := validator.New()
		err := v.Struct(body{Email: ""})
		require.Error(t, err)

		appErr := FromBindError(err)
		assert.Equal(t, apperror.KindInvalidInput, appErr.Kind)
		assert.Equal(t, "Email", appErr.Field)
		assert.Equal(t, "is required", appErr.Message)
	})

	t.Run("JSON type mismatch", func(t *testing.T) {
		var target struct {
			Passengers int `json:"passengers"`
		}
		err := json.Unmarshal([]byte(`{"passengers":"four"}`), &target)
		require.Error(t, err)

		appErr := FromBindError(err)
		assert.Equal(t, "passengers", appErr.Field)
	})
}

func TestPaginate(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	items, page, size := Paginate(all, 2, 2)
	assert.Equal(t, []int{3, 4}, items)
	assert.Equal(t, 2, page)
	assert.Equal(t, 2, size)

	items, page, size = Paginate(all, 0, 0)
	assert.Equal(t, all, items)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	items, _, _ = Paginate(all, 9, 2)
	assert.Empty(t, items)

	t.Run("Last partial page", func(t *testing.T) {
		items, _, _ := Paginate(all, 3, 2)
		assert.Equal(t, []int{5}, items)

		items, _, _ = Paginate(all, 4, 2)
		assert.Empty(t, items)
	})

	t.Run("Huge page number does not overflow", func(t *testing.T) {
		items, page, _ := Paginate(all, 92233720368547760, 100)
		assert.Empty(t, items)
		assert.Equal(t, 92233720368547760, page)

		items, _, _ = Paginate(all, math.MaxInt, math.MaxInt)
		assert.Empty(t, items)
	})

	t.Run("Empty input", func(t *testing.T) {
		items, _, _ := Paginate([]int{}, 1, 20)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}
