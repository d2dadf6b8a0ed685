package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pricing"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	request.UseJSONFieldNames()
	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewHandler())
	return r
}

func postQuote(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuote(t *testing.T) {
	r := setupRouter()

	tests := []struct {
		name        string
		body        string
		recommended string
		vehicle     string
		price       float64
	}{
		{"Recommended class", `{"passengers":10,"serviceType":"round_trip"}`, "van", "van", 216},
		{"Chosen class", `{"passengers":2,"serviceType":"one_way","vehicleType":"suv"}`, "sedan", "suv", 60},
		{"Open ended bus band", `{"passengers":40,"serviceType":"one_way"}`, "bus", "bus", 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postQuote(r, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var q QuoteResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
			assert.Equal(t, tt.recommended, q.RecommendedVehicle)
			assert.Equal(t, tt.vehicle, q.VehicleType)
			assert.Equal(t, tt.price, q.EstimatedPrice)
			assert.Equal(t, "USD", q.Currency)
		})
	}

	t.Run("Rejects bad input", func(t *testing.T) {
		for _, body := range []string{
			`{"passengers":0,"serviceType":"one_way"}`,
			`{"passengers":2,"serviceType":"hourly"}`,
			`{"passengers":2,"serviceType":"one_way","vehicleType":"boat"}`,
			`{"passengers":`,
		} {
			w := postQuote(r, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.Contains(t, w.Body.String(), `"kind":"invalid_input"`, body)
		}
	})
}

func TestListClasses(t *testing.T) {
	r := setupRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pricing/classes", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var classes []pricing.VehicleClass
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &classes))
	require.Len(t, classes, 4)
	assert.Equal(t, pricing.Bus, classes[3].Code)
	assert.Zero(t, classes[3].MaxPassengers)
}
