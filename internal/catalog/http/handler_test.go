package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/transfer-booking-backend/internal/catalog"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := catalog.Default()
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewHandler(catalog.NewService(c)))
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestCatalogEndpoints(t *testing.T) {
	r := setupRouter(t)

	t.Run("Vehicles", func(t *testing.T) {
		w := get(r, "/api/vehicles?type=bus")
		require.Equal(t, http.StatusOK, w.Code)

		var items []VehicleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		require.Len(t, items, 2)
		assert.Equal(t, "bus", items[0].Type)
		assert.NotEmpty(t, items[0].Features)
	})

	t.Run("Vehicle by id", func(t *testing.T) {
		w := get(r, "/api/vehicles/sedan-economico")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"luggageCapacity":2`)

		w = get(r, "/api/vehicles/unknown")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid filter", func(t *testing.T) {
		w := get(r, "/api/vehicles?type=limousine")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = get(r, "/api/tours?category=spa")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Tours", func(t *testing.T) {
		w := get(r, "/api/tours?popular=true")
		require.Equal(t, http.StatusOK, w.Code)

		var items []TourResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		assert.Len(t, items, 3)

		w = get(r, "/api/tours/zona-colonial")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"category":"cultural"`)
	})

	t.Run("Testimonials", func(t *testing.T) {
		w := get(r, "/api/testimonials")
		require.Equal(t, http.StatusOK, w.Code)

		var items []TestimonialResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		assert.Len(t, items, 6)
	})

	t.Run("Locations", func(t *testing.T) {
		w := get(r, "/api/locations")
		require.Equal(t, http.StatusOK, w.Code)

		var body LocationsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, OptionResponse{Value: "PUJ", Label: "Aeropuerto Punta Cana (PUJ)"}, body.Airports[0])
		assert.Len(t, body.Destinations, 6)
		assert.Len(t, body.ServiceInterests, 5)
	})
}
