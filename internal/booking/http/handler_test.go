package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/transfer-booking-backend/internal/booking"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/response"
)

type stubVoucher struct {
	err error
}

func (v stubVoucher) Render(w io.Writer, b *booking.Booking) error {
	if v.err != nil {
		return v.err
	}
	_, err := io.WriteString(w, "%PDF-1.3 "+b.ID)
	return err
}

func requireAdmin(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer admin" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "kind": "unauthorized"})
		return
	}
	c.Next()
}

func setupRouter(t *testing.T, vouchers VoucherRenderer) (*gin.Engine, booking.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	request.UseJSONFieldNames()

	svc := booking.NewService(booking.NewMemoryRepository(), nil)
	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewHandler(svc, vouchers), requireAdmin)
	return r, svc
}

func doJSON(r http.Handler, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer admin")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bookingBody() map[string]any {
	return map[string]any{
		"customerName":   "Ana Pérez",
		"customerEmail":  "ana@example.com",
		"customerPhone":  "+1 809 555 0101",
		"origin":         "PUJ",
		"destination":    "bavaro",
		"pickupDate":     "2026-12-20T14:30",
		"passengers":     4,
		"vehicleType":    "suv",
		"serviceType":    "one_way",
		"estimatedPrice": 60,
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestCreateBooking(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, _ := setupRouter(t, stubVoucher{})

		w := doJSON(r, http.MethodPost, "/api/bookings", bookingBody(), false)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, 60.0, resp.EstimatedPrice)
		assert.Equal(t, "suv", resp.VehicleType)
		assert.Nil(t, resp.ReturnDate)
		assert.Equal(t, 18, resp.PickupDate.UTC().Hour())
	})

	tests := []struct {
		name     string
		mutate   func(b map[string]any)
		wantCode int
		wantKind string
		field    string
	}{
		{"Missing phone", func(b map[string]any) { delete(b, "customerPhone") }, http.StatusBadRequest, "invalid_input", "customerPhone"},
		{"Bad email", func(b map[string]any) { b["customerEmail"] = "nope" }, http.StatusBadRequest, "invalid_input", "customerEmail"},
		{"Zero passengers", func(b map[string]any) { b["passengers"] = 0 }, http.StatusBadRequest, "invalid_input", "passengers"},
		{"Passengers as string", func(b map[string]any) { b["passengers"] = "four" }, http.StatusBadRequest, "invalid_input", "passengers"},
		{"Unknown vehicle", func(b map[string]any) { b["vehicleType"] = "limousine" }, http.StatusBadRequest, "invalid_input", "vehicleType"},
		{"Unparseable pickup date", func(b map[string]any) { b["pickupDate"] = "next friday" }, http.StatusBadRequest, "invalid_input", "pickupDate"},
		{"Round trip without return date", func(b map[string]any) {
			b["serviceType"] = "round_trip"
			b["estimatedPrice"] = 108
		}, http.StatusBadRequest, "invalid_input", "returnDate"},
		{"Missing estimate", func(b map[string]any) { delete(b, "estimatedPrice") }, http.StatusBadRequest, "invalid_input", "estimatedPrice"},
		{"Estimate mismatch", func(b map[string]any) { b["estimatedPrice"] = 35 }, http.StatusUnprocessableEntity, "invalid_estimate", "estimatedPrice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, svc := setupRouter(t, stubVoucher{})
			body := bookingBody()
			tt.mutate(body)

			w := doJSON(r, http.MethodPost, "/api/bookings", body, false)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())

			errBody := decodeError(t, w)
			assert.Equal(t, tt.wantKind, string(errBody.Kind))
			assert.Equal(t, tt.field, errBody.Field)

			_, total, err := svc.List(context.Background(), booking.Filter{})
			require.NoError(t, err)
			assert.Zero(t, total)
		})
	}

	t.Run("Round trip with return date", func(t *testing.T) {
		r, _ := setupRouter(t, stubVoucher{})
		body := bookingBody()
		body["serviceType"] = "round_trip"
		body["returnDate"] = "2026-12-27"
		body["estimatedPrice"] = 108

		w := doJSON(r, http.MethodPost, "/api/bookings", body, false)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"returnDate":"2026-12-27T00:00:00-04:00"`)
	})
}

func TestGetBooking(t *testing.T) {
	r, svc := setupRouter(t, stubVoucher{})
	list := func() int {
		_, total, err := svc.List(context.Background(), booking.Filter{})
		require.NoError(t, err)
		return total
	}

	w := doJSON(r, http.MethodPost, "/api/bookings", bookingBody(), false)
	require.Equal(t, http.StatusCreated, w.Code)
	var created BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	t.Run("Found", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/bookings/"+created.ID, nil, false)
		require.Equal(t, http.StatusOK, w.Code)

		var got BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, created.ID, got.ID)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("Not found", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/bookings/6f1c1d0e-9d55-4a70-a3c4-4b8f1e7f0c11", nil, false)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", string(decodeError(t, w).Kind))
	})

	t.Run("Invalid UUID", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/bookings/abc", nil, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	assert.Equal(t, 1, list())
}

func TestVoucher(t *testing.T) {
	t.Run("Renders PDF", func(t *testing.T) {
		r, _ := setupRouter(t, stubVoucher{})
		w := doJSON(r, http.MethodPost, "/api/bookings", bookingBody(), false)
		var created BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = doJSON(r, http.MethodGet, "/api/bookings/"+created.ID+"/voucher", nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), created.ID)
		assert.Contains(t, w.Body.String(), created.ID)
	})

	t.Run("Render failure is a JSON 500", func(t *testing.T) {
		r, _ := setupRouter(t, stubVoucher{err: errors.New("font missing")})
		w := doJSON(r, http.MethodPost, "/api/bookings", bookingBody(), false)
		var created BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = doJSON(r, http.MethodGet, "/api/bookings/"+created.ID+"/voucher", nil, false)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal", string(decodeError(t, w).Kind))
	})
}

func TestAdminBookings(t *testing.T) {
	r, _ := setupRouter(t, stubVoucher{})

	var ids []string
	for i := 0; i < 3; i++ {
		w := doJSON(r, http.MethodPost, "/api/bookings", bookingBody(), false)
		require.Equal(t, http.StatusCreated, w.Code)
		var created BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		ids = append(ids, created.ID)
	}

	t.Run("Requires admin", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/admin/bookings", nil, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = doJSON(r, http.MethodPatch, "/api/admin/bookings/"+ids[0]+"/status", map[string]string{"status": "confirmed"}, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Update status", func(t *testing.T) {
		w := doJSON(r, http.MethodPatch, "/api/admin/bookings/"+ids[0]+"/status", map[string]string{"status": "confirmed"}, true)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "confirmed", got.Status)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
	})

	t.Run("Unknown status", func(t *testing.T) {
		w := doJSON(r, http.MethodPatch, "/api/admin/bookings/"+ids[0]+"/status", map[string]string{"status": "lost"}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "status", decodeError(t, w).Field)
	})

	t.Run("Missing booking", func(t *testing.T) {
		w := doJSON(r, http.MethodPatch, "/api/admin/bookings/6f1c1d0e-9d55-4a70-a3c4-4b8f1e7f0c11/status", map[string]string{"status": "confirmed"}, true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("List with filter", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/admin/bookings?status=confirmed", nil, true)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.PageResponse[BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, ids[0], page.Items[0].ID)

		w = doJSON(r, http.MethodGet, "/api/admin/bookings?page=1&page_size=2", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 3, page.Total)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 2, page.PageSize)
	})

	t.Run("Page far past the end", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/admin/bookings?page=92233720368547760&page_size=100", nil, true)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var page response.PageResponse[BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 3, page.Total)
		assert.Empty(t, page.Items)
	})

	t.Run("Bad list params", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/admin/bookings?status=lost", nil, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(r, http.MethodGet, "/api/admin/bookings?page_size=500", nil, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
