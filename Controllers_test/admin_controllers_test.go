package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roman-z-solik/table-booking/models"
)

func TestDashboardStats(t *testing.T) {
	db, r := newTestEnv(t)
	admin := createUser(t, db, "admin@example.com", "admin")
	user := createUser(t, db, "guest@example.com", "guest")
	table := createTable(t, db, 1, 4)
	token := tokenFor(t, user)

	created := doJSON(t, r, "POST", "/bookings", map[string]interface{}{
		"table_id":       table.ID,
		"date":           tomorrow(),
		"start_time":     "12:00",
		"duration_hours": 2,
		"guests_count":   2,
	}, token)
	assert.Equal(t, http.StatusCreated, created.Code)

	w := doJSON(t, r, "GET", "/admin/dashboard/stats", nil, tokenFor(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_bookings"])
	assert.Equal(t, float64(2), data["total_users"])

	bookingStats := data["booking_stats"].(map[string]interface{})
	assert.Equal(t, float64(1), bookingStats["active"])
	assert.Equal(t, float64(0), bookingStats["cancelled"])
}

func TestExportImportRoundTrip(t *testing.T) {
	db, r := newTestEnv(t)
	admin := createUser(t, db, "admin@example.com", "admin")
	user := createUser(t, db, "guest@example.com", "guest")
	table := createTable(t, db, 1, 4)
	adminToken := tokenFor(t, admin)

	created := doJSON(t, r, "POST", "/bookings", map[string]interface{}{
		"table_id":       table.ID,
		"date":           tomorrow(),
		"start_time":     "12:00",
		"duration_hours": 2,
		"guests_count":   2,
	}, tokenFor(t, user))
	assert.Equal(t, http.StatusCreated, created.Code)

	w := doJSON(t, r, "GET", "/admin/export", nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	var dump map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &dump))
	assert.Len(t, dump["tables"].([]interface{}), 1)
	assert.Len(t, dump["bookings"].([]interface{}), 1)

	// Wipe the booking tables and load the dump back.
	assert.NoError(t, db.Where("1 = 1").Delete(&models.Booking{}).Error)
	assert.NoError(t, db.Where("1 = 1").Delete(&models.Table{}).Error)

	w = doJSON(t, r, "POST", "/admin/import", dump, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["loaded"])
	assert.Equal(t, float64(0), data["failed"])

	var bookings int64
	db.Model(&models.Booking{}).Count(&bookings)
	assert.Equal(t, int64(1), bookings)
}
