package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/naratipk/resto-pin-backend/controllers"
	"github.com/naratipk/resto-pin-backend/models"
	"github.com/naratipk/resto-pin-backend/services"
)

func setupTableRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	sessions := services.NewSessionService(db, nil)
	tableCtrl := controllers.NewTableController(db, sessions, nil)
	pinCtrl := controllers.NewPinController(db, sessions)
	r.POST("/tables", tableCtrl.CreateTable)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	r.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	r.GET("/tables/:table_id/check-delete", tableCtrl.CheckDeleteTable)
	r.POST("/tables/:table_id/toggle", tableCtrl.ToggleTable)
	r.POST("/pins", pinCtrl.CreatePin)
	return r
}

func TestTableEndpoints(t *testing.T) {
	db := setupControllerTestDB(t)
	r := setupTableRouter(db)

	// Create
	w := doJSON(t, r, "POST", "/tables", map[string]interface{}{"name": "Meja 1"})
	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody(t, w)
	tableID := int(resp["data"].(map[string]interface{})["id"].(float64))

	// Listing: belum ada PIN
	w = doJSON(t, r, "GET", "/tables", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody(t, w)
	rows := resp["data"].([]interface{})
	assert.Len(t, rows, 1)
	assert.Equal(t, false, rows[0].(map[string]interface{})["has_pin"])

	// Update nama
	w = doJSON(t, r, "PATCH", fmt.Sprintf("/tables/%d", tableID),
		map[string]interface{}{"name": "Meja VIP"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Toggle tanpa PIN aktif -> Conflict
	w = doJSON(t, r, "POST", fmt.Sprintf("/tables/%d/toggle", tableID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Buka sesi, listing sekarang menunjukkan PIN
	w = doJSON(t, r, "POST", "/pins", map[string]interface{}{
		"table_id": tableID, "pin": "ABC123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", "/tables", nil)
	resp = decodeBody(t, w)
	row := resp["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, true, row["has_pin"])
	assert.Equal(t, "ABC123", row["pin"])

	// Hapus meja dengan PIN aktif -> ditolak
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/tables/%d", tableID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, "GET", fmt.Sprintf("/tables/%d/check-delete", tableID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody(t, w)
	check := resp["data"].(map[string]interface{})
	assert.Equal(t, false, check["can_delete"])
	assert.Equal(t, true, check["has_pins"])

	// Tutup sesi lewat toggle
	w = doJSON(t, r, "POST", fmt.Sprintf("/tables/%d/toggle", tableID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody(t, w)
	assert.Equal(t, false, resp["data"].(map[string]interface{})["has_pin"])

	// Sekarang boleh dihapus
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/tables/%d", tableID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var table models.Table
	db.First(&table, tableID)
	assert.Equal(t, models.TableStatusDeleted, table.Status)

	// Listing tidak lagi memuat meja terhapus
	w = doJSON(t, r, "GET", "/tables", nil)
	resp = decodeBody(t, w)
	assert.Len(t, resp["data"].([]interface{}), 0)
}

func TestDeleteTableBlockedByOrders(t *testing.T) {
	db := setupControllerTestDB(t)
	r := setupTableRouter(db)

	table := models.Table{Name: "Meja 1", Status: models.TableStatusActive}
	db.Create(&table)

	// Order belum selesai tanpa PIN aktif (sesi baru saja ditutup paksa)
	db.Create(&models.Order{PinID: 1, TableID: table.ID, MenuItemID: 1,
		Amount: 1, TotalPrice: 50, Status: models.OrderStatusCooking})

	w := doJSON(t, r, "DELETE", fmt.Sprintf("/tables/%d", table.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Order selesai -> boleh dihapus
	db.Model(&models.Order{}).Where("table_id = ?", table.ID).
		Update("status", models.OrderStatusCompleted)
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/tables/%d", table.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
