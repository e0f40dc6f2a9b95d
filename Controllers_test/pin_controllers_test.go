package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/naratipk/resto-pin-backend/controllers"
	"github.com/naratipk/resto-pin-backend/models"
	"github.com/naratipk/resto-pin-backend/services"
	"github.com/naratipk/resto-pin-backend/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupControllerTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Pin{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.TotalOrder{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func performRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func setupPinRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	sessions := services.NewSessionService(db, nil)
	pinCtrl := controllers.NewPinController(db, sessions)
	r.POST("/pins", pinCtrl.CreatePin)
	r.GET("/pins/active", pinCtrl.GetActivePins)
	r.GET("/pins/:code", pinCtrl.GetPinByCode)
	return r
}

func TestPinEndpoints(t *testing.T) {
	db := setupControllerTestDB(t)
	r := setupPinRouter(db)

	table := models.Table{Name: "Meja 1", Status: models.TableStatusActive}
	db.Create(&table)

	// Buat PIN baru
	w := doJSON(t, r, "POST", "/pins", map[string]interface{}{
		"table_id": table.ID,
		"pin":      "abc123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "ABC123", data["pin"])

	// PIN aktif masih ada -> idempoten, 200 dengan PIN lama
	w = doJSON(t, r, "POST", "/pins", map[string]interface{}{
		"table_id": table.ID,
		"pin":      "XYZ999",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody(t, w)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, "ABC123", data["pin"])

	// Daftar PIN aktif
	w = doJSON(t, r, "GET", "/pins/active", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody(t, w)
	list := resp["data"].([]interface{})
	assert.Len(t, list, 1)

	// Detail PIN by code
	w = doJSON(t, r, "GET", "/pins/ABC123", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody(t, w)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, "Meja 1", data["table_name"])

	// PIN tidak dikenal
	w = doJSON(t, r, "GET", "/pins/NOPE00", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Meja tidak dikenal
	w = doJSON(t, r, "POST", "/pins", map[string]interface{}{
		"table_id": 9999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
