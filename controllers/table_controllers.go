package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/naratipk/resto-pin-backend/events"
	"github.com/naratipk/resto-pin-backend/models"
	"github.com/naratipk/resto-pin-backend/services"
	"github.com/naratipk/resto-pin-backend/utils"
)

type TableController struct {
	DB       *gorm.DB
	Sessions *services.SessionService
	Events   events.Sink
}

func NewTableController(db *gorm.DB, sessions *services.SessionService, sink events.Sink) *TableController {
	if sink == nil {
		sink = events.NoopSink{}
	}
	return &TableController{DB: db, Sessions: sessions, Events: sink}
}

// tableRow -> baris meja + status PIN aktifnya untuk listing
type tableRow struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	Pin       *string `json:"pin"`
	HasPin    bool    `json:"has_pin"`
	CreatedAt string  `json:"created_at"`
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		Name:   body.Name,
		Status: models.TableStatusActive,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Events.Publish(events.Message{Event: events.EventTableCreated, Data: table})

	utils.InfoLogger.Printf("New table created: %s", table.Name)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> meja aktif beserta PIN aktifnya (kalau ada)
func (tc *TableController) GetAllTables(c *gin.Context) {
	var rows []tableRow
	err := tc.DB.Table("tables t").
		Select("t.id, t.name, t.status, t.created_at, p.code AS pin, "+
			"CASE WHEN p.id IS NOT NULL THEN true ELSE false END AS has_pin").
		Joins("LEFT JOIN pins p ON p.table_id = t.id AND p.status = ?", models.PinStatusActive).
		Where("t.status = ?", models.TableStatusActive).
		Order("t.created_at DESC, t.id DESC").
		Scan(&rows).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", rows)
}

// UpdateTable -> ganti nama meja
func (tc *TableController) UpdateTable(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("id = ? AND status = ?", c.Param("table_id"), models.TableStatusActive).
		First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table not found"))
		return
	}

	table.Name = body.Name
	if err := tc.DB.Save(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Events.Publish(events.Message{Event: events.EventTableUpdated, Data: table})
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// deleteGuard memeriksa kenapa sebuah meja belum boleh dihapus.
func (tc *TableController) deleteGuard(table *models.Table) (pinCount, orderCount int64, err error) {
	if err = tc.DB.Model(&models.Pin{}).
		Where("table_id = ? AND status = ?", table.ID, models.PinStatusActive).
		Count(&pinCount).Error; err != nil {
		return
	}
	err = tc.DB.Model(&models.Order{}).
		Where("table_id = ? AND status IN ?", table.ID, []string{
			models.OrderStatusPending, models.OrderStatusCooking, models.OrderStatusServed,
		}).
		Count(&orderCount).Error
	return
}

// DeleteTable -> soft delete; ditolak selama masih ada PIN aktif atau
// order yang belum selesai
func (tc *TableController) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.Where("id = ? AND status = ?", c.Param("table_id"), models.TableStatusActive).
		First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table not found or already deleted"))
		return
	}

	pinCount, orderCount, err := tc.deleteGuard(&table)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if pinCount > 0 {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("cannot delete table: %d active pin(s)", pinCount))
		return
	}
	if orderCount > 0 {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("cannot delete table: %d unfinished order(s)", orderCount))
		return
	}

	table.Status = models.TableStatusDeleted
	if err := tc.DB.Save(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Events.Publish(events.Message{Event: events.EventTableDeleted, Data: gin.H{"table_id": table.ID}})

	utils.InfoLogger.Printf("Table %d soft deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}

// CheckDeleteTable -> cek tanpa efek samping apakah meja boleh dihapus
func (tc *TableController) CheckDeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.Where("id = ? AND status = ?", c.Param("table_id"), models.TableStatusActive).
		First(&table).Error; err != nil {
		utils.RespondJSON(c, http.StatusNotFound, "Table not found or already deleted", gin.H{
			"can_delete": false,
		})
		return
	}

	pinCount, orderCount, err := tc.deleteGuard(&table)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	canDelete := pinCount == 0 && orderCount == 0
	utils.RespondJSON(c, http.StatusOK, "Delete check", gin.H{
		"can_delete": canDelete,
		"has_pins":   pinCount > 0,
		"has_orders": orderCount > 0,
	})
}

// ToggleTable -> menutup sesi meja: PIN aktif jadi inactive dan baris
// TotalOrder (unpaid) dibuat
func (tc *TableController) ToggleTable(c *gin.Context) {
	tableID, err := parseUintParam(c, "table_id")
	if err != nil {
		respondServiceError(c, services.ErrInvalidInput)
		return
	}

	pin, err := tc.Sessions.CloseSession(tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Session %s closed for table %d", pin.Code, tableID)
	utils.RespondJSON(c, http.StatusOK, "Table closed", gin.H{
		"table_id": tableID,
		"has_pin":  false,
	})
}
