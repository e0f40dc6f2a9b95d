package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/naratipk/resto-pin-backend/events"
	"github.com/naratipk/resto-pin-backend/models"
	"github.com/naratipk/resto-pin-backend/utils"
)

type MenuController struct {
	DB     *gorm.DB
	Events events.Sink
}

func NewMenuController(db *gorm.DB, sink events.Sink) *MenuController {
	if sink == nil {
		sink = events.NoopSink{}
	}
	return &MenuController{DB: db, Events: sink}
}

type menuRow struct {
	models.MenuItem
	CategoryName string `json:"category_name"`
}

// GetAllMenus -> semua menu aktif + nama kategori
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var rows []menuRow
	err := mc.DB.Table("menu_items m").
		Select("m.*, c.name AS category_name").
		Joins("LEFT JOIN categories c ON m.category_id = c.id").
		Where("m.status = ?", models.MenuStatusActive).
		Order("m.created_at DESC, m.id DESC").
		Scan(&rows).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", rows)
}

// GetAvailableMenus -> untuk customer: menu aktif yang tersedia,
// opsional difilter ?category_id=
func (mc *MenuController) GetAvailableMenus(c *gin.Context) {
	query := mc.DB.Table("menu_items m").
		Select("m.*, c.name AS category_name").
		Joins("LEFT JOIN categories c ON m.category_id = c.id").
		Where("m.status = ? AND m.is_available = ?", models.MenuStatusActive, true)
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("m.category_id = ?", categoryID)
	}

	var rows []menuRow
	if err := query.Order("c.name, m.name").Scan(&rows).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available menus", rows)
}

// CreateMenu
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var body struct {
		Name       string  `json:"name" binding:"required"`
		Price      float64 `json:"price" binding:"required,gt=0"`
		CategoryID uint    `json:"category_id" binding:"required"`
		Img        *string `json:"img"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Kategori harus aktif
	var category models.Category
	if err := mc.DB.Where("id = ? AND status = ?", body.CategoryID, models.CategoryStatusActive).
		First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("category not found or not active"))
		return
	}

	menu := models.MenuItem{
		CategoryID:  body.CategoryID,
		Name:        body.Name,
		Price:       body.Price,
		Img:         body.Img,
		IsAvailable: true,
		Status:      models.MenuStatusActive,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	mc.Events.Publish(events.Message{Event: events.EventMenuChanged, Data: menu})
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu -> update field yang dikirim saja
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	var body struct {
		Name       *string  `json:"name"`
		Price      *float64 `json:"price"`
		CategoryID *uint    `json:"category_id"`
		Img        *string  `json:"img"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.MenuItem
	if err := mc.DB.Where("id = ? AND status = ?", c.Param("menu_id"), models.MenuStatusActive).
		First(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("menu not found"))
		return
	}

	if body.Name != nil {
		menu.Name = *body.Name
	}
	if body.Price != nil {
		if *body.Price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("price must be positive"))
			return
		}
		// Harga baru hanya berlaku untuk order berikutnya; total_price
		// order lama sudah dibekukan saat insert.
		menu.Price = *body.Price
	}
	if body.CategoryID != nil {
		menu.CategoryID = *body.CategoryID
	}
	if body.Img != nil {
		menu.Img = body.Img
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	mc.Events.Publish(events.Message{Event: events.EventMenuChanged, Data: menu})
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// UpdateMenuAvailability -> toggle habis/tersedia tanpa menyentuh field lain
func (mc *MenuController) UpdateMenuAvailability(c *gin.Context) {
	var body struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.MenuItem
	if err := mc.DB.Where("id = ? AND status = ?", c.Param("menu_id"), models.MenuStatusActive).
		First(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("menu not found"))
		return
	}

	menu.IsAvailable = *body.IsAvailable
	if err := mc.DB.Save(&menu).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	mc.Events.Publish(events.Message{Event: events.EventMenuChanged, Data: menu})
	utils.RespondJSON(c, http.StatusOK, "Menu availability updated", menu)
}

// DeleteMenu -> soft delete, selalu boleh: order lama tetap menyimpan
// referensi historisnya
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	var menu models.MenuItem
	if err := mc.DB.Where("id = ? AND status = ?", c.Param("menu_id"), models.MenuStatusActive).
		First(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("menu not found or already deleted"))
		return
	}

	menu.Status = models.MenuStatusDeleted
	menu.IsAvailable = false
	if err := mc.DB.Save(&menu).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	mc.Events.Publish(events.Message{Event: events.EventMenuChanged, Data: menu})
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": menu.ID})
}

// CheckDeleteMenu -> menu selalu boleh dihapus
func (mc *MenuController) CheckDeleteMenu(c *gin.Context) {
	var menu models.MenuItem
	if err := mc.DB.Where("id = ? AND status = ?", c.Param("menu_id"), models.MenuStatusActive).
		First(&menu).Error; err != nil {
		utils.RespondJSON(c, http.StatusNotFound, "Menu not found or already deleted", gin.H{
			"can_delete": false,
		})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delete check", gin.H{"can_delete": true})
}
