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

type CategoryController struct {
	DB     *gorm.DB
	Events events.Sink
}

func NewCategoryController(db *gorm.DB, sink events.Sink) *CategoryController {
	if sink == nil {
		sink = events.NoopSink{}
	}
	return &CategoryController{DB: db, Events: sink}
}

// GetAllCategories -> kategori aktif saja
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Where("status = ?", models.CategoryStatusActive).
		Order("created_at DESC, id DESC").
		Find(&categories).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All categories", categories)
}

// CreateCategory
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.Category{
		Name:   body.Name,
		Status: models.CategoryStatusActive,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	cc.Events.Publish(events.Message{Event: events.EventCategoryChanged, Data: category})
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := cc.DB.Where("id = ? AND status = ?", c.Param("cat_id"), models.CategoryStatusActive).
		First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("category not found"))
		return
	}

	category.Name = body.Name
	if err := cc.DB.Save(&category).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	cc.Events.Publish(events.Message{Event: events.EventCategoryChanged, Data: category})
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// activeMenuCount menghitung menu aktif yang masih memakai kategori ini.
func (cc *CategoryController) activeMenuCount(categoryID uint) (int64, error) {
	var count int64
	err := cc.DB.Model(&models.MenuItem{}).
		Where("category_id = ? AND status = ?", categoryID, models.MenuStatusActive).
		Count(&count).Error
	return count, err
}

// DeleteCategory -> soft delete; ditolak selama masih ada menu aktif
// yang mengacu ke kategori ini
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	var category models.Category
	if err := cc.DB.Where("id = ? AND status = ?", c.Param("cat_id"), models.CategoryStatusActive).
		First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("category not found or already deleted"))
		return
	}

	count, err := cc.activeMenuCount(category.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("cannot delete category: %d active menu item(s) still use it", count))
		return
	}

	category.Status = models.CategoryStatusDeleted
	if err := cc.DB.Save(&category).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	cc.Events.Publish(events.Message{Event: events.EventCategoryChanged, Data: category})
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": category.ID})
}

// CheckDeleteCategory -> cek tanpa efek samping
func (cc *CategoryController) CheckDeleteCategory(c *gin.Context) {
	var category models.Category
	if err := cc.DB.Where("id = ? AND status = ?", c.Param("cat_id"), models.CategoryStatusActive).
		First(&category).Error; err != nil {
		utils.RespondJSON(c, http.StatusNotFound, "Category not found or already deleted", gin.H{
			"can_delete": false,
		})
		return
	}

	count, err := cc.activeMenuCount(category.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Delete check", gin.H{
		"can_delete":     count == 0,
		"has_menu_items": count > 0,
		"usage_count":    count,
	})
}
