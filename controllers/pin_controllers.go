package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/naratipk/resto-pin-backend/services"
	"github.com/naratipk/resto-pin-backend/utils"
)

type PinController struct {
	DB       *gorm.DB
	Sessions *services.SessionService
}

func NewPinController(db *gorm.DB, sessions *services.SessionService) *PinController {
	return &PinController{DB: db, Sessions: sessions}
}

// CreatePin -> buka sesi untuk meja. Kalau masih ada PIN aktif, PIN lama
// dikembalikan (200); kalau tidak, PIN baru dibuat (201).
func (pc *PinController) CreatePin(c *gin.Context) {
	var body struct {
		TableID uint   `json:"table_id" binding:"required"`
		Pin     string `json:"pin"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pin, created, err := pc.Sessions.OpenSession(body.TableID, body.Pin)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if created {
		utils.InfoLogger.Printf("Pin %s issued for table %d", pin.Code, pin.TableID)
		utils.RespondJSON(c, http.StatusCreated, "Pin created", pin)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active pin already exists", pin)
}

// GetActivePins -> daftar {table_id, pin} yang masih aktif (24 jam terakhir)
func (pc *PinController) GetActivePins(c *gin.Context) {
	pins, err := pc.Sessions.ActivePins()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	list := make([]gin.H, 0, len(pins))
	for _, pin := range pins {
		list = append(list, gin.H{
			"table_id": pin.TableID,
			"pin":      pin.Code,
		})
	}
	utils.RespondJSON(c, http.StatusOK, "Active pins", list)
}

// GetPinByCode -> detail satu PIN aktif beserta nama mejanya
func (pc *PinController) GetPinByCode(c *gin.Context) {
	code := c.Param("code")

	pin, tableName, err := pc.Sessions.FindActivePin(code)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Pin detail", gin.H{
		"id":         pin.ID,
		"pin":        pin.Code,
		"table_id":   pin.TableID,
		"table_name": tableName,
		"status":     pin.Status,
		"created_at": pin.CreatedAt,
	})
}
