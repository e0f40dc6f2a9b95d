package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/naratipk/resto-pin-backend/services"
	"github.com/naratipk/resto-pin-backend/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
	Views  *services.ViewService
}

func NewOrderController(db *gorm.DB, orders *services.OrderService, views *services.ViewService) *OrderController {
	return &OrderController{DB: db, Orders: orders, Views: views}
}

// CreateOrder -> satu batch pesanan untuk PIN aktif, atomik
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body struct {
		Pin     string                    `json:"pin" binding:"required"`
		TableID uint                      `json:"table_id" binding:"required"`
		Items   []services.OrderItemInput `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orderIDs, err := oc.Orders.PlaceOrders(body.Pin, body.TableID, body.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("%d orders created for pin %s (table %d)", len(orderIDs), body.Pin, body.TableID)
	utils.RespondJSON(c, http.StatusCreated, "Orders created successfully", gin.H{
		"order_ids": orderIDs,
	})
}

// GetGroupedOrders -> order pending/cooking/served per sesi PIN
func (oc *OrderController) GetGroupedOrders(c *gin.Context) {
	groups, err := oc.Views.ActiveOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Grouped orders", groups)
}

// UpdateOrderStatus -> transisi status satu order
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		respondServiceError(c, services.ErrInvalidInput)
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.TransitionOrderStatus(uint(orderID), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// GetCompletedTotals -> tagihan berjalan sesi yang masih terbuka
func (oc *OrderController) GetCompletedTotals(c *gin.Context) {
	groups, err := oc.Views.CompletedTotals()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Completed totals", groups)
}

// UpdatePaymentStatus -> ubah status pembayaran sesi (unpaid/paid)
func (oc *OrderController) UpdatePaymentStatus(c *gin.Context) {
	pinCode := c.Param("pin")

	var body struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.Orders.RecordPayment(pinCode, body.PaymentStatus); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment status updated successfully", nil)
}

// GetOrderHistory -> histori pesanan satu PIN aktif
func (oc *OrderController) GetOrderHistory(c *gin.Context) {
	lines, err := oc.Views.History(c.Param("pin"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order history", lines)
}

// GetPaymentHistory -> sesi yang sudah dibayar, opsional filter ?date=YYYY-MM-DD
func (oc *OrderController) GetPaymentHistory(c *gin.Context) {
	groups, err := oc.Views.PaymentHistory(c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment history", groups)
}

// GetReceipt -> struk; hanya untuk sesi yang sudah ditutup dan dibayar
func (oc *OrderController) GetReceipt(c *gin.Context) {
	receipt, err := oc.Views.BuildReceipt(c.Param("pin"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt", receipt)
}
