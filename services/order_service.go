package services

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/naratipk/resto-pin-backend/events"
	"github.com/naratipk/resto-pin-backend/models"
)

// OrderService mengelola order dalam satu sesi PIN dan status pembayarannya.
type OrderService struct {
	DB     *gorm.DB
	Events events.Sink
}

func NewOrderService(db *gorm.DB, sink events.Sink) *OrderService {
	if sink == nil {
		sink = events.NoopSink{}
	}
	return &OrderService{DB: db, Events: sink}
}

// OrderItemInput adalah satu item pesanan dari client. Harga satuan ikut
// dikirim dan dibekukan saat insert.
type OrderItemInput struct {
	MenuItemID uint    `json:"id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Note       string  `json:"note"`
}

// PlaceOrders menyimpan satu batch order atomik untuk PIN aktif.
// Validasi PIN dilakukan di transaksi yang sama dengan insert, sehingga
// CloseSession yang bersamaan tidak bisa menyelip di antaranya.
func (s *OrderService) PlaceOrders(pinCode string, tableID uint, items []OrderItemInput) ([]uint, error) {
	if pinCode == "" || tableID == 0 || len(items) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "missing required fields")
	}

	var orderIDs []uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Lock meja dulu: CloseSession yang bersamaan menunggu sampai
		// batch ini commit, atau batch ini melihat PIN yang sudah ditutup.
		ok, err := lockActiveTable(tx, tableID)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrap(ErrSessionInvalid, "invalid or inactive pin")
		}

		var pin models.Pin
		if err := tx.Where("code = ? AND table_id = ? AND status = ?",
			pinCode, tableID, models.PinStatusActive).First(&pin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(ErrSessionInvalid, "invalid or inactive pin")
			}
			return err
		}

		for i, item := range items {
			if item.MenuItemID == 0 || item.Quantity <= 0 || item.Price <= 0 {
				return errors.Wrap(ErrInvalidInput, fmt.Sprintf("invalid item at index %d", i))
			}
			var menu models.MenuItem
			if err := tx.Where("id = ? AND status = ?", item.MenuItemID, models.MenuStatusActive).
				First(&menu).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errors.Wrap(ErrInvalidInput,
						fmt.Sprintf("unknown menu item %d at index %d", item.MenuItemID, i))
				}
				return err
			}

			order := models.Order{
				PinID:      pin.ID,
				TableID:    tableID,
				MenuItemID: item.MenuItemID,
				Amount:     item.Quantity,
				Note:       item.Note,
				TotalPrice: item.Price * float64(item.Quantity),
				Status:     models.OrderStatusPending,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			orderIDs = append(orderIDs, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Events.Publish(events.Message{
		Event: events.EventOrderCreated,
		Data: map[string]interface{}{
			"table_id":  tableID,
			"order_ids": orderIDs,
			"status":    models.OrderStatusPending,
		},
	})
	return orderIDs, nil
}

// TransitionOrderStatus memindahkan status satu order mengikuti matriks
// transisi di models: maju pending -> cooking -> served -> completed,
// cancel dari status non-terminal manapun.
func (s *OrderService) TransitionOrderStatus(orderID uint, newStatus string) (*models.Order, error) {
	if !models.IsValidOrderStatus(newStatus) {
		return nil, errors.Wrap(ErrInvalidInput, "invalid status")
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(ErrNotFound, "order not found")
			}
			return err
		}
		if !models.CanTransitionOrder(order.Status, newStatus) {
			return errors.Wrap(ErrInvalidInput,
				fmt.Sprintf("cannot transition from %s to %s", order.Status, newStatus))
		}
		order.Status = newStatus
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	s.Events.Publish(events.Message{
		Event: events.EventOrderStatusChanged,
		Data: map[string]interface{}{
			"order_id": order.ID,
			"status":   order.Status,
		},
	})
	return &order, nil
}

// RecordPayment mengubah status pembayaran TotalOrder sebuah PIN.
// Update-only: baris TotalOrder dibuat saat CloseSession; PIN tanpa baris
// tersebut gagal dengan NotFound.
func (s *OrderService) RecordPayment(pinCode string, paymentStatus string) error {
	if paymentStatus != models.PaymentStatusUnpaid && paymentStatus != models.PaymentStatusPaid {
		return errors.Wrap(ErrInvalidInput, "invalid payment status")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var pin models.Pin
		if err := tx.Where("code = ?", pinCode).First(&pin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(ErrNotFound, "pin not found")
			}
			return err
		}

		res := tx.Model(&models.TotalOrder{}).
			Where("pin_id = ?", pin.ID).
			Update("payment_status", paymentStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.Wrap(ErrNotFound, "no total orders found for this pin")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Events.Publish(events.Message{
		Event: events.EventPaymentChanged,
		Data: map[string]interface{}{
			"pin":    pinCode,
			"status": paymentStatus,
		},
	})
	return nil
}
