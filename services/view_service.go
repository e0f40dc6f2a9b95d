package services

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/naratipk/resto-pin-backend/models"
	"github.com/naratipk/resto-pin-backend/utils"
)

// ViewService adalah sisi baca: derivasi grup/receipt/histori dari store.
// Tidak ada invariant tulis di sini; reduksi grouping ada di GroupRowsByPin.
type ViewService struct {
	DB *gorm.DB
}

func NewViewService(db *gorm.DB) *ViewService {
	return &ViewService{DB: db}
}

const orderRowSelect = "o.id AS order_id, p.code AS pin, t.name AS table_name, " +
	"m.name AS menu_name, o.note, o.amount, o.total_price, o.status, o.created_at"

// ActiveOrders -> semua order pending/cooking/served, dikelompokkan per PIN.
func (v *ViewService) ActiveOrders() ([]SessionGroup, error) {
	var rows []OrderRow
	err := v.DB.Table("orders o").
		Select(orderRowSelect).
		Joins("JOIN pins p ON o.pin_id = p.id").
		Joins("JOIN tables t ON o.table_id = t.id").
		Joins("JOIN menu_items m ON o.menu_item_id = m.id").
		Where("o.status IN ?", []string{
			models.OrderStatusPending, models.OrderStatusCooking, models.OrderStatusServed,
		}).
		Order("p.created_at DESC, p.id DESC, o.created_at ASC, o.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return GroupRowsByPin(rows), nil
}

// CompletedTotals -> tagihan berjalan: order completed yang PIN-nya masih
// aktif. Total jatuh ke jumlah baris order selama belum ada TotalOrder.
func (v *ViewService) CompletedTotals() ([]SessionGroup, error) {
	var rows []OrderRow
	err := v.DB.Table("orders o").
		Select(orderRowSelect + ", tot.total_amount AS total, " +
			"COALESCE(tot.payment_status, 'unpaid') AS payment_status").
		Joins("JOIN pins p ON o.pin_id = p.id").
		Joins("JOIN tables t ON p.table_id = t.id").
		Joins("JOIN menu_items m ON o.menu_item_id = m.id").
		Joins("LEFT JOIN total_orders tot ON tot.pin_id = p.id").
		Where("o.status = ? AND p.status = ?", models.OrderStatusCompleted, models.PinStatusActive).
		Order("p.created_at DESC, p.id DESC, o.created_at ASC, o.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return GroupRowsByPin(rows), nil
}

// HistoryLine adalah satu baris histori pesanan untuk satu PIN.
type HistoryLine struct {
	ID         uint      `json:"id"`
	MenuName   string    `json:"menu_name"`
	Price      float64   `json:"price"`
	Amount     int       `json:"amount"`
	Note       string    `json:"note,omitempty"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// History -> semua order milik PIN aktif, terbaru dulu.
func (v *ViewService) History(pinCode string) ([]HistoryLine, error) {
	var pin models.Pin
	if err := v.DB.Where("code = ? AND status = ?", pinCode, models.PinStatusActive).
		First(&pin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(ErrNotFound, "pin not found or not active")
		}
		return nil, err
	}

	var lines []HistoryLine
	err := v.DB.Table("orders o").
		Select("o.id, m.name AS menu_name, m.price, o.amount, o.note, o.status, o.total_price, o.created_at").
		Joins("JOIN menu_items m ON o.menu_item_id = m.id").
		Where("o.pin_id = ?", pin.ID).
		Order("o.created_at DESC, o.id DESC").
		Scan(&lines).Error
	return lines, err
}

type ReceiptItem struct {
	Amount    int       `json:"amount"`
	MenuName  string    `json:"menu_name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type Receipt struct {
	Pin            string        `json:"pin"`
	TableName      string        `json:"table_name"`
	PaymentDate    time.Time     `json:"payment_date"`
	Total          float64       `json:"total"`
	TotalFormatted string        `json:"total_formatted"`
	Items          []ReceiptItem `json:"items"`
}

// BuildReceipt -> struk untuk sesi yang sudah ditutup dan dibayar.
// PIN masih aktif -> SessionInvalid; belum ada pembayaran paid -> NotFound.
func (v *ViewService) BuildReceipt(pinCode string) (*Receipt, error) {
	var pin models.Pin
	if err := v.DB.Where("code = ?", pinCode).First(&pin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(ErrNotFound, "pin not found")
		}
		return nil, err
	}
	if pin.Status != models.PinStatusInactive {
		return nil, errors.Wrap(ErrSessionInvalid, "pin not yet closed")
	}

	var table models.Table
	if err := v.DB.First(&table, pin.TableID).Error; err != nil {
		return nil, err
	}

	var total models.TotalOrder
	if err := v.DB.Where("pin_id = ? AND payment_status = ?", pin.ID, models.PaymentStatusPaid).
		First(&total).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(ErrNotFound, "no payment found for this pin")
		}
		return nil, err
	}

	var items []ReceiptItem
	if err := v.DB.Table("orders o").
		Select("o.amount, m.name AS menu_name, o.total_price AS price, o.created_at").
		Joins("JOIN menu_items m ON o.menu_item_id = m.id").
		Where("o.pin_id = ?", pin.ID).
		Order("o.created_at ASC, o.id ASC").
		Scan(&items).Error; err != nil {
		return nil, err
	}

	return &Receipt{
		Pin:            pin.Code,
		TableName:      table.Name,
		PaymentDate:    total.UpdatedAt,
		Total:          total.TotalAmount,
		TotalFormatted: utils.FormatCurrency(total.TotalAmount),
		Items:          items,
	}, nil
}

// PaymentHistory -> semua sesi yang sudah paid, opsional difilter satu
// tanggal kalender (format YYYY-MM-DD).
func (v *ViewService) PaymentHistory(date string) ([]SessionGroup, error) {
	query := v.DB.Table("total_orders tot").
		Select("o.id AS order_id, p.code AS pin, t.name AS table_name, " +
			"m.name AS menu_name, o.note, o.amount, o.total_price, o.status, o.created_at, " +
			"tot.total_amount AS total, tot.payment_status, tot.updated_at AS payment_date").
		Joins("JOIN pins p ON tot.pin_id = p.id").
		Joins("JOIN tables t ON p.table_id = t.id").
		Joins("JOIN orders o ON o.pin_id = p.id").
		Joins("JOIN menu_items m ON o.menu_item_id = m.id").
		Where("tot.payment_status = ?", models.PaymentStatusPaid)
	if date != "" {
		query = query.Where("DATE(tot.created_at) = ?", date)
	}

	var rows []OrderRow
	err := query.
		Order("tot.created_at DESC, p.id DESC, o.created_at ASC, o.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return GroupRowsByPin(rows), nil
}
