package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusCooking   = "cooking"
	OrderStatusServed    = "served"
	OrderStatusCompleted = "completed"
	OrderStatusCancel    = "cancel"
)

// orderTransitions: progresi maju pending -> cooking -> served -> completed,
// cancel boleh dari status apapun yang belum terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusCooking, OrderStatusServed, OrderStatusCompleted, OrderStatusCancel},
	OrderStatusCooking:   {OrderStatusServed, OrderStatusCompleted, OrderStatusCancel},
	OrderStatusServed:    {OrderStatusCompleted, OrderStatusCancel},
	OrderStatusCompleted: {},
	OrderStatusCancel:    {},
}

// IsValidOrderStatus memeriksa nilai status yang dikenal.
func IsValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// CanTransitionOrder memeriksa apakah perpindahan status diperbolehkan.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order adalah satu baris pesanan. TotalPrice dibekukan saat pesanan dibuat;
// perubahan harga menu setelahnya tidak mengubah histori.
type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PinID      uint      `gorm:"not null;index" json:"pin_id"`
	Pin        Pin       `gorm:"foreignKey:PinID" json:"-"`
	TableID    uint      `gorm:"not null;index" json:"table_id"`
	MenuItemID uint      `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem  `gorm:"foreignKey:MenuItemID" json:"-"`
	Amount     int       `gorm:"not null" json:"amount"`
	Note       string    `gorm:"type:text" json:"note"`
	TotalPrice float64   `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
