package models

import "time"

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// TotalOrder -> total tagihan satu sesi PIN. Dibuat di transaksi yang sama
// dengan penutupan PIN, maksimal satu baris per PIN.
type TotalOrder struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PinID         uint      `gorm:"not null;uniqueIndex" json:"pin_id"`
	Pin           Pin       `gorm:"foreignKey:PinID" json:"-"`
	TotalAmount   float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
