package models

import "time"

const (
	PinStatusActive   = "active"
	PinStatusInactive = "inactive"
)

// Pin adalah kunci sesi: semua order dan total pembayaran mengacu ke PIN,
// bukan ke meja, supaya sesi lama di meja yang sama tidak tercampur.
type Pin struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Code    string `gorm:"type:varchar(10);not null;index" json:"pin"`
	TableID uint   `gorm:"not null;index" json:"table_id"`
	Table   Table  `gorm:"foreignKey:TableID" json:"-"`
	// ActiveTableID menyalin TableID selama PIN aktif dan di-NULL-kan saat
	// ditutup; unique index-nya membuat store menolak PIN aktif kedua
	// untuk meja yang sama.
	ActiveTableID *uint     `gorm:"uniqueIndex" json:"-"`
	Status        string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
