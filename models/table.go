package models

import "time"

const (
	TableStatusActive  = "active"
	TableStatusDeleted = "deleted"
)

// Table -> meja di restoran; soft delete lewat kolom status
type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
