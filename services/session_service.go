package services

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/naratipk/resto-pin-backend/events"
	"github.com/naratipk/resto-pin-backend/models"
)

// SessionService mengelola lifecycle sesi meja: buka PIN, tutup PIN.
// Event disiarkan lewat Sink setelah transaksi commit.
type SessionService struct {
	DB     *gorm.DB
	Events events.Sink
}

func NewSessionService(db *gorm.DB, sink events.Sink) *SessionService {
	if sink == nil {
		sink = events.NoopSink{}
	}
	return &SessionService{DB: db, Events: sink}
}

// lockActiveTable mengambil write lock baris meja lewat UPDATE penjaga,
// sehingga open/close/order untuk meja yang sama berjalan bergantian.
// SELECT biasa di MySQL (REPEATABLE READ) membaca snapshot tanpa lock;
// UPDATE memblokir transaksi lain sampai commit, di sqlite pun jalan.
// Return false kalau meja tidak ada atau sudah dihapus.
func lockActiveTable(tx *gorm.DB, tableID uint) (bool, error) {
	res := tx.Model(&models.Table{}).
		Where("id = ? AND status = ?", tableID, models.TableStatusActive).
		Update("updated_at", time.Now())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// OpenSession membuka sesi untuk meja. Idempoten selama masih ada PIN aktif:
// PIN yang sama dikembalikan dan event session_opened tetap disiarkan.
// Return kedua true jika PIN baru dibuat.
func (s *SessionService) OpenSession(tableID uint, requestedCode string) (*models.Pin, bool, error) {
	var pin models.Pin
	created := false

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := lockActiveTable(tx, tableID)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrap(ErrInvalidInput, "table not found or not active")
		}

		// Cek PIN aktif setelah lock meja dipegang: dua OpenSession
		// bersamaan berjalan bergantian, yang kedua melihat PIN pertama.
		err = tx.Where("table_id = ? AND status = ?", tableID, models.PinStatusActive).
			First(&pin).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		code := strings.ToUpper(strings.TrimSpace(requestedCode))
		if code == "" {
			code = GeneratePinCode()
		}

		activeRef := tableID
		pin = models.Pin{
			Code:          code,
			TableID:       tableID,
			ActiveTableID: &activeRef,
			Status:        models.PinStatusActive,
		}
		// Unique index active_table_id jadi jaring terakhir kalau ada
		// jalur lain yang menyelipkan PIN aktif kedua.
		if err := tx.Create(&pin).Error; err != nil {
			return errors.Wrap(ErrConflict, err.Error())
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	s.Events.Publish(events.Message{
		Event: events.EventSessionOpened,
		Data: map[string]interface{}{
			"table_id": tableID,
			"pin":      pin.Code,
			"action":   "create",
		},
	})
	return &pin, created, nil
}

// CloseSession menutup PIN aktif sebuah meja dan, di transaksi yang sama,
// membuat baris TotalOrder (unpaid) berisi jumlah order yang tidak di-cancel.
// Menutup meja yang tidak punya PIN aktif gagal dengan Conflict.
func (s *SessionService) CloseSession(tableID uint) (*models.Pin, error) {
	var pin models.Pin

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := lockActiveTable(tx, tableID)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrap(ErrNotFound, "table not found or not active")
		}

		if err := tx.Where("table_id = ? AND status = ?", tableID, models.PinStatusActive).
			First(&pin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(ErrConflict, "table has no active pin")
			}
			return err
		}

		pin.Status = models.PinStatusInactive
		pin.ActiveTableID = nil
		if err := tx.Save(&pin).Error; err != nil {
			return err
		}

		var total float64
		if err := tx.Model(&models.Order{}).
			Where("pin_id = ? AND status <> ?", pin.ID, models.OrderStatusCancel).
			Select("COALESCE(SUM(total_price), 0)").
			Scan(&total).Error; err != nil {
			return err
		}

		var existing models.TotalOrder
		err = tx.Where("pin_id = ?", pin.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.TotalOrder{
				PinID:         pin.ID,
				TotalAmount:   total,
				PaymentStatus: models.PaymentStatusUnpaid,
			}).Error
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Events.Publish(events.Message{
		Event: events.EventSessionClosed,
		Data: map[string]interface{}{
			"table_id": tableID,
			"pin":      nil,
			"action":   "deactivate",
		},
	})
	s.Events.Publish(events.Message{
		Event: events.EventTableStatusChanged,
		Data: map[string]interface{}{
			"table_id": tableID,
			"status":   false,
			"pin":      nil,
		},
	})
	return &pin, nil
}

// ActivePins mengembalikan PIN aktif yang dibuat dalam 24 jam terakhir.
func (s *SessionService) ActivePins() ([]models.Pin, error) {
	var pins []models.Pin
	err := s.DB.Where("status = ?", models.PinStatusActive).
		Where("created_at >= ?", time.Now().Add(-24*time.Hour)).
		Order("created_at DESC, id DESC").
		Find(&pins).Error
	return pins, err
}

// FindActivePin mencari PIN aktif berdasarkan kode, beserta nama mejanya.
func (s *SessionService) FindActivePin(code string) (*models.Pin, string, error) {
	var pin models.Pin
	if err := s.DB.Where("code = ? AND status = ?", code, models.PinStatusActive).
		First(&pin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errors.Wrap(ErrNotFound, "pin not found")
		}
		return nil, "", err
	}
	var table models.Table
	if err := s.DB.First(&table, pin.TableID).Error; err != nil {
		return nil, "", err
	}
	return &pin, table.Name, nil
}
