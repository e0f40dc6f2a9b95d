package services

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/naratipk/resto-pin-backend/models"
)

// TestSessionLifecycleViews menjalankan satu sesi penuh dan memeriksa
// setiap sisi bacanya: buka PIN -> order -> completed -> tutup -> bayar -> struk.
func TestSessionLifecycleViews(t *testing.T) {
	db := setupServiceTestDB(t)
	sessions := NewSessionService(db, nil)
	orders := NewOrderService(db, nil)
	views := NewViewService(db)

	table := seedTable(t, db, "Meja 1")
	menu := seedMenu(t, db, "Nasi Goreng", 50)

	_, _, err := sessions.OpenSession(table.ID, "ABC123")
	assert.NoError(t, err)

	ids, err := orders.PlaceOrders("ABC123", table.ID, []OrderItemInput{
		{MenuItemID: menu.ID, Quantity: 2, Price: 50},
	})
	assert.NoError(t, err)

	// Order pending masuk tampilan dapur
	groups, err := views.ActiveOrders()
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, "ABC123", groups[0].Pin)
	assert.Equal(t, "Meja 1", groups[0].TableName)
	assert.Equal(t, 100.0, groups[0].Total)
	assert.Len(t, groups[0].Orders, 1)
	assert.Equal(t, "Nasi Goreng", groups[0].Orders[0].MenuName)

	// Histori PIN aktif
	lines, err := views.History("ABC123")
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, 100.0, lines[0].TotalPrice)
	assert.Equal(t, 2, lines[0].Amount)

	// Struk belum bisa dibuat selama sesi masih terbuka
	_, err = views.BuildReceipt("ABC123")
	assert.True(t, errors.Is(err, ErrSessionInvalid))

	// Order selesai -> muncul di tagihan berjalan, fallback unpaid
	_, err = orders.TransitionOrderStatus(ids[0], models.OrderStatusCompleted)
	assert.NoError(t, err)

	groups, err = views.ActiveOrders()
	assert.NoError(t, err)
	assert.Len(t, groups, 0)

	totals, err := views.CompletedTotals()
	assert.NoError(t, err)
	assert.Len(t, totals, 1)
	assert.Equal(t, 100.0, totals[0].Total)
	assert.Equal(t, models.PaymentStatusUnpaid, totals[0].PaymentStatus)

	// Tutup sesi
	pin, err := sessions.CloseSession(table.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.PinStatusInactive, pin.Status)

	// Ditutup tapi belum dibayar -> struk tetap belum ada
	_, err = views.BuildReceipt("ABC123")
	assert.True(t, errors.Is(err, ErrNotFound))

	// Histori hanya untuk PIN aktif
	_, err = views.History("ABC123")
	assert.True(t, errors.Is(err, ErrNotFound))

	// Bayar -> struk bisa dibuat
	assert.NoError(t, orders.RecordPayment("ABC123", models.PaymentStatusPaid))

	receipt, err := views.BuildReceipt("ABC123")
	assert.NoError(t, err)
	assert.Equal(t, "ABC123", receipt.Pin)
	assert.Equal(t, "Meja 1", receipt.TableName)
	assert.Equal(t, 100.0, receipt.Total)
	assert.Equal(t, "100,00", receipt.TotalFormatted)
	assert.Len(t, receipt.Items, 1)
	assert.Equal(t, 2, receipt.Items[0].Amount)
	assert.Equal(t, "Nasi Goreng", receipt.Items[0].MenuName)
}

func TestBuildReceiptUnknownPin(t *testing.T) {
	db := setupServiceTestDB(t)
	views := NewViewService(db)

	_, err := views.BuildReceipt("NOPE00")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHistoryUnknownPin(t *testing.T) {
	db := setupServiceTestDB(t)
	views := NewViewService(db)

	_, err := views.History("NOPE00")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCompletedTotalsExcludesClosedSessions(t *testing.T) {
	db := setupServiceTestDB(t)
	sessions := NewSessionService(db, nil)
	orders := NewOrderService(db, nil)
	views := NewViewService(db)

	table := seedTable(t, db, "Meja 1")
	menu := seedMenu(t, db, "Nasi Goreng", 50)

	_, _, err := sessions.OpenSession(table.ID, "ABC123")
	assert.NoError(t, err)
	ids, err := orders.PlaceOrders("ABC123", table.ID, []OrderItemInput{
		{MenuItemID: menu.ID, Quantity: 1, Price: 50},
	})
	assert.NoError(t, err)
	_, err = orders.TransitionOrderStatus(ids[0], models.OrderStatusCompleted)
	assert.NoError(t, err)

	totals, err := views.CompletedTotals()
	assert.NoError(t, err)
	assert.Len(t, totals, 1)

	// Setelah sesi ditutup, tagihan berjalan kosong
	_, err = sessions.CloseSession(table.ID)
	assert.NoError(t, err)
	totals, err = views.CompletedTotals()
	assert.NoError(t, err)
	assert.Len(t, totals, 0)
}

func TestPaymentHistory(t *testing.T) {
	db := setupServiceTestDB(t)
	sessions := NewSessionService(db, nil)
	orders := NewOrderService(db, nil)
	views := NewViewService(db)

	table := seedTable(t, db, "Meja 1")
	menu := seedMenu(t, db, "Nasi Goreng", 50)

	_, _, err := sessions.OpenSession(table.ID, "ABC123")
	assert.NoError(t, err)
	_, err = orders.PlaceOrders("ABC123", table.ID, []OrderItemInput{
		{MenuItemID: menu.ID, Quantity: 2, Price: 50},
	})
	assert.NoError(t, err)
	_, err = sessions.CloseSession(table.ID)
	assert.NoError(t, err)

	// Belum dibayar -> belum masuk histori pembayaran
	groups, err := views.PaymentHistory("")
	assert.NoError(t, err)
	assert.Len(t, groups, 0)

	assert.NoError(t, orders.RecordPayment("ABC123", models.PaymentStatusPaid))

	groups, err = views.PaymentHistory("")
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, "ABC123", groups[0].Pin)
	assert.Equal(t, 100.0, groups[0].Total)
	assert.Equal(t, models.PaymentStatusPaid, groups[0].PaymentStatus)
	assert.NotNil(t, groups[0].PaymentDate)

	// Filter tanggal hari ini -> ada; tanggal lain -> kosong
	today := time.Now().Format("2006-01-02")
	groups, err = views.PaymentHistory(today)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)

	groups, err = views.PaymentHistory("2000-01-01")
	assert.NoError(t, err)
	assert.Len(t, groups, 0)
}
