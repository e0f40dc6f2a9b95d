package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroupRowsByPin(t *testing.T) {
	now := time.Now()
	total := 150.0
	paid := "paid"

	rows := []OrderRow{
		{OrderID: 1, Pin: "AAA111", TableName: "Meja 1", MenuName: "Nasi Goreng",
			Amount: 2, TotalPrice: 100, Status: "pending", Total: &total, PaymentStatus: &paid, CreatedAt: now},
		{OrderID: 2, Pin: "AAA111", TableName: "Meja 1", MenuName: "Es Teh",
			Amount: 1, TotalPrice: 50, Status: "pending", Total: &total, PaymentStatus: &paid, CreatedAt: now},
		{OrderID: 3, Pin: "BBB222", TableName: "Meja 2", MenuName: "Mie Ayam",
			Amount: 1, TotalPrice: 30, Status: "cooking", CreatedAt: now},
	}

	groups := GroupRowsByPin(rows)
	assert.Len(t, groups, 2)

	// Urutan kemunculan dipertahankan
	assert.Equal(t, "AAA111", groups[0].Pin)
	assert.Equal(t, "BBB222", groups[1].Pin)

	assert.Len(t, groups[0].Orders, 2)
	assert.Equal(t, 150.0, groups[0].Total)
	assert.Equal(t, "paid", groups[0].PaymentStatus)
	assert.Equal(t, "Nasi Goreng", groups[0].Orders[0].MenuName)
	assert.Equal(t, "Es Teh", groups[0].Orders[1].MenuName)

	// Tanpa baris TotalOrder: total jatuh ke jumlah baris order
	assert.Len(t, groups[1].Orders, 1)
	assert.Equal(t, 30.0, groups[1].Total)
	assert.Empty(t, groups[1].PaymentStatus)
}

func TestGroupRowsByPinEmpty(t *testing.T) {
	groups := GroupRowsByPin(nil)
	assert.NotNil(t, groups)
	assert.Len(t, groups, 0)
}

func TestGroupRowsByPinTotalFallback(t *testing.T) {
	rows := []OrderRow{
		{OrderID: 1, Pin: "CCC333", TableName: "Meja 3", MenuName: "Sate", Amount: 1, TotalPrice: 40},
		{OrderID: 2, Pin: "CCC333", TableName: "Meja 3", MenuName: "Sate", Amount: 2, TotalPrice: 80},
	}
	groups := GroupRowsByPin(rows)
	assert.Len(t, groups, 1)
	assert.Equal(t, 120.0, groups[0].Total)
}
