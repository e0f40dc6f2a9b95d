package services

import "time"

// OrderRow adalah satu baris flat hasil join dari store, urutan sudah
// ditentukan query (PIN terbaru dulu, order terlama dulu di dalam sesi).
type OrderRow struct {
	OrderID       uint       `json:"id"`
	Pin           string     `json:"pin"`
	TableName     string     `json:"table_name"`
	MenuName      string     `json:"menu_name"`
	Note          string     `json:"note"`
	Amount        int        `json:"amount"`
	TotalPrice    float64    `json:"total_price"`
	Status        string     `json:"status"`
	Total         *float64   `json:"-"`
	PaymentStatus *string    `json:"-"`
	PaymentDate   *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
}

type OrderLine struct {
	ID         uint      `json:"id"`
	MenuName   string    `json:"menu_name"`
	Note       string    `json:"note,omitempty"`
	Amount     int       `json:"amount"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type SessionGroup struct {
	Pin           string      `json:"pin"`
	TableName     string      `json:"table_name"`
	Total         float64     `json:"total"`
	PaymentStatus string      `json:"payment_status,omitempty"`
	PaymentDate   *time.Time  `json:"payment_date,omitempty"`
	Orders        []OrderLine `json:"orders"`
}

// GroupRowsByPin mereduksi baris join menjadi grup per PIN dengan urutan
// kemunculan dipertahankan. Jika tidak ada baris TotalOrder, total grup
// jatuh ke jumlah total_price semua baris order di grup itu.
// Fungsi murni: tidak menyentuh store.
func GroupRowsByPin(rows []OrderRow) []SessionGroup {
	groups := []SessionGroup{}
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.Pin]
		if !ok {
			i = len(groups)
			index[row.Pin] = i
			group := SessionGroup{
				Pin:         row.Pin,
				TableName:   row.TableName,
				PaymentDate: row.PaymentDate,
			}
			if row.Total != nil {
				group.Total = *row.Total
			}
			if row.PaymentStatus != nil {
				group.PaymentStatus = *row.PaymentStatus
			}
			groups = append(groups, group)
		}
		groups[i].Orders = append(groups[i].Orders, OrderLine{
			ID:         row.OrderID,
			MenuName:   row.MenuName,
			Note:       row.Note,
			Amount:     row.Amount,
			TotalPrice: row.TotalPrice,
			Status:     row.Status,
			CreatedAt:  row.CreatedAt,
		})
	}

	for i := range groups {
		if groups[i].Total == 0 {
			var sum float64
			for _, line := range groups[i].Orders {
				sum += line.TotalPrice
			}
			groups[i].Total = sum
		}
	}
	return groups
}
