package events

// Nama event lifecycle yang disiarkan ke client
const (
	EventSessionOpened      = "session_opened"
	EventSessionClosed      = "session_closed"
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventTableStatusChanged = "table_status_changed"
	EventPaymentChanged     = "payment_status_changed"

	EventTableCreated    = "table_created"
	EventTableUpdated    = "table_updated"
	EventTableDeleted    = "table_deleted"
	EventCategoryChanged = "category_changed"
	EventMenuChanged     = "menu_changed"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Sink menerima event transisi lifecycle. Pengiriman best-effort:
// implementasi tidak boleh menggagalkan operasi pemanggilnya.
type Sink interface {
	Publish(msg Message)
}

// NoopSink dipakai saat tidak ada channel broadcast yang dikonfigurasi.
type NoopSink struct{}

func (NoopSink) Publish(Message) {}
