package hub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bright100/CanteenApi/models"
)

// Event types
const (
	EventOrderCreated = "order_created"
	EventOrderUpdate  = "order_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// OrderHub menampung koneksi live per vendor. Vendor yang connect
// menerima push saat ada order baru atau perubahan status order miliknya.
type OrderHub struct {
	clients map[*websocket.Conn]string // conn -> vendor name
	mutex   sync.Mutex
}

var orderHub = OrderHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection untuk satu vendor
func RegisterClient(conn *websocket.Conn, vendorName string) {
	orderHub.mutex.Lock()
	defer orderHub.mutex.Unlock()
	orderHub.clients[conn] = vendorName
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	orderHub.mutex.Lock()
	defer orderHub.mutex.Unlock()
	delete(orderHub.clients, conn)
	conn.Close()
}

// PublishOrderCreated -> push order baru ke client vendor terkait.
// Fire-and-forget: kegagalan kirim hanya di-log, tidak pernah
// menggagalkan order.
func PublishOrderCreated(vendorName string, order models.Order) {
	publish(vendorName, Message{
		Event: EventOrderCreated,
		Data:  order,
	})
}

// PublishOrderUpdate -> push perubahan status order ke vendor terkait
func PublishOrderUpdate(vendorName string, order models.Order) {
	publish(vendorName, Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

func publish(vendorName string, msg Message) {
	orderHub.mutex.Lock()
	defer orderHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, name := range orderHub.clients {
		if name != vendorName {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to vendor %s: %v", vendorName, err)
			continue
		}
	}
}
