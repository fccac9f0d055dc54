package services

import (
	"log"
	"sync"
	"time"

	"inventaris-backend/utils"

	"github.com/gofiber/websocket/v2"
)

// ActivityMessage представляет сообщение WebSocket ленты активности
type ActivityMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// activityClient представляет подключенного клиента ленты активности
type activityClient struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan ActivityMessage
}

// ActivityHub рассылает новые записи журнала движения остатков всем
// подключенным клиентам (живая лента на дашборде)
type ActivityHub struct {
	clients    map[*activityClient]bool
	register   chan *activityClient
	unregister chan *activityClient
	broadcast  chan ActivityMessage
	mutex      sync.RWMutex
}

// NewActivityHub создает новый хаб ленты активности
func NewActivityHub() *ActivityHub {
	return &ActivityHub{
		clients:    make(map[*activityClient]bool),
		register:   make(chan *activityClient),
		unregister: make(chan *activityClient),
		broadcast:  make(chan ActivityMessage, 64),
	}
}

// Run запускает цикл хаба; вызывается в отдельной горутине
func (h *ActivityHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Activity client %d connected. Total clients: %d", client.UserID, h.clientCount())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("Activity client %d disconnected. Total clients: %d", client.UserID, h.clientCount())

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Клиент не успевает читать — отключаем
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastHistory отправляет новую запись журнала всем клиентам
func (h *ActivityHub) BroadcastHistory(entry *HistoryEntry) {
	select {
	case h.broadcast <- ActivityMessage{Type: "stock_history.created", Payload: entry}:
	default:
		// Хаб перегружен; лента активности не критична, запись пропускается
	}
}

func (h *ActivityHub) clientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleWebSocket обслуживает подключение клиента ленты активности.
// Токен передается параметром запроса: /ws/activity?token=...
func (h *ActivityHub) HandleWebSocket(c *websocket.Conn) {
	claims, err := utils.ValidateJWT(c.Query("token"))
	if err != nil {
		c.WriteJSON(ActivityMessage{Type: "error", Payload: "Invalid or expired token"})
		c.Close()
		return
	}

	client := &activityClient{
		UserID: claims.UserID,
		Conn:   c,
		Send:   make(chan ActivityMessage, 16),
	}
	h.register <- client

	// Пишущая горутина: рассылка записей и ping
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case message, ok := <-client.Send:
				if !ok {
					return
				}
				if err := c.WriteJSON(message); err != nil {
					return
				}
			case <-ticker.C:
				if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// Читаем до закрытия соединения; входящие сообщения не обрабатываются
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	close(done)
	h.unregister <- client
	c.Close()
}
