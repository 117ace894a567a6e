// internal/notify/hub.go
package notify

import (
	"net/http"
	"sync"
	"time"

	"aquafarm-service/internal/domain/billing"
	"aquafarm-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the single push type the hub carries: a payment-review outcome
// for the submitting user.
type Message struct {
	Type      string                `json:"type"`
	PaymentID int64                 `json:"payment_id"`
	Status    billing.PaymentStatus `json:"status"`
	SentAt    time.Time             `json:"sent_at"`
}

type client struct {
	conn *websocket.Conn
	send chan Message
}

// Hub tracks connected clients by identity and pushes review outcomes to
// them. Delivery is best effort: a full client buffer or a dead connection
// drops the message.
type Hub struct {
	mu         sync.RWMutex
	clients    map[int64]map[*client]bool
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

func NewHub(jwtManager *jwt.Manager, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*client]bool),
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// HandleConnection upgrades the request and serves the client until the
// connection closes. The token travels as a query parameter since browsers
// cannot set headers on websocket dials.
func (h *Hub) HandleConnection(c *gin.Context) {
	claims, err := h.jwtManager.Verify(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{conn: conn, send: make(chan Message, sendBufferSize)}
	h.register(claims.IdentityID, cl)

	go h.writePump(cl)
	h.readPump(claims.IdentityID, cl)
}

func (h *Hub) register(identityID int64, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[identityID] == nil {
		h.clients[identityID] = make(map[*client]bool)
	}
	h.clients[identityID][cl] = true
}

func (h *Hub) unregister(identityID int64, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[identityID]; ok {
		if conns[cl] {
			delete(conns, cl)
			close(cl.send)
		}
		if len(conns) == 0 {
			delete(h.clients, identityID)
		}
	}
}

// readPump discards inbound frames; the hub is push-only. It exists to
// process control frames and detect the close.
func (h *Hub) readPump(identityID int64, cl *client) {
	defer func() {
		h.unregister(identityID, cl)
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// NotifyPaymentReview implements subscription.Notifier.
func (h *Hub) NotifyPaymentReview(userID, paymentID int64, status billing.PaymentStatus) {
	msg := Message{
		Type:      "payment_review",
		PaymentID: paymentID,
		Status:    status,
		SentAt:    time.Now(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients[userID] {
		select {
		case cl.send <- msg:
		default:
			h.logger.Warn("notification dropped, client buffer full",
				zap.Int64("user_id", userID),
				zap.Int64("payment_id", paymentID))
		}
	}
}
