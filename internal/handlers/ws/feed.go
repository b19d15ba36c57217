package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rafabene/preconsult-backend/internal/domain/ports"
	"github.com/rafabene/preconsult-backend/internal/events"
)

const writeTimeout = 5 * time.Second

// FeedHub transmite eventos do ciclo de vida de comentários para clientes
// websocket conectados (painel de moderação ao vivo). Clientes lentos ou
// desconectados são removidos, nunca bloqueiam a publicação.
type FeedHub struct {
	upgrader websocket.Upgrader
	logger   ports.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewFeedHub cria o hub e o inscreve nos eventos de comentário
func NewFeedHub(dispatcher events.Dispatcher, logger ports.Logger) *FeedHub {
	hub := &FeedHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origem já é tratada pelo CORS da borda
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}

	for _, eventType := range []events.EventType{
		events.EventCommentCreated,
		events.EventCommentBlocked,
		events.EventCommentUnblocked,
	} {
		dispatcher.Subscribe(eventType, hub.broadcast)
	}

	return hub
}

// Handle faz o upgrade da conexão e registra o cliente no hub
func (h *FeedHub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("moderation feed client connected", "remote", conn.RemoteAddr().String())

	go h.reader(conn)
}

// ClientCount retorna o número de clientes conectados
func (h *FeedHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close derruba todas as conexões abertas
func (h *FeedHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

// broadcast envia o evento serializado para todos os clientes conectados
func (h *FeedHub) broadcast(_ context.Context, event events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode feed event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
}

// reader descarta mensagens recebidas e remove o cliente na desconexão
func (h *FeedHub) reader(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return
		}
	}
}
