package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/projectdiscovery/gologger"

	"exposure/pkg/controller"
	"exposure/pkg/reports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Message types pushed to the page.
const (
	MessageConnected = "connected"
	MessageLoading   = "loading"
	MessageResults   = "results"
	MessageContent   = "content"
	MessageView      = "view"
	MessageScroll    = "scroll"
	MessageNotice    = "notice"
	MessagePong      = "pong"
)

// WebSocketMessage is a server to page message
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ClientMessage is a page to server message
type ClientMessage struct {
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
	View   string `json:"view,omitempty"`
}

// Hub tracks live sessions
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*Session)}
}

func (h *Hub) register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.id] = s
}

func (h *Hub) unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s.id)
}

// Count returns the number of connected sessions
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// CloseAll ends every session.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		s.close()
	}
}

// Session is one connected page. It is the presenter of its own controller.
type Session struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	ctrl *controller.Controller

	mu     sync.Mutex
	send   chan []byte
	closed bool
	once   sync.Once
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

func (s *Server) handleWebSocket(c *gin.Context) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      s.checkOrigin,
		HandshakeTimeout: 10 * time.Second,
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		gologger.Warning().Msgf("[WebSocket] Upgrade failed: %v", err)
		return
	}

	session := &Session{
		id:   uuid.New().String(),
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	session.ctrl = controller.New(s.scanner, session, controller.WithLocale(s.config.Locale))

	s.hub.register(session)
	gologger.Debug().Msgf("[WebSocket] Session %s connected from %s", session.id, c.ClientIP())

	go session.writePump()
	go session.readPump()

	session.push(MessageConnected, gin.H{"session_id": session.id})
}

// push queues a message for the page. A session whose buffer is full is
// closed.
func (s *Session) push(msgType string, data interface{}) {
	payload, err := json.Marshal(WebSocketMessage{Type: msgType, Data: data})
	if err != nil {
		gologger.Error().Msgf("[WebSocket] Failed to marshal %s message: %v", msgType, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.send <- payload:
	default:
		gologger.Warning().Msgf("[WebSocket] Session %s send buffer full, closing", s.id)
		s.closed = true
		close(s.send)
	}
}

func (s *Session) close() {
	s.once.Do(func() {
		s.ctrl.Close()
		s.hub.unregister(s)

		s.mu.Lock()
		if !s.closed {
			s.closed = true
			close(s.send)
		}
		s.mu.Unlock()

		gologger.Debug().Msgf("[WebSocket] Session %s closed", s.id)
	})
}

func (s *Session) readPump() {
	defer func() {
		s.close()
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				gologger.Warning().Msgf("[WebSocket] Read error: %v", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.Notify(controller.Notice{Kind: controller.NoticeValidation, Message: "invalid message"})
			continue
		}
		s.handle(msg)
	}
}

func (s *Session) handle(msg ClientMessage) {
	switch msg.Type {
	case "submit":
		if _, err := s.ctrl.Submit(msg.Target); err != nil {
			gologger.Debug().Msgf("[WebSocket] Session %s submit rejected: %v", s.id, err)
		}
	case "switch_view":
		if err := s.ctrl.SwitchView(reports.View(msg.View)); err != nil {
			s.Notify(controller.Notice{Kind: controller.NoticeValidation, Message: "unknown view " + msg.View})
		}
	case "ping":
		s.push(MessagePong, nil)
	default:
		s.Notify(controller.Notice{Kind: controller.NoticeValidation, Message: "unknown message type " + msg.Type})
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Session) ShowLoading(show bool) {
	s.push(MessageLoading, gin.H{"show": show})
}

func (s *Session) ShowResults(show bool) {
	s.push(MessageResults, gin.H{"show": show})
}

func (s *Session) Populate(executive *reports.ExecutiveDocument, technical *reports.TechnicalDocument) {
	exec, tech, err := reports.Fragments(reports.Report{Executive: executive, Technical: technical})
	if err != nil {
		gologger.Error().Msgf("[WebSocket] Failed to render report: %v", err)
		s.Notify(controller.Notice{Kind: controller.NoticeError, Message: "failed to render report"})
		return
	}
	s.push(MessageContent, gin.H{"executive": exec, "technical": tech})
}

func (s *Session) Activate(view reports.View) {
	s.push(MessageView, gin.H{"view": view})
}

func (s *Session) ScrollToResults() {
	s.push(MessageScroll, gin.H{})
}

func (s *Session) Notify(n controller.Notice) {
	s.push(MessageNotice, n)
}
