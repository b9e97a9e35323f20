package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"quillpad/internal/logger"
)

// Only local callers are expected; the server binds to loopback, so origin
// checks add nothing.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// responseEnvelope is the wire shape of every invoke reply. Exactly one of
// Result and Error is set.
type responseEnvelope struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Server exposes the dispatcher and the event hub over a loopback HTTP
// endpoint so an external UI layer can drive the application shell.
type Server struct {
	dispatcher *Dispatcher
	hub        *Hub
	log        logger.Logger
	httpServer *http.Server
	once       sync.Once
}

func NewServer(addr string, dispatcher *Dispatcher, hub *Hub, log logger.Logger) *Server {
	s := &Server{
		dispatcher: dispatcher,
		hub:        hub,
		log:        log,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the route tree; exposed so tests can serve it through
// httptest without binding the configured address.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/invoke/{name}", s.handleInvoke)
	r.Get("/api/events", s.handleEvents)

	return r
}

// Start begins serving in the background. Returns an error only if the
// listener cannot be bound.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}

	s.log.Info("BridgeServer", "control server listening", map[string]interface{}{
		"addr": listener.Addr().String(),
	})

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("BridgeServer", err, nil)
		}
	}()
	return nil
}

// Addr reports the bound address once Start has succeeded.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Shutdown() {
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.log.Error("BridgeServer", err, nil)
		}
		s.log.Info("BridgeServer", "control server stopped", nil)
	})
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	requestID := uuid.New().String()

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, responseEnvelope{ID: requestID, Error: "unreadable request body"})
		return
	}

	result, err := s.dispatcher.Invoke(r.Context(), name, payload)
	if err != nil {
		status := http.StatusInternalServerError
		var unknown *UnknownRequestError
		switch {
		case errors.As(err, &unknown):
			status = http.StatusNotFound
		case errors.Is(err, ErrInvalidPayload):
			status = http.StatusBadRequest
		}
		// The collaborator's error text crosses the boundary unmodified.
		writeEnvelope(w, status, responseEnvelope{ID: requestID, Error: err.Error()})
		return
	}

	writeEnvelope(w, http.StatusOK, responseEnvelope{ID: requestID, Result: result})
}

func writeEnvelope(w http.ResponseWriter, status int, env responseEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("BridgeServer", err, map[string]interface{}{"op": "ws upgrade"})
		return
	}
	defer conn.Close()

	events := s.hub.Subscribe()
	defer s.hub.Unsubscribe(events)

	// Serialise writes; gorilla/websocket forbids concurrent writers.
	var writeMu sync.Mutex
	writeEvent := func(e Event) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(e)
	}

	// Reader goroutine: the client sends nothing meaningful, but reading
	// detects disconnects.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(event); err != nil {
				return
			}
		case <-disconnected:
			return
		}
	}
}
