package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
}

func NewServer(addr string) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// serveWs handles websocket requests from the peer. Each connection gets its
// own hub and case run.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error(err)
		return
	}
	defer conn.Close()
	hub := NewHub()
	hub.conn = conn
	log.WithFields(log.Fields{
		"remote": conn.RemoteAddr().String(),
	}).Info("viewer connected")
	go hub.handleRequest()
	go hub.handleResponse()
	for {
		var msg Msg
		if err = conn.ReadJSON(&msg); err != nil {
			break
		}
		hub.msg <- msg
	}
	close(hub.msg)
	log.Info("viewer disconnected")
}

// Serve listens for viewers on /ws until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	srv := &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown: ", err)
		}
	}()
	log.Info("listening on ", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
