package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/IqraSayed2/E-HealthCare/internal/consult"
	"github.com/IqraSayed2/E-HealthCare/internal/database"
	"github.com/IqraSayed2/E-HealthCare/pkg/logger"
	"github.com/IqraSayed2/E-HealthCare/pkg/utils"
	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
)

var SocketServer *socketio.Server

// sioConn adapts a socket.io connection to the messaging core's handle.
type sioConn struct {
	s socketio.Conn
}

func (c sioConn) ID() string {
	return c.s.ID()
}

func (c sioConn) Emit(event string, payload interface{}) {
	c.s.Emit(event, payload)
}

// payloadUint reads a numeric id out of a loosely-typed event payload.
// Socket.io clients send JSON numbers (float64) but string ids show up too.
func payloadUint(v interface{}) (uint, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case string:
		parsed, err := strconv.ParseUint(n, 10, 32)
		if err != nil {
			return 0, false
		}
		return uint(parsed), true
	default:
		return 0, false
	}
}

// consultErrMessage converts core errors into client-facing strings. Every
// error goes back to the originating connection only; nothing is broadcast.
func consultErrMessage(err error) string {
	var persistErr *consult.PersistenceError
	switch {
	case errors.Is(err, consult.ErrDenied):
		return "You are not part of this consultation"
	case errors.Is(err, consult.ErrNotFound):
		return "Appointment not found"
	case errors.Is(err, consult.ErrUnauthorized):
		return "Join the consultation before sending messages"
	case errors.Is(err, consult.ErrInvalidContent):
		return "Message cannot be empty"
	case errors.As(err, &persistErr):
		return "Message could not be saved, please retry"
	default:
		return "Something went wrong"
	}
}

func emitConsultError(s socketio.Conn, event string, err error) {
	s.Emit("consult_error", map[string]interface{}{
		"event": event,
		"error": consultErrMessage(err),
	})
}

func InitSocketServer() *socketio.Server {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		url := s.URL()

		// Token travels as a query param; headers are unreliable during the
		// ws handshake.
		token := url.Query().Get("token")
		if token == "" {
			token = url.Query().Get("auth_token")
		}
		if token == "" {
			logger.Debug().Str("socket_id", s.ID()).Msg("Socket connection rejected: no token")
			return fmt.Errorf("authentication required")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			logger.Debug().Str("socket_id", s.ID()).Msg("Socket connection rejected: invalid token")
			return fmt.Errorf("invalid token")
		}
		if database.IsTokenBlacklisted(claims.GetJTI()) {
			return fmt.Errorf("token revoked")
		}

		// The authenticated participant identity lives in the socket
		// context; events never get to claim a different sender.
		s.SetContext(claims.UserID)

		logger.Debug().Str("socket_id", s.ID()).Uint("user_id", claims.UserID).Msg("Socket authenticated")
		return nil
	})

	server.OnEvent("/", "consult_join", func(s socketio.Conn, data map[string]interface{}) {
		userID, ok := s.Context().(uint)
		if !ok {
			return
		}

		appointmentID, ok := payloadUint(data["appointmentId"])
		if !ok {
			emitConsultError(s, "consult_join", consult.ErrNotFound)
			return
		}

		if err := Consult.HandleJoin(context.Background(), sioConn{s}, appointmentID, userID); err != nil {
			emitConsultError(s, "consult_join", err)
		}
	})

	server.OnEvent("/", "consult_message", func(s socketio.Conn, data map[string]interface{}) {
		userID, ok := s.Context().(uint)
		if !ok {
			return
		}

		appointmentID, ok := payloadUint(data["appointmentId"])
		if !ok {
			emitConsultError(s, "consult_message", consult.ErrUnauthorized)
			return
		}
		content, _ := data["content"].(string)

		if _, err := Consult.HandleSend(context.Background(), sioConn{s}, appointmentID, userID, content); err != nil {
			emitConsultError(s, "consult_message", err)
		}
	})

	server.OnEvent("/", "consult_leave", func(s socketio.Conn, data map[string]interface{}) {
		Consult.HandleDisconnect(sioConn{s})
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		Consult.HandleDisconnect(sioConn{s})
		logger.Debug().Str("socket_id", s.ID()).Str("reason", reason).Msg("Socket closed")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Warn().Err(e).Msg("Socket error")
	})

	go server.Serve()
	SocketServer = server
	return server
}

// SocketHandler wraps the socket.io server for gin.
func SocketHandler(server *socketio.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.ServeHTTP(c.Writer, c.Request)
	}
}
