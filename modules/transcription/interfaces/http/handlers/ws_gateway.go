package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"gitscribe/modules/transcription/application/services"
	"gitscribe/modules/transcription/interfaces/http/dtos"
)

// upgrader accepts connections from any origin: the extension runs as an
// unauthenticated local client (spec.md §4.1 "no authentication").
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSGateway terminates one WebSocket connection per client and routes
// messages to the owning Session (spec.md §4.1), following the teacher's
// upgrade-then-loop handler shape.
type WSGateway struct {
	sessionManager *services.SessionManager
	idleTimeout    time.Duration
}

func NewWSGateway(sessionManager *services.SessionManager, idleTimeout time.Duration) *WSGateway {
	return &WSGateway{sessionManager: sessionManager, idleTimeout: idleTimeout}
}

func (g *WSGateway) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sendMu := make(chan struct{}, 1)
	sendMu <- struct{}{}

	send := func(envelope dtos.Envelope) {
		<-sendMu
		defer func() { sendMu <- struct{}{} }()
		if err := conn.WriteJSON(envelope); err != nil {
			log.Printf("websocket write failed: %v", err)
		}
	}

	ctx := c.Request.Context()
	var gatewaySession *services.GatewaySession
	handshaked := false
	finalized := false

	idleGrace := g.idleTimeout
	if idleGrace <= 0 {
		idleGrace = 60 * time.Second
	}

	for {
		conn.SetReadDeadline(time.Now().Add(idleGrace))

		var envelope dtos.Envelope
		if err := conn.ReadJSON(&envelope); err != nil {
			break
		}

		if !handshaked && envelope.Type != dtos.TypeHandshake {
			send(dtos.Envelope{Type: dtos.TypeError, Data: dtos.ErrorMessage{Message: "expected HANDSHAKE as first message"}})
			continue
		}

		switch envelope.Type {
		case dtos.TypeHandshake:
			handshaked = true
			send(dtos.Envelope{
				Type: dtos.TypeHandshakeAck,
				Data: dtos.HandshakeAckMessage{
					ServerVersion:     "1.0",
					Status:            "ready",
					SupportedFeatures: []string{"transcription", "extraction", "integration"},
					Timestamp:         time.Now().Unix(),
				},
			})

		case dtos.TypeAudioChunk, dtos.TypeAudioChunkEnhanced:
			var msg dtos.AudioChunkEnhancedMessage
			if err := remarshal(envelope.Data, &msg); err != nil {
				send(dtos.Envelope{Type: dtos.TypeError, Data: dtos.ErrorMessage{Message: "malformed audio chunk"}})
				continue
			}

			if gatewaySession == nil {
				gs, err := g.sessionManager.ResolveSession(ctx, msg.Metadata.Platform, msg.Metadata.MeetingURL, msg.Metadata.MeetingURL, msg.Metadata.SampleRate, send)
				if err != nil {
					send(dtos.Envelope{Type: dtos.TypeError, Data: dtos.ErrorMessage{Message: err.Error()}})
					continue
				}
				gatewaySession = gs
			}

			if envelope.Type == dtos.TypeAudioChunkEnhanced {
				g.sessionManager.UpdateParticipants(gatewaySession, msg.Participants)
			}

			if err := g.sessionManager.IngestAudio(ctx, gatewaySession, msg.Data, msg.Metadata); err != nil {
				send(dtos.Envelope{Type: dtos.TypeError, Data: dtos.ErrorMessage{Message: err.Error()}})
			}

		case dtos.TypeMeetingEvent:
			var msg dtos.MeetingEventMessage
			if err := remarshal(envelope.Data, &msg); err != nil {
				send(dtos.Envelope{Type: dtos.TypeError, Data: dtos.ErrorMessage{Message: "malformed meeting event"}})
				continue
			}
			if gatewaySession == nil {
				continue
			}
			switch msg.EventType {
			case "meeting_ended":
				if msg.BufferFlushComplete() && !finalized {
					finalized = true
					go g.sessionManager.Finalize(detachedContext(ctx), gatewaySession)
				}
			case "participant_joined", "participant_left", "participant_update":
				send(dtos.Envelope{Type: dtos.TypeMeetingUpdate, Data: msg})
			}

		case dtos.TypeGetSessionInfo:
			if gatewaySession == nil {
				send(dtos.Envelope{Type: dtos.TypeError, Data: dtos.ErrorMessage{Message: "no active session"}})
				continue
			}
			send(dtos.Envelope{Type: dtos.TypeSessionInfo, Data: g.sessionManager.Info(gatewaySession)})

		default:
			send(dtos.Envelope{Type: dtos.TypeError, Data: dtos.ErrorMessage{Message: "unknown message type: " + envelope.Type}})
		}
	}

	// Best-effort finalization for a connection that drops without an
	// explicit meeting_ended event (spec.md §4.1).
	if gatewaySession != nil && !finalized {
		go g.sessionManager.Finalize(detachedContext(ctx), gatewaySession)
	}
}

// detachedContext strips cancellation from the request context so
// finalization can keep running after the HTTP handler returns, while still
// carrying any request-scoped values (e.g. trace ids).
func detachedContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func remarshal(data interface{}, out interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
