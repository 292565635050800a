package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/models"
)

const (
	// writeWait bounds a single frame write to a slow peer.
	writeWait = 10 * time.Second

	// pongWait is how long a connection may stay silent before it is
	// considered dead; pings go out at pingPeriod to keep it below that.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// sendBufferSize is the per-connection event queue. A subscriber whose
	// reader cannot keep up starts losing events rather than stalling the
	// dispatcher fan-out.
	sendBufferSize = 64
)

const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
)

// ErrSubscriberBufferFull is reported to the dispatcher when an event does
// not fit into the connection's send queue.
var ErrSubscriberBufferFull = errors.New("subscriber send buffer is full")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The endpoint is bearer-token authenticated; origin checks add
		// nothing for non-cookie auth.
		return true
	},
}

// wsSubscriber adapts one websocket connection to the dispatcher's
// subscriber contract. Deliver never blocks: events are queued on the send
// channel and a dedicated write pump drains it in order.
type wsSubscriber struct {
	id      string
	subject models.Subject
	send    chan models.SyncEvent
	done    chan struct{}
}

func newWSSubscriber(id string, subject models.Subject) *wsSubscriber {
	return &wsSubscriber{
		id:      id,
		subject: subject,
		send:    make(chan models.SyncEvent, sendBufferSize),
		done:    make(chan struct{}),
	}
}

func (s *wsSubscriber) ID() string              { return s.id }
func (s *wsSubscriber) Subject() models.Subject { return s.subject }

func (s *wsSubscriber) Deliver(event models.SyncEvent) error {
	select {
	case s.send <- event:
		return nil
	default:
		return ErrSubscriberBufferFull
	}
}

// subscribeEvents upgrades the request to a websocket connection and serves
// it until the peer disconnects. The client drives the subscription set with
// [models.SubscriptionRequest] frames; the server pushes [models.SyncEvent]
// frames for every permitted change in subscribed collections.
func (h *Handler) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	subject, found := subjectFromContext(r.Context())
	if !found {
		log.Error().Str("func", "*Handler.subscribeEvents").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		log.Err(err).Str("func", "*Handler.subscribeEvents").Msg("websocket upgrade failed")
		return
	}

	sub := newWSSubscriber(h.uuid.Generate(), subject)
	log.Debug().
		Str("subscriber_id", sub.id).
		Str("user_id", subject.UserID).
		Msg("websocket subscriber connected")

	go h.writeEvents(conn, sub)
	h.readSubscriptions(r, conn, sub)
}

// readSubscriptions is the connection's read loop. It owns teardown: when
// the loop exits the subscriber is removed from every collection and the
// write pump is released.
func (h *Handler) readSubscriptions(r *http.Request, conn *websocket.Conn, sub *wsSubscriber) {
	log := logger.FromRequest(r)

	defer func() {
		h.services.Dispatcher.UnsubscribeAll(sub.id)
		close(sub.done)
		conn.Close()
		log.Debug().Str("subscriber_id", sub.id).Msg("websocket subscriber disconnected")
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame models.SubscriptionRequest
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Str("subscriber_id", sub.id).Msg("websocket read failed")
			}
			return
		}

		switch frame.Action {
		case actionSubscribe:
			if err := h.services.Dispatcher.Subscribe(r.Context(), frame.Collection, sub); err != nil {
				log.Err(err).
					Str("subscriber_id", sub.id).
					Str("collection", frame.Collection).
					Msg("subscribe failed")
				sub.Deliver(models.SyncEvent{
					Type:       models.EventSyncError,
					Collection: frame.Collection,
					Timestamp:  time.Now().UTC(),
				})
			}
		case actionUnsubscribe:
			h.services.Dispatcher.Unsubscribe(frame.Collection, sub.id)
		default:
			log.Debug().
				Str("subscriber_id", sub.id).
				Str("action", frame.Action).
				Msg("unknown subscription action ignored")
		}
	}
}

// writeEvents is the connection's write pump: the single goroutine allowed
// to write frames. It drains the subscriber queue in Deliver order and keeps
// the connection alive with periodic pings.
func (h *Handler) writeEvents(conn *websocket.Conn, sub *wsSubscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case event := <-sub.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-sub.done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
