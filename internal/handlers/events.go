package handlers

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/HammerMeetNail/dailycheck/internal/logging"
)

const (
	eventSnapshot         = "snapshot"
	eventQuestionsChanged = "questions_changed"
)

// ChangeSource is the part of the question store the event stream needs.
type ChangeSource interface {
	ActiveCount() int
	Subscribe(listener func()) (unsubscribe func())
}

// SubscriberGauge tracks open event streams.
type SubscriberGauge interface {
	Inc()
	Dec()
}

type JournalEvent struct {
	Type        string `json:"type"`
	ActiveCount int    `json:"active_count"`
	Revision    uint64 `json:"revision"`
}

var errOriginNotAllowed = errors.New("origin not allowed")

// EventsHandler streams catalog changes over a websocket.
type EventsHandler struct {
	source         ChangeSource
	gauge          SubscriberGauge
	allowedOrigins []string
	anyOrigin      bool
	log            *logging.Logger
}

// NewEventsHandler accepts upgrades from the same origins as the CORS policy:
// "*" or an empty list admits any origin.
func NewEventsHandler(source ChangeSource, gauge SubscriberGauge, allowedOrigins []string) *EventsHandler {
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins = append(origins, strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/"))
	}
	return &EventsHandler{
		source:         source,
		gauge:          gauge,
		allowedOrigins: origins,
		anyOrigin:      len(origins) == 0 || slices.Contains(origins, "*"),
		log:            logging.Default.Component("events"),
	}
}

// Handler returns the websocket endpoint. Authentication is applied by the
// router before the upgrade.
func (h *EventsHandler) Handler() http.Handler {
	return websocket.Server{
		Handshake: h.handshake,
		Handler:   h.serve,
	}
}

// handshake admits native clients, which send no Origin, and browsers whose
// origin is on the allow-list. A rejected handshake is answered with 403.
func (h *EventsHandler) handshake(config *websocket.Config, req *http.Request) error {
	origin, err := websocket.Origin(config, req)
	if err != nil {
		return err
	}
	config.Origin = origin
	if origin == nil || h.anyOrigin {
		return nil
	}
	if slices.Contains(h.allowedOrigins, strings.ToLower(origin.Scheme+"://"+origin.Host)) {
		return nil
	}
	h.log.Warn("rejected websocket origin", logging.Fields{"origin": origin.String()})
	return errOriginNotAllowed
}

func (h *EventsHandler) serve(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	connID := uuid.NewString()
	log := h.log.WithFields(logging.Fields{"conn": connID})

	if h.gauge != nil {
		h.gauge.Inc()
		defer h.gauge.Dec()
	}

	// Listeners run on the toggling goroutine, so they only record the change
	// and poke the writer. A full channel means a wakeup is already pending.
	var seen atomic.Uint64
	wake := make(chan struct{}, 1)
	unsubscribe := h.source.Subscribe(func() {
		seen.Add(1)
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	if err := websocket.JSON.Send(conn, JournalEvent{
		Type:        eventSnapshot,
		ActiveCount: h.source.ActiveCount(),
	}); err != nil {
		log.Warn("sending snapshot", logging.Fields{"error": err})
		return
	}

	// The client never sends anything meaningful; a read returning means the
	// peer went away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		var discard []byte
		for {
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				return
			}
		}
	}()

	var sent uint64
	for {
		select {
		case <-closed:
			log.Debug("event stream closed")
			return
		case <-wake:
			revision := seen.Load()
			if revision == sent {
				continue
			}
			sent = revision
			if err := websocket.JSON.Send(conn, JournalEvent{
				Type:        eventQuestionsChanged,
				ActiveCount: h.source.ActiveCount(),
				Revision:    revision,
			}); err != nil {
				log.Warn("sending event", logging.Fields{"error": err})
				return
			}
		}
	}
}
