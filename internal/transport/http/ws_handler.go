package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"programming-quiz/internal/app"
	"programming-quiz/internal/domain"
	"programming-quiz/internal/render"
)

// WSHandler plays one quiz session per websocket connection.
type WSHandler struct {
	source   app.QuestionSource
	defaults domain.GenerationRequest
	lang     string
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler serves sessions drawing batches from source. defaults supplies the batch size
// and the difficulty used when the client does not pass one.
func NewWSHandler(source app.QuestionSource, defaults domain.GenerationRequest, lang string, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSHandler{
		source:   source,
		defaults: defaults.WithDefaults(),
		lang:     lang,
		log:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Label string `json:"label"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// outbox hands messages to the writer goroutine. push gives up once the connection is
// closing or the writer has stopped.
type outbox struct {
	send       chan<- outboundMessage[any]
	closed     <-chan struct{}
	writerDone <-chan struct{}
}

func (o outbox) push(typ string, payload any) {
	select {
	case o.send <- outboundMessage[any]{Type: typ, Payload: payload}:
	case <-o.closed:
	case <-o.writerDone:
	}
}

// ServeWS upgrades the request and drives a session from inbound start/select/submit/next/restart messages.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	req := h.defaults
	if difficulty := r.URL.Query().Get("difficulty"); difficulty != "" {
		req.Difficulty = difficulty
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = h.lang
	}
	cat := render.CatalogFor(lang)
	if err := req.Validate(); err != nil {
		h.log.Warn("rejected ws session", "difficulty", req.Difficulty, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	log := h.log.With("difficulty", req.Difficulty, "lang", cat.Lang)
	session := app.NewSession(h.source, req, log)

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	var starts sync.WaitGroup

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn("ws write error", "error", err)
				return
			}
		}
	}()

	out := outbox{send: send, closed: closeSignals, writerDone: writerDone}
	push := out.push
	pushState := func(snap app.Snapshot) {
		push("state", render.ScreenFor(snap, req.Count, cat))
	}
	pushError := func(err error) {
		push("error", errorPayload{Message: err.Error()})
	}

	pushState(session.Snapshot())

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			if session.Phase() != app.PhaseNotStarted {
				pushError(domain.ErrInvalidPhase)
				continue
			}
			pushState(app.Snapshot{Phase: app.PhaseLoading})
			starts.Add(1)
			go func() {
				defer starts.Done()
				err := session.Start(ctx)
				if ctx.Err() != nil {
					return
				}
				var genErr *domain.GenerationError
				switch {
				case errors.As(err, &genErr):
					push("notice", render.StartFailedNotice(cat))
				case err != nil:
					pushError(err)
					return
				default:
					push("notice", render.StartedNotice(cat))
				}
				pushState(session.Snapshot())
			}()
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				pushError(errors.New("invalid select payload"))
				continue
			}
			label, err := domain.ParseLabel(payload.Label)
			if err == nil {
				err = session.SelectOption(label)
			}
			if err != nil {
				pushError(err)
				continue
			}
			pushState(session.Snapshot())
		case "submit":
			answer, err := session.SubmitAnswer()
			if err != nil {
				pushError(err)
				continue
			}
			snap := session.Snapshot()
			if q, ok := snap.Current(); ok {
				push("notice", render.AnswerFeedback(q, answer, cat))
			}
			pushState(snap)
		case "next":
			if err := session.NextQuestion(); err != nil {
				pushError(err)
				continue
			}
			pushState(session.Snapshot())
		case "restart":
			if err := session.Restart(); err != nil {
				pushError(err)
				continue
			}
			pushState(session.Snapshot())
		default:
			pushError(errors.New("unsupported message type"))
		}
	}

	cancel()
	close(closeSignals)
	starts.Wait()
	close(send)
	<-writerDone
}
