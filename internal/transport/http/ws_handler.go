package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"adaptive-quiz-service/internal/analytics"
	"adaptive-quiz-service/internal/app"
	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/session"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service          *app.QuizService
	successThreshold float64
	upgrader         websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, successThreshold float64) *WSHandler {
	return &WSHandler{
		service:          service,
		successThreshold: successThreshold,
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

type startPayload struct {
	Mode  string `json:"mode"` // "topic" or "difficulty"
	Value string `json:"value"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

type answerPayload struct {
	Option int `json:"option"`
}

type questionPayload struct {
	Number    int      `json:"number"`
	Total     int      `json:"total"`
	Text      string   `json:"text"`
	Options   []string `json:"options"`
	TimeLimit int      `json:"timeLimit"` // seconds; 0 = unlimited
}

type resultPayload struct {
	QuestionID   string `json:"questionId"`
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correctIndex"`
	ChosenIndex  *int   `json:"chosenIndex"`
	Explanation  string `json:"explanation,omitempty"`
}

type summaryPayload struct {
	State   string                    `json:"state"`
	Summary domain.PerformanceSummary `json:"summary"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives one quiz session
// per connection. The client sends a start message choosing topic or
// difficulty, then answers each question; the server-side per-question
// countdown races those answers and resolves timeouts as skips.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	setID := r.URL.Query().Get("setId")
	username := r.URL.Query().Get("user")
	if setID == "" || username == "" {
		http.Error(w, "missing setId or user", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	quiz, err := h.buildQuiz(r.Context(), conn, setID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writeFailed := false
		for msg := range send {
			if writeFailed {
				continue // keep draining so the session goroutine never blocks
			}
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				writeFailed = true
			}
		}
	}()

	answers := make(chan session.Answer)
	go h.readPump(ctx, conn, answers, cancel)

	h.runQuiz(ctx, quiz, username, answers, send)

	close(send)
	<-writerDone
}

// buildQuiz waits for the client's start message and assembles the quiz.
func (h *WSHandler) buildQuiz(ctx context.Context, conn *websocket.Conn, setID string) (domain.Quiz, error) {
	var inbound inboundMessage
	if err := conn.ReadJSON(&inbound); err != nil {
		return domain.Quiz{}, err
	}
	if inbound.Type != "start" {
		return domain.Quiz{}, errors.New("expected start message")
	}
	var start startPayload
	if err := json.Unmarshal(inbound.Payload, &start); err != nil {
		return domain.Quiz{}, errors.New("invalid start payload")
	}

	switch start.Mode {
	case "topic":
		return h.service.CreateQuizByTopic(ctx, setID, start.Title, start.Value, start.Count)
	case "difficulty":
		return h.service.CreateQuizByDifficulty(ctx, setID, start.Title, start.Value, start.Count)
	}
	return domain.Quiz{}, errors.New("mode must be topic or difficulty")
}

// readPump forwards inbound answer messages to the session's answer channel.
// An abort message cancels the context; a read error closes the channel so a
// pending wait resolves as an abort. Malformed or unknown messages are
// dropped; the pending question simply stays pending.
func (h *WSHandler) readPump(ctx context.Context, conn *websocket.Conn, answers chan<- session.Answer, cancel context.CancelFunc) {
	defer close(answers)
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			cancel()
			return
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				continue
			}
			select {
			case answers <- session.Answer{Option: payload.Option}:
			case <-ctx.Done():
				return
			}
		case "skip":
			select {
			case answers <- session.Answer{Skip: true}:
			case <-ctx.Done():
				return
			}
		case "abort":
			cancel()
			return
		}
	}
}

// runQuiz walks the session through every question, logging outcomes into the
// adaptive controller and emitting per-question results plus tier hints.
func (h *WSHandler) runQuiz(ctx context.Context, quiz domain.Quiz, username string, answers <-chan session.Answer, send chan<- outboundMessage[any]) {
	sess := session.New(quiz)
	controller := session.NewAdaptiveController(h.successThreshold)

	if err := sess.Start(); err != nil {
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		return
	}

	for sess.State() == session.StateInProgress {
		question, idx, err := sess.Current()
		if err != nil {
			break
		}
		send <- outboundMessage[any]{Type: "question", Payload: questionPayload{
			Number:    idx + 1,
			Total:     len(quiz.Questions),
			Text:      question.Text,
			Options:   question.Options,
			TimeLimit: quiz.TimerPerQuestion,
		}}

		result, err := sess.AwaitAnswer(ctx, answers)
		if err != nil {
			// abort or disconnect; partial results still get reported below
			break
		}
		controller.Log(result)

		send <- outboundMessage[any]{Type: "result", Payload: resultPayload{
			QuestionID:   result.QuestionID,
			Correct:      result.IsCorrect,
			CorrectIndex: result.CorrectIndex,
			ChosenIndex:  result.ChosenIndex,
			Explanation:  question.Explanation,
		}}

		switch {
		case controller.ShouldIncrease():
			send <- outboundMessage[any]{Type: "difficulty", Payload: map[string]string{"recommendation": "increase"}}
		case controller.ShouldDecrease():
			send <- outboundMessage[any]{Type: "difficulty", Payload: map[string]string{"recommendation": "decrease"}}
		}
	}

	results := sess.Results()
	send <- outboundMessage[any]{Type: "summary", Payload: summaryPayload{
		State:   sess.State().String(),
		Summary: analytics.NewReport(results).Summary(),
	}}

	if len(results) > 0 {
		// recording uses the background context so a client abort still lands
		if _, err := h.service.RecordScore(context.Background(), username, quiz.Title, results); err != nil {
			log.Printf("record score: %v", err)
		}
	}
	if top, err := h.service.Top(context.Background(), 10); err == nil {
		send <- outboundMessage[any]{Type: "leaderboard", Payload: top}
	}
}
