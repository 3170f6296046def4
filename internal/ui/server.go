// Package ui serves a small HTTP + SSE console over a running assistant
// session: transcript listing, one-shot turn submission, and a live stream of
// turn results and presentation hints.
package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"astra-core/internal/brain"
	"astra-core/internal/state"
)

type TurnView struct {
	Outcome    string   `json:"outcome"`
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Text       string   `json:"text,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Steps      []string `json:"steps,omitempty"`
}

type HintView struct {
	Phase   string `json:"phase"`
	Emotion string `json:"emotion"`
	Reason  string `json:"reason,omitempty"`
}

type Server struct {
	addr string

	// callbacks into the session
	ListMessages func(limit int) ([]state.Message, error)
	Submit       func(ctx context.Context, text string) (brain.TurnResult, error)
	Status       func() (any, error)

	b *broker
}

func New(addr string) *Server {
	return &Server{addr: addr, b: newBroker()}
}

// PublishHint pushes a presentation hint to all SSE subscribers.
func (s *Server) PublishHint(hint brain.PresentationHint) {
	if s == nil || s.b == nil {
		return
	}
	s.b.publish("hint", HintView{
		Phase:   hint.Phase.String(),
		Emotion: hint.Emotion.String(),
		Reason:  hint.Reason,
	})
}

// PublishResult pushes a turn result to all SSE subscribers.
func (s *Server) PublishResult(result brain.TurnResult) {
	if s == nil || s.b == nil {
		return
	}
	s.b.publish("result", viewOf(result))
}

func viewOf(result brain.TurnResult) TurnView {
	v := TurnView{
		Outcome:    result.Kind.String(),
		Intent:     result.Intent.Category.String(),
		Confidence: result.Intent.Confidence,
		Text:       result.Text,
		Summary:    result.Plan.Summary,
	}
	for _, step := range result.Plan.Steps {
		v.Steps = append(v.Steps, step.Kind.String())
	}
	return v
}

func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, indexHTML)
	})

	mux.HandleFunc("/api/messages", func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if q := r.URL.Query().Get("limit"); q != "" {
			if v, err := strconv.Atoi(q); err == nil && v >= 1 && v <= 500 {
				limit = v
			}
		}
		if s.ListMessages == nil {
			http.Error(w, "ListMessages not configured", http.StatusInternalServerError)
			return
		}
		msgs, err := s.ListMessages(limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, msgs)
	})

	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		if s.Status == nil {
			http.Error(w, "Status not configured", http.StatusInternalServerError)
			return
		}
		st, err := s.Status()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, st)
	})

	mux.HandleFunc("/api/say", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		if s.Submit == nil {
			http.Error(w, "Submit not configured", http.StatusInternalServerError)
			return
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(body.Text) == "" {
			http.Error(w, "empty", http.StatusBadRequest)
			return
		}
		result, err := s.Submit(r.Context(), body.Text)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, viewOf(result))
	})

	// SSE stream
	mux.HandleFunc("/api/stream", func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "stream unsupported", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch, cancel := s.b.subscribe()
		defer cancel()

		// initial keepalive
		fmt.Fprint(w, "event: ping\ndata: {}\n\n")
		flusher.Flush()

		keep := time.NewTicker(15 * time.Second)
		defer keep.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-ctx.Done():
				return
			case msg := <-ch:
				_, _ = w.Write(msg)
				flusher.Flush()
			case <-keep.C:
				fmt.Fprint(w, "event: ping\ndata: {}\n\n")
				flusher.Flush()
			}
		}
	})

	srv := &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

type broker struct {
	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

func newBroker() *broker {
	return &broker{subs: map[chan []byte]struct{}{}}
}

func (b *broker) subscribe() (chan []byte, func()) {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch, func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
	}
}

func (b *broker) publish(event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bb, _ := json.Marshal(payload)
	msg := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, string(bb)))
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
			// drop if slow consumer
		}
	}
}

const indexHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>Astra Console</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 0; background: #0b0b0c; color: #eaeaea; }
    .wrap { max-width: 720px; margin: 0 auto; display: flex; flex-direction: column; height: 100vh; }
    .chat { flex: 1; padding: 16px; overflow: auto; }
    .msg { background: #131316; border: 1px solid #242428; border-radius: 12px; padding: 12px; margin: 10px 0; }
    .msg.user { border-color: #2b4a7a; }
    .phase { padding: 8px 16px; color: #9a9aa2; font-size: 13px; border-top: 1px solid #222; }
    form { display: flex; gap: 8px; padding: 16px; border-top: 1px solid #222; }
    input { flex: 1; background: #131316; border: 1px solid #242428; border-radius: 8px; color: #eaeaea; padding: 10px; }
    button { background: #2b4a7a; border: 0; border-radius: 8px; color: #fff; padding: 10px 16px; cursor: pointer; }
  </style>
</head>
<body>
<div class="wrap">
  <div class="chat" id="chat"></div>
  <div class="phase" id="phase">idle / neutral</div>
  <form id="form">
    <input id="text" placeholder="Say something…" autocomplete="off" />
    <button>Send</button>
  </form>
</div>
<script>
const chat = document.getElementById('chat');
const phase = document.getElementById('phase');

function add(kind, text) {
  const d = document.createElement('div');
  d.className = 'msg ' + kind;
  d.textContent = text;
  chat.appendChild(d);
  chat.scrollTop = chat.scrollHeight;
}

fetch('/api/messages').then(r => r.json()).then(ms => {
  (ms || []).forEach(m => add(m.Kind === 'user' ? 'user' : 'reply', m.Text));
});

const es = new EventSource('/api/stream');
es.addEventListener('hint', e => {
  const h = JSON.parse(e.data);
  phase.textContent = h.phase + ' / ' + h.emotion + (h.reason ? ' — ' + h.reason : '');
});
es.addEventListener('result', e => {
  const r = JSON.parse(e.data);
  if (r.text) add('reply', r.text);
  else if (r.summary) add('reply', '[' + r.outcome + '] ' + r.summary);
  else add('reply', '[' + r.outcome + ']');
});

document.getElementById('form').addEventListener('submit', ev => {
  ev.preventDefault();
  const input = document.getElementById('text');
  const text = input.value.trim();
  if (!text) return;
  add('user', text);
  input.value = '';
  fetch('/api/say', { method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify({ text }) });
});
</script>
</body>
</html>
`
