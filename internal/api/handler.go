package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/eugenenazirov/rcopts/internal/directive"
	"github.com/eugenenazirov/rcopts/internal/loader"
	"github.com/eugenenazirov/rcopts/internal/options"
	"github.com/eugenenazirov/rcopts/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const maxValidateBody = 1 << 20

// Handler serves read-only views of the option tables.
type Handler struct {
	registry *options.Registry
	store    *storage.MemoryStorage

	clock func() time.Time

	source   string
	failures int
	loadedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithLoadResult records which file populated the tables and how many lines failed.
func WithLoadResult(res loader.Result) HandlerOption {
	return func(h *Handler) {
		h.source = res.Path
		h.failures = res.Failures
	}
}

// NewHandler constructs a Handler over reg and store.
func NewHandler(reg *options.Registry, store *storage.MemoryStorage, opts ...HandlerOption) *Handler {
	h := &Handler{
		registry: reg,
		store:    store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.loadedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListOptions(w http.ResponseWriter, r *http.Request) {
	_ = r
	all := h.registry.All()
	views := make([]optionView, 0, len(all))
	for i := range all {
		views = append(views, h.view(&all[i]))
	}

	resp := optionsResponse{
		Source:   h.source,
		LoadedAt: h.loadedAt,
		Failures: h.failures,
		Options:  views,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetOption(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	desc, ok := h.registry.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown option", directive.ErrUnknownOption.Error()+" "+name,
			"GET /api/options lists every declared option")
		return
	}
	writeJSON(w, http.StatusOK, h.view(desc))
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	scratch := storage.NewWithDefaults(h.registry)
	var diag bytes.Buffer
	ld := loader.New(directive.NewDispatcher(h.registry, scratch), loader.WithDiagnostics(&diag))

	res, err := ld.LoadReader("request", http.MaxBytesReader(w, r.Body, maxValidateBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Invalid request", "configuration body is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to read configuration body")
		return
	}

	resp := validateResponse{
		Valid:       !res.Failed(),
		Lines:       res.Lines,
		Failures:    res.Failures,
		Diagnostics: splitDiagnostics(diag.String()),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) view(desc *options.Descriptor) optionView {
	value, set := h.store.Value(desc)
	return optionView{
		Name:  desc.Name,
		Kind:  desc.Kind.String(),
		Value: value,
		Set:   set,
	}
}

func splitDiagnostics(raw string) []string {
	raw = strings.TrimRight(raw, "\n")
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, "\n")
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type optionView struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
	Set   bool   `json:"set"`
}

type optionsResponse struct {
	Source   string       `json:"source,omitempty"`
	LoadedAt time.Time    `json:"loadedAt"`
	Failures int          `json:"failures"`
	Options  []optionView `json:"options"`
}

type validateResponse struct {
	Valid       bool     `json:"valid"`
	Lines       int      `json:"lines"`
	Failures    int      `json:"failures"`
	Diagnostics []string `json:"diagnostics"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}
