package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vigil-labs/vigil/internal/blocklist"
	"github.com/vigil-labs/vigil/internal/httputil"
	"github.com/vigil-labs/vigil/internal/verdict"
)

// Handlers is the request gateway: it parses inbound check requests, invokes
// the verdict engine, and serializes the Verdict back. All state lives
// behind the engine and the block list.
type Handlers struct {
	engine *verdict.Engine
	list   *blocklist.List
}

func NewHandlers(engine *verdict.Engine, list *blocklist.List) *Handlers {
	return &Handlers{engine: engine, list: list}
}

// RegisterRoutes wires the check endpoints, the block list view, and the
// health check.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/check", h.HandleCheck).Methods(http.MethodPost)
	r.HandleFunc("/api/blocklist", h.HandleBlockList).Methods(http.MethodGet)
	r.HandleFunc("/api/health", h.HandleHealth).Methods(http.MethodGet)

	// Routes kept from the first public deployment: one POST route per input
	// kind and a single GET route selecting the kind by query parameter.
	r.HandleFunc("/check_email", h.legacyCheck(verdict.InputEmail, "email")).Methods(http.MethodPost)
	r.HandleFunc("/check_website", h.legacyCheck(verdict.InputURL, "url")).Methods(http.MethodPost)
	r.HandleFunc("/check_phone", h.legacyCheck(verdict.InputPhone, "phone")).Methods(http.MethodPost)
	r.HandleFunc("/check", h.HandleQueryCheck).Methods(http.MethodGet)

	r.HandleFunc("/", h.HandleIndex).Methods(http.MethodGet)
}

type checkRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// HandleCheck is the primary validation endpoint:
// POST /api/check {"kind": "email"|"phone"|"url", "value": "..."}.
func (h *Handlers) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind, ok := parseKind(req.Kind)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "kind must be email, phone or url")
		return
	}
	if req.Value == "" {
		httputil.WriteError(w, http.StatusBadRequest, "value is required")
		return
	}

	v := h.engine.Check(r.Context(), kind, req.Value)
	httputil.WriteJSON(w, verdictStatus(v), v)
}

// HandleQueryCheck selects the input kind from the query string:
// GET /check?email=... | ?url=... | ?phone=...
func (h *Handlers) HandleQueryCheck(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var kind verdict.InputKind
	var value string
	switch {
	case q.Get("email") != "":
		kind, value = verdict.InputEmail, q.Get("email")
	case q.Get("url") != "":
		kind, value = verdict.InputURL, q.Get("url")
	case q.Get("phone") != "":
		kind, value = verdict.InputPhone, q.Get("phone")
	default:
		httputil.WriteError(w, http.StatusBadRequest, "provide an email, url or phone query parameter")
		return
	}

	v := h.engine.Check(r.Context(), kind, value)
	httputil.WriteStatus(w, verdictStatus(v), string(v.Kind), v.Message)
}

// legacyCheck builds a handler for one fixed input kind reading a single
// JSON field, responding with the {status, message} envelope.
func (h *Handlers) legacyCheck(kind verdict.InputKind, field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		value := body[field]
		if value == "" {
			httputil.WriteError(w, http.StatusBadRequest, field+" is required")
			return
		}

		v := h.engine.Check(r.Context(), kind, value)
		httputil.WriteStatus(w, verdictStatus(v), string(v.Kind), v.Message)
	}
}

// HandleBlockList returns a point-in-time snapshot of blocked identifiers.
func (h *Handlers) HandleBlockList(w http.ResponseWriter, r *http.Request) {
	entries := h.list.Snapshot()
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"count":   len(entries),
		"entries": entries,
	})
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// verdictStatus maps a verdict onto a transport status. Safe and alert
// verdicts are both successful answers; only operational errors surface as
// a non-2xx response.
func verdictStatus(v verdict.Verdict) int {
	if v.Kind == verdict.KindError {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

func parseKind(s string) (verdict.InputKind, bool) {
	switch verdict.InputKind(s) {
	case verdict.InputEmail, verdict.InputPhone, verdict.InputURL:
		return verdict.InputKind(s), true
	default:
		return "", false
	}
}
