package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

// Envelope selects how a resource payload is wrapped in a response body.
type Envelope int

const (
	// Wrapped bodies look like {"data": ...}.
	Wrapped Envelope = iota
	// Bare bodies are the payload itself.
	Bare
)

// EnvelopeTable maps a resource name to its envelope. Resources missing
// from the table are Wrapped.
type EnvelopeTable map[string]Envelope

// LegacyEnvelopes reproduces the envelopes the existing frontend build reads:
// gifts and occasions are served bare, everything else under "data".
func LegacyEnvelopes() EnvelopeTable {
	return EnvelopeTable{
		"gifts":     Bare,
		"occasions": Bare,
	}
}

// UniformEnvelopes wraps every resource under "data".
func UniformEnvelopes() EnvelopeTable {
	return EnvelopeTable{}
}

// Gateway holds the response conventions shared by every resource handler.
type Gateway struct {
	Envelopes EnvelopeTable
	// ExposeErrors puts raw internal error text in 500 bodies.
	// Only enable for development builds.
	ExposeErrors bool
}

// New creates a Gateway.
func New(envelopes EnvelopeTable, exposeErrors bool) *Gateway {
	if envelopes == nil {
		envelopes = LegacyEnvelopes()
	}
	return &Gateway{Envelopes: envelopes, ExposeErrors: exposeErrors}
}

// Respond writes payload for resource using the resource's envelope.
func (g *Gateway) Respond(w http.ResponseWriter, status int, resource string, payload any) {
	if g.Envelopes[resource] == Bare {
		WriteJSON(w, status, payload)
		return
	}
	WriteJSON(w, status, map[string]any{"data": payload})
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "status", status, "err", err)
	}
}

// WriteMessage writes the {"message": ...} body every error response uses.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteError translates err into its status code and JSON body.
func (g *Gateway) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, message, known := statusFor(err)
	if known {
		slog.Warn("request rejected", "method", r.Method, "url", r.URL, "status", status, "err", err)
		WriteMessage(w, status, message)
		return
	}

	slog.Error("request failed", "method", r.Method, "url", r.URL, "request_id", RequestIDFrom(r.Context()), "err", err)
	detail := "internal error"
	if g.ExposeErrors {
		detail = err.Error()
	}
	WriteJSON(w, status, map[string]string{"message": message, "error": detail})
}

// DecodeJSON reads the request body into dst. An empty body leaves dst
// untouched so every field falls back to its default. Anything after the
// first JSON value other than whitespace is rejected.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &BadRequestError{Message: "Invalid JSON body"}
	}
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return &BadRequestError{Message: "Invalid JSON body"}
	}
	return nil
}

// Page limits a listing. A zero Limit means no limit, including an
// explicit ?limit=0.
type Page struct {
	Limit  int
	Offset int
}

// SQLLimit returns the value for a LIMIT clause; -1 means unbounded in SQLite.
func (p Page) SQLLimit() int {
	if p.Limit == 0 {
		return -1
	}
	return p.Limit
}

// ParsePage reads the optional limit and offset query parameters.
func ParsePage(r *http.Request) (Page, error) {
	var page Page
	q := r.URL.Query()
	for _, param := range []struct {
		name string
		dst  *int
	}{{"limit", &page.Limit}, {"offset", &page.Offset}} {
		raw := q.Get(param.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Page{}, &BadRequestError{Message: param.name + " must be a non-negative integer"}
		}
		*param.dst = n
	}
	return page, nil
}
