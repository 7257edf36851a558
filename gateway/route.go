package gateway

import "net/http"

// Handler is a resource handler that reports failures instead of writing
// them; the gateway turns the error into a status code and JSON body.
type Handler func(w http.ResponseWriter, r *http.Request) error

// Methods declares the handler for each method a path supports.
type Methods map[string]Handler

// Wrap adapts h to an http.Handler, translating its error.
func (g *Gateway) Wrap(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			g.WriteError(w, r, err)
		}
	})
}

// Route registers pattern on mux, dispatching on the request method.
// Methods outside the declared set get a 405.
func (g *Gateway) Route(mux *http.ServeMux, pattern string, methods Methods) {
	mux.Handle(pattern, g.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		h, ok := methods[r.Method]
		if !ok {
			return ErrMethodNotAllowed
		}
		return h(w, r)
	}))
}
