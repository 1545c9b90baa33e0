package handler

import "net/http"

// GreetingHandler serves the health-check root and the static hello endpoint.
type GreetingHandler struct{}

// NewGreetingHandler creates a GreetingHandler.
func NewGreetingHandler() *GreetingHandler {
	return &GreetingHandler{}
}

// Root responds with a static message confirming the backend is up.
// GET /
func (h *GreetingHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hello from the Energy Insights backend!",
	})
}

// Hello responds with the static API greeting.
// GET /api/hello
func (h *GreetingHandler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hello from the backend API!",
	})
}
