package http

import (
	"encoding/json"
	"net/http"

	"github.com/libris-labs/libris-core/internal/core/domain"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the greeting and health payload
type HealthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// BookListResponse is the reply of GET /books
type BookListResponse struct {
	Books []domain.BookListEntry `json:"books"`
	Count int                    `json:"count"`
}

// summaryPreviewLength bounds summaries in listings; full text stays
// available through the chat tool.
const summaryPreviewLength = 200

// processingApology is returned when a chat request fails downstream.
const processingApology = "A apărut o eroare în procesarea cererii tale. Te rog să încerci din nou."

// handleRoot greets API consumers at the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Message: "Smart Librarian API",
		Status:  "healthy",
	})
}

// handleHealth reports service health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Message: "Smart Librarian API",
		Status:  "healthy",
	})
}

// handleVersion returns the running version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// handleChat runs one chat exchange. Processing failures still answer
// 200 with Success=false so browser clients always get a renderable
// payload; only an unreadable request body is an HTTP-level error.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.chatService.Respond(r.Context(), req.Message)
	if err != nil {
		s.logger.Error("chat request failed", "error", err)
		writeJSON(w, http.StatusOK, domain.ChatResponse{
			Response: processingApology,
			Success:  false,
			Error:    err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, domain.ChatResponse{
		Response: answer,
		Success:  true,
	})
}

// handleListBooks lists the indexed catalog with truncated summaries
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	entries, err := s.libraryService.ListBooks(r.Context())
	if err != nil {
		s.logger.Error("book listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list books")
		return
	}

	books := make([]domain.BookListEntry, len(entries))
	for i, entry := range entries {
		books[i] = domain.BookListEntry{
			ID:      entry.ID,
			Title:   entry.Title,
			Summary: truncateSummary(entry.Summary),
		}
	}

	writeJSON(w, http.StatusOK, BookListResponse{Books: books, Count: len(books)})
}

// truncateSummary caps a summary at summaryPreviewLength characters.
// Counted in runes so diacritics are never split mid-sequence.
func truncateSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) <= summaryPreviewLength {
		return summary
	}
	return string(runes[:summaryPreviewLength]) + "..."
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
