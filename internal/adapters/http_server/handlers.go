// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"booking_rag/internal/app"
	"booking_rag/internal/domain"
)

// maxBody caps request payloads; an analytics call carries at most a few
// hundred rows.
const maxBody = 1 << 20

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Matches []string         `json:"matches"`
	Rows    []domain.Booking `json:"rows"`
}

type analyticsRequest struct {
	Rows []domain.Booking `json:"rows"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/ask", h.ask)
	s.mux.Get("/v1/analytics", h.corpusAnalytics)
	s.mux.Post("/v1/analytics", h.analytics)
	s.mux.Get("/v1/bookings/{pos}", h.getBooking)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto HTTP problems.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOutOfRange):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrInvalidK):
		writeProblem(w, http.StatusBadRequest, "Invalid k", err.Error())
	case errors.Is(err, domain.ErrEmbedding):
		writeProblem(w, http.StatusBadGateway, "Embedding Unavailable", "embedding service failed")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// writeJSON encodes v before committing a status, so an unencodable value
// becomes a 500 problem instead of a truncated 200.
func writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "response could not be encoded")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// decodeBody reads an optional JSON body; an empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body, nil
}

func (h *Handlers) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeBody(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be {\"question\": string}")
		return
	}
	matches, err := h.Q.Ask(r.Context(), req.Question)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := askResponse{Matches: make([]string, 0, len(matches)), Rows: make([]domain.Booking, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, m.Text)
		resp.Rows = append(resp.Rows, m.Booking)
	}
	writeJSON(w, resp)
}

func (h *Handlers) analytics(w http.ResponseWriter, r *http.Request) {
	var req analyticsRequest
	if err := decodeBody(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be {\"rows\": [booking]}")
		return
	}
	writeJSON(w, h.Q.Analytics(req.Rows))
}

func (h *Handlers) corpusAnalytics(w http.ResponseWriter, r *http.Request) {
	etag, body, err := calcETagAndBody(h.Q.CorpusAnalytics())
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal analytics")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "response could not be encoded")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write analytics body")
	}
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	pos, err := strconv.Atoi(chi.URLParam(r, "pos"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Position", "pos must be a number")
		return
	}
	b, err := h.Q.Booking(pos)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, b)
}
