package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

type contextKey string

const userIDKey = contextKey("user_id")

// WithUserID attaches the authenticated user's id to ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// WriteJSON takes a response status code and arbitrary data and writes a json response to the client
func WriteJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func (s *Server) respond(w http.ResponseWriter, status int, data any) {
	if err := WriteJSON(w, status, data); err != nil {
		s.log.WithError(err).Error("failed to write JSON response")
	}
}

func (s *Server) respondMessage(w http.ResponseWriter, status int, message string) {
	s.respond(w, status, ErrorResponse{Message: message})
}

// serverError reports an unexpected failure as a 500 carrying the underlying error text.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).WithError(err).Error("request failed")
	s.respond(w, http.StatusInternalServerError, ErrorResponse{Message: "Server error", Error: err.Error()})
}

func (s *Server) invalidInput(w http.ResponseWriter, errs []ProductValidationError) {
	s.respond(w, http.StatusBadRequest, ErrorResponse{Message: "Validation failed", Errors: errs})
}

// ownerOrUnauthorized returns the authenticated user's id; the auth middleware
// guarantees it is present on protected routes.
func (s *Server) ownerOrUnauthorized(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := UserIDFromContext(r.Context())
	if !ok {
		s.respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return "", false
	}
	return owner, true
}
