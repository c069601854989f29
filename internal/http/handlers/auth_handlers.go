package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/teran1416/InventarioApp/internal/auth"
	"github.com/teran1416/InventarioApp/internal/repo"
)

// RegisterHandler godoc
// @Summary Register new user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body RegisterRequest true "full name, email and password"
// @Success 201 {object} IdentityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)

	if errs := s.validateRequest(req); len(errs) > 0 {
		s.invalidInput(w, errs)
		return
	}

	session, err := s.auth.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			s.respondMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
		s.serverError(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, identityFrom(session.User, session.Token))
}

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "email and password"
// @Success 200 {object} IdentityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	if errs := s.validateRequest(req); len(errs) > 0 {
		s.invalidInput(w, errs)
		return
	}

	session, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.serverError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, identityFrom(session.User, session.Token))
}

// ProfileHandler godoc
// @Summary Current user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} IdentityResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/profile [get]
func (s *Server) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.ownerOrUnauthorized(w, r)
	if !ok {
		return
	}

	user, err := s.auth.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			s.respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		s.serverError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, identityFrom(user, ""))
}
