package main

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Simplici0/printquote/internal/auth"
	"github.com/Simplici0/printquote/internal/quote"
)

type registerRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=30"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,maxbytes=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,min=6"`
}

type tokenRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := quote.Validate(req); err != nil {
		if !writeInvalid(w, err) {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	if req.Password != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	token, err := s.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "Username already in use")
		return
	case errors.Is(err, auth.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	case errors.Is(err, auth.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, "Password is too long")
		return
	case err != nil:
		s.logger.Error("register user", zap.String("username", req.Username), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	s.logger.Info("user registered", zap.String("username", req.Username))
	writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// handleToken accepts JSON credentials or the OAuth2 password form
// (username and password fields).
func (s *server) handleToken(w http.ResponseWriter, r *http.Request) {
	req, err := readTokenRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := quote.Validate(req); err != nil {
		if !writeInvalid(w, err) {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	token, err := s.auth.Login(r.Context(), req.Identifier, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusBadRequest, "Incorrect username or password")
		return
	}
	if err != nil {
		s.logger.Error("login", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func readTokenRequest(w http.ResponseWriter, r *http.Request) (tokenRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return tokenRequest{}, err
		}
		return tokenRequest{
			Identifier: strings.TrimSpace(r.PostForm.Get("username")),
			Password:   r.PostForm.Get("password"),
		}, nil
	}

	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return tokenRequest{}, err
	}
	req.Identifier = strings.TrimSpace(req.Identifier)
	return req, nil
}
