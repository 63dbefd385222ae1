package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/easylend/userservice/internal/common"
	"github.com/easylend/userservice/internal/server/models"
	"github.com/easylend/userservice/internal/server/services"
	"github.com/easylend/userservice/pkg/api"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		s.sendError(w, "full_name, email and password are required", http.StatusBadRequest)
		return
	}
	userType := models.UserType(req.UserType)
	if !userType.Valid() {
		s.sendError(w, "unknown user_type", http.StatusBadRequest)
		return
	}

	result, err := s.users.Register(ctx, services.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		UserType: userType,
		BaseURL:  s.baseURL,
	})
	if err != nil {
		if errors.Is(err, common.ErrUserAlreadyExists) {
			s.logger.Warn(ctx, "registration conflict", "email", req.Email)
			s.sendError(w, "user already exists", http.StatusConflict)
			return
		}
		s.logger.Error(ctx, "registration failed", "error", err)
		s.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	s.logger.Info(ctx, "user registered", "email", result.Email, "user_id", result.UserID)

	s.sendJSON(w, api.RegisterResponse{
		UserID:    result.UserID,
		FullName:  result.FullName,
		Email:     result.Email,
		UserType:  string(result.UserType),
		Activated: result.Activated,
		Message:   "confirmation link sent",
	}, http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		s.sendError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	result, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUserNotFound):
			s.logger.Warn(ctx, "login failed: user not found", "email", req.Email)
			s.sendError(w, "user not found", http.StatusUnauthorized)
		case errors.Is(err, common.ErrInvalidCredentials):
			s.logger.Warn(ctx, "login failed: invalid credentials", "email", req.Email)
			s.sendError(w, "invalid credentials", http.StatusUnauthorized)
		default:
			s.logger.Error(ctx, "login failed", "error", err)
			s.sendError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	// a nil result with a nil error is a pending account
	if result == nil {
		s.logger.Warn(ctx, "login for non-activated account", "email", req.Email)
		s.sendError(w, "account not activated", http.StatusForbidden)
		return
	}

	s.logger.Info(ctx, "user logged in", "email", result.Email, "user_id", result.UserID)

	s.sendJSON(w, api.LoginResponse{
		Activated:    result.Activated,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Username:     result.FullName,
		Email:        result.Email,
	}, http.StatusOK)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := r.URL.Query().Get("token")
	if token == "" {
		s.sendError(w, "token is required", http.StatusBadRequest)
		return
	}

	if err := s.users.Activate(ctx, token); err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidToken):
			s.sendError(w, "invalid or expired confirmation token", http.StatusBadRequest)
		case errors.Is(err, common.ErrUserNotFound):
			s.sendError(w, "user not found", http.StatusNotFound)
		default:
			s.logger.Error(ctx, "activation failed", "error", err)
			s.sendError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	s.logger.Info(ctx, "account activated")
	s.sendJSON(w, api.ConfirmResponse{Message: "account activated"}, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.sendJSON(w, api.HealthResponse{Status: "ok"}, http.StatusOK)
}

func (s *Server) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error(context.Background(), "failed to encode JSON response", "error", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	s.sendJSON(w, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}, statusCode)
}
