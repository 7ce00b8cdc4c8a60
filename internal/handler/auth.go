package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/wellnest/wellnest-api/internal/usecase"
)

// AuthHTTPHandler exposes the authentication operations over HTTP.
type AuthHTTPHandler struct {
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *payloadValidator
	logger               *zerolog.Logger
}

// NewAuthHTTPHandler creates a new AuthHTTPHandler.
func NewAuthHTTPHandler(
	authUsecase usecase.AuthUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	logger *zerolog.Logger,
) (*AuthHTTPHandler, error) {
	v, err := newPayloadValidator()
	if err != nil {
		return nil, err
	}

	return &AuthHTTPHandler{
		authUsecase:          authUsecase,
		passwordResetUsecase: passwordResetUsecase,
		validator:            v,
		logger:               logger,
	}, nil
}

// RegisterRoutes mounts the auth endpoints on the given router.
func (h *AuthHTTPHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/verify-otp", h.VerifyOTP)
	r.Post("/reset-password", h.ResetPassword)
}

func (h *AuthHTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, token, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPasswordMismatch):
			respondMessage(w, http.StatusBadRequest, "password and confirmation do not match")
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			respondMessage(w, http.StatusBadRequest, "email is already registered")
		default:
			h.logger.Error().Err(err).Msg("failed to register user")
			respondMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

func (h *AuthHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			respondMessage(w, http.StatusNotFound, "user not found")
		case errors.Is(err, usecase.ErrInvalidPassword):
			respondMessage(w, http.StatusUnauthorized, "invalid password")
		default:
			h.logger.Error().Err(err).Msg("failed to log in user")
			respondMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

func (h *AuthHTTPHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.passwordResetUsecase.RequestReset(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			respondMessage(w, http.StatusNotFound, "user not found")
		default:
			h.logger.Error().Err(err).Msg("failed to request password reset")
			respondMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondMessage(w, http.StatusOK, "OTP sent")
}

func (h *AuthHTTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, token, err := h.passwordResetUsecase.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOTPInvalidOrExpired):
			respondMessage(w, http.StatusBadRequest, "OTP is invalid or has expired")
		default:
			h.logger.Error().Err(err).Msg("failed to verify OTP")
			respondMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

func (h *AuthHTTPHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOTPInvalidOrExpired):
			respondMessage(w, http.StatusBadRequest, "OTP is invalid or has expired")
		default:
			h.logger.Error().Err(err).Msg("failed to reset password")
			respondMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondMessage(w, http.StatusOK, "password has been reset")
}

// decode parses and validates the JSON request body. On failure it writes a
// 400 response and returns false.
func (h *AuthHTTPHandler) decode(w http.ResponseWriter, r *http.Request, payload any) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request payload")
		return false
	}

	if msg := h.validator.Check(payload); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return false
	}

	return true
}
