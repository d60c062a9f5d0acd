package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prasitsang/stockroom-api/internal/model"
	"github.com/prasitsang/stockroom-api/internal/payload"
	"github.com/prasitsang/stockroom-api/internal/usecase"
	"github.com/prasitsang/stockroom-api/shared/auth"
	"github.com/prasitsang/stockroom-api/shared/validator"
)

// UserHandler serves the account and password-reset endpoints.
type UserHandler struct {
	accountUsecase usecase.AccountUsecase
	resetUsecase   usecase.PasswordResetUsecase
	jwtAuth        auth.JWTAuthenticator
	validator      *validator.Validator
	logger         *zerolog.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(
	accountUsecase usecase.AccountUsecase,
	resetUsecase usecase.PasswordResetUsecase,
	jwtAuth auth.JWTAuthenticator,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		accountUsecase: accountUsecase,
		resetUsecase:   resetUsecase,
		jwtAuth:        jwtAuth,
		validator:      validator,
		logger:         logger,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, credential, err := h.accountUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyRegistered) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error().Err(err).Msg("failed to register user")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.setSessionCookie(w, credential)
	respondJSON(w, http.StatusCreated, payload.NewUserResponse(user, credential))
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, credential, err := h.accountUsecase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			respondError(w, http.StatusBadRequest, "user not found, please sign up")
		case errors.Is(err, usecase.ErrInvalidCredentials):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to login user")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}

		return
	}

	h.setSessionCookie(w, credential)
	respondJSON(w, http.StatusOK, payload.NewUserResponse(user, credential))
}

// Logout is stateless: the stored credential is overwritten with an empty,
// already-expired one.
func (h *UserHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})

	respondJSON(w, http.StatusOK, messageResponse{Message: "successfully logged out"})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())
	respondJSON(w, http.StatusOK, payload.NewUserResponse(user, ""))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := usecase.UpdateProfileParams{
		Name:  req.Name,
		Phone: req.Phone,
		Bio:   req.Bio,
	}
	if req.Photo != nil {
		params.Photo = &model.Photo{URL: req.Photo.URL, PublicID: req.Photo.PublicID}
	}

	user := CurrentUser(r.Context())
	updated, err := h.accountUsecase.UpdateProfile(r.Context(), user.ID.Hex(), params)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}

		h.logger.Error().Err(err).Msg("failed to update profile")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewUserResponse(updated, ""))
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := CurrentUser(r.Context())
	err := h.accountUsecase.ChangePassword(r.Context(), user.ID.Hex(), req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrWrongOldPassword):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrUserNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to change password")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}

		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "password changed successfully"})
}

// LoginStatus is a pure verify-and-report operation: it never resolves the
// identity and has no side effects.
func (h *UserHandler) LoginStatus(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		respondJSON(w, http.StatusOK, false)
		return
	}

	if _, err := h.jwtAuth.Verify(cookie.Value); err != nil {
		respondJSON(w, http.StatusOK, false)
		return
	}

	respondJSON(w, http.StatusOK, true)
}

func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.resetUsecase.ForgotPassword(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "user does not exist")
		case errors.Is(err, usecase.ErrEmailNotSent):
			h.logger.Error().Err(err).Msg("failed to send reset email")
			respondError(w, http.StatusInternalServerError, usecase.ErrEmailNotSent.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to request password reset")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}

		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "reset email sent"})
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rawToken := chi.URLParam(r, "resetToken")
	if err := h.resetUsecase.ResetPassword(r.Context(), rawToken, req.Password); err != nil {
		if errors.Is(err, usecase.ErrInvalidOrExpiredToken) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}

		h.logger.Error().Err(err).Msg("failed to reset password")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "password reset successful, please login"})
}

func (h *UserHandler) setSessionCookie(w http.ResponseWriter, credential string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    credential,
		Path:     "/",
		Expires:  time.Now().Add(h.jwtAuth.TTL()),
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})
}
