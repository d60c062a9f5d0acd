package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prasitsang/stockroom-api/internal/payload"
	"github.com/prasitsang/stockroom-api/internal/usecase"
	"github.com/prasitsang/stockroom-api/shared/validator"
)

// ContactHandler serves the contact-to-support relay.
type ContactHandler struct {
	contactUsecase usecase.ContactUsecase
	validator      *validator.Validator
	logger         *zerolog.Logger
}

// NewContactHandler creates a new ContactHandler instance.
func NewContactHandler(
	contactUsecase usecase.ContactUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *ContactHandler {
	return &ContactHandler{
		contactUsecase: contactUsecase,
		validator:      validator,
		logger:         logger,
	}
}

func (h *ContactHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req payload.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := CurrentUser(r.Context())
	if err := h.contactUsecase.SendMessage(r.Context(), user.ID.Hex(), req.Subject, req.Message); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			respondError(w, http.StatusBadRequest, "user not found, please login")
		case errors.Is(err, usecase.ErrMessageNotSent):
			h.logger.Error().Err(err).Msg("failed to relay contact message")
			respondError(w, http.StatusInternalServerError, usecase.ErrMessageNotSent.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to send contact message")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}

		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "message sent"})
}
