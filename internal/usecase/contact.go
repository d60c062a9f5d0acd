package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/prasitsang/stockroom-api/internal/repository"
)

// ContactUsecase relays a support message from an authenticated user to the
// support mailbox, with Reply-To set so support can answer directly.
type ContactUsecase interface {
	SendMessage(ctx context.Context, userID, subject, message string) error
}

var ErrMessageNotSent = errors.New("message not sent, please try again")

type contactUsecase struct {
	userRepo     repository.UserRepository
	notifier     Notifier
	supportEmail string
	sender       string
}

// NewContactUsecase creates a new instance of ContactUsecase.
func NewContactUsecase(
	userRepo repository.UserRepository,
	notifier Notifier,
	supportEmail string,
	sender string,
) ContactUsecase {
	return &contactUsecase{
		userRepo:     userRepo,
		notifier:     notifier,
		supportEmail: supportEmail,
		sender:       sender,
	}
}

func (u *contactUsecase) SendMessage(ctx context.Context, userID, subject, message string) error {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}

		return err
	}

	if err := u.notifier.Send(subject, message, u.supportEmail, u.sender, user.Email); err != nil {
		return fmt.Errorf("%w: %w", ErrMessageNotSent, err)
	}

	return nil
}
