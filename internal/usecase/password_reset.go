package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prasitsang/stockroom-api/internal/model"
	"github.com/prasitsang/stockroom-api/internal/repository"
	"github.com/prasitsang/stockroom-api/shared/security"
)

// resetTokenValidity bounds how long a reset secret can be exchanged.
const resetTokenValidity = 30 * time.Minute

// PasswordResetUsecase defines the business logic for the forgot/reset flow.
type PasswordResetUsecase interface {
	// ForgotPassword generates a one-time secret, stores its hash with an
	// expiry and emails a reset link to the account owner.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword exchanges a presented secret for a password change. The
	// matching token is deleted so the secret works exactly once.
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

var (
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrEmailNotSent          = errors.New("email not sent, please try again")
)

type passwordResetUsecase struct {
	userRepo    repository.UserRepository
	tokenRepo   repository.PasswordResetTokenRepository
	notifier    Notifier
	frontendURL string
	sender      string
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	notifier Notifier,
	frontendURL string,
	sender string,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		notifier:    notifier,
		frontendURL: frontendURL,
		sender:      sender,
	}
}

func (u *passwordResetUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}

		return err
	}

	// The raw secret carries the user ID suffix; only its hash is stored.
	secret, err := generateResetSecret(user.ID.Hex())
	if err != nil {
		return err
	}

	now := time.Now()
	if _, err := u.tokenRepo.CreateToken(ctx, &model.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashResetSecret(secret),
		CreatedAt: now,
		ExpiresAt: now.Add(resetTokenValidity),
	}); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/resetpassword/%s", u.frontendURL, secret)
	htmlBody := fmt.Sprintf(`
		<h2>Hello %s</h2>
		<p>You requested a password reset.</p>
		<p>Please use the link below to reset your password:</p>

		<p><a href="%s">%s</a></p>

		<p>This reset link is only valid for %d minutes.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>

		<p>Regards,</p>
		<p>Stockroom Team</p>
	`, user.Name, resetURL, resetURL, int(resetTokenValidity.Minutes()))

	// An unconsumed token is harmless, so it is not rolled back when the
	// notifier fails; it simply expires.
	if err := u.notifier.Send("Password Reset Request", htmlBody, user.Email, u.sender, ""); err != nil {
		return fmt.Errorf("%w: %w", ErrEmailNotSent, err)
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	token, err := u.tokenRepo.GetValidToken(ctx, hashResetSecret(rawToken), time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}

		return err
	}

	if _, err := u.userRepo.GetUser(ctx, token.UserID.Hex()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}

		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, token.UserID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	// Consume the token so the same secret cannot reset twice.
	return u.tokenRepo.DeleteToken(ctx, token.ID.Hex())
}

// generateResetSecret returns 32 random bytes hex-encoded with the owning
// user's ID appended. The suffix makes the secret self-describing in the
// reset link without a server-side lookup table.
func generateResetSecret(userID string) (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes) + userID, nil
}

// hashResetSecret derives the stored form of a reset secret.
func hashResetSecret(secret string) string {
	digest := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(digest[:])
}
