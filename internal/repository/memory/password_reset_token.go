package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/prasitsang/stockroom-api/internal/model"
	"github.com/prasitsang/stockroom-api/internal/repository"
)

type PasswordResetTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]*model.PasswordResetToken
}

func NewPasswordResetTokenRepository() *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{tokens: make(map[string]*model.PasswordResetToken)}
}

func (r *PasswordResetTokenRepository) CreateToken(
	_ context.Context,
	token *model.PasswordResetToken,
) (*model.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token.ID = bson.NewObjectID()

	clone := *token
	r.tokens[token.ID.Hex()] = &clone

	return token, nil
}

func (r *PasswordResetTokenRepository) GetValidToken(
	_ context.Context,
	tokenHash string,
	now time.Time,
) (*model.PasswordResetToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, token := range r.tokens {
		if token.TokenHash == tokenHash && token.ExpiresAt.After(now) {
			clone := *token
			return &clone, nil
		}
	}

	return nil, repository.ErrNotFound
}

func (r *PasswordResetTokenRepository) DeleteToken(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, id)
	return nil
}

// Tokens returns a snapshot of every stored token, for assertions on what
// gets persisted.
func (r *PasswordResetTokenRepository) Tokens() []*model.PasswordResetToken {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.PasswordResetToken, 0, len(r.tokens))
	for _, token := range r.tokens {
		clone := *token
		out = append(out, &clone)
	}

	return out
}
