package usecase

import (
	"context"
	"errors"

	"github.com/prasitsang/stockroom-api/internal/model"
	"github.com/prasitsang/stockroom-api/internal/repository"
	"github.com/prasitsang/stockroom-api/shared/auth"
	"github.com/prasitsang/stockroom-api/shared/security"
)

// AccountUsecase defines the interface for account-related use cases.
type AccountUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*model.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileParams defines the optional profile fields. A nil field keeps
// the stored value. Email is not listed: it cannot change through this path.
type UpdateProfileParams struct {
	Name  *string
	Photo *model.Photo
	Phone *string
	Bio   *string
}

var (
	ErrEmailAlreadyRegistered = errors.New("this email has already been registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrUserNotFound           = errors.New("user not found")
	ErrWrongOldPassword       = errors.New("old password is incorrect")
)

type accountUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
}

// NewAccountUsecase creates a new instance of AccountUsecase.
func NewAccountUsecase(userRepo repository.UserRepository, jwtAuth auth.JWTAuthenticator) AccountUsecase {
	return &accountUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
	}
}

func (u *accountUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, string, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Photo:        model.Photo{URL: model.DefaultPhotoURL},
		Phone:        model.DefaultPhone,
		Bio:          model.DefaultBio,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, "", ErrEmailAlreadyRegistered
		}

		return nil, "", err
	}

	credential, err := u.jwtAuth.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, credential, nil
}

func (u *accountUsecase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}

		return nil, "", err
	}

	if ok, err := security.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	credential, err := u.jwtAuth.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, credential, nil
}

func (u *accountUsecase) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *accountUsecase) UpdateProfile(
	ctx context.Context,
	userID string,
	params UpdateProfileParams,
) (*model.User, error) {
	user, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		Name:  params.Name,
		Photo: params.Photo,
		Phone: params.Phone,
		Bio:   params.Bio,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *accountUsecase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}

		return err
	}

	if ok, err := security.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
		return err
	} else if !ok {
		return ErrWrongOldPassword
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	return nil
}
