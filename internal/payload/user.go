package payload

import "github.com/prasitsang/stockroom-api/internal/model"

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PhotoRequest struct {
	URL      string `json:"url"      validate:"required,url"`
	PublicID string `json:"publicId"`
}

// UpdateProfileRequest carries a partial profile update. Absent fields keep
// their stored values; email is intentionally not accepted.
type UpdateProfileRequest struct {
	Name  *string       `json:"name"  validate:"omitempty,min=1"`
	Photo *PhotoRequest `json:"photo" validate:"omitempty"`
	Phone *string       `json:"phone"`
	Bio   *string       `json:"bio"   validate:"omitempty,max=250"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"password"    validate:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// UserResponse is the public profile. Token is only present on register and
// login responses.
type UserResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Photo model.Photo `json:"photo"`
	Phone string      `json:"phone"`
	Bio   string      `json:"bio"`
	Token string      `json:"token,omitempty"`
}

// NewUserResponse maps a user record to its public representation.
func NewUserResponse(user *model.User, token string) UserResponse {
	return UserResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Photo: user.Photo,
		Phone: user.Phone,
		Bio:   user.Bio,
		Token: token,
	}
}
