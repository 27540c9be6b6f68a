package models

import (
	"time"

	goval "github.com/go-passwd/validator"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account on the platform. IsAgent is the capability
// flag that drives conversation role assignment.
type User struct {
	Model
	Firstname      string     `json:"firstname" binding:"required,min=2" conform:"trim"`
	Lastname       string     `json:"lastname" binding:"required,min=2" conform:"trim"`
	Email          string     `json:"email" gorm:"unique;not null" binding:"required,email" conform:"email,lower"`
	PhoneNumber    string     `json:"phone_number" gorm:"unique;not null" binding:"required" conform:"trim"`
	CountryCode    string     `json:"country_code" binding:"required" conform:"trim"`
	Picture        string     `json:"picture" gorm:"default:''"`
	GovernmentID   string     `json:"government_id,omitempty"`
	Verified       bool       `json:"verified" gorm:"default:false"`
	IsAgent        bool       `json:"is_agent" gorm:"default:false"`
	IsMember       bool       `json:"is_member" gorm:"default:false"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Password       string     `json:"password,omitempty" gorm:"-" validate:"omitempty,min=8"`
	HashedPassword string     `json:"-"`
	IsSocial       bool       `json:"-"`
}

// Blacklist holds revoked access tokens until they expire.
type Blacklist struct {
	Model
	Email string `json:"email"`
	Token string `json:"token" gorm:"index"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Picture     string `json:"picture"`
	IsAgent     bool   `json:"is_agent"`
	Verified    bool   `json:"verified"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPassword struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type GoogleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

type VerifyPhoneRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

// Sanitize normalises inbound fields (trim, lowercase email) before
// validation and persistence.
func (u *User) Sanitize() error {
	return conform.Strings(u)
}

// ValidatePassword enforces the signup password policy.
func (u *User) ValidatePassword() error {
	passwordValidator := goval.New(
		goval.MinLength(8, nil),
		goval.MaxLength(72, nil),
		goval.ContainsAtLeast("0123456789", 1, nil),
	)
	return passwordValidator.Validate(u.Password)
}

// VerifyPassword compares the stored hash with a login attempt.
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

// UserSummary is the sender projection attached to realtime events.
func (u *User) UserSummary() map[string]interface{} {
	return map[string]interface{}{
		"id":      u.ID.String(),
		"name":    u.Firstname + " " + u.Lastname,
		"picture": u.Picture,
	}
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		Firstname:   u.Firstname,
		Lastname:    u.Lastname,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Picture:     u.Picture,
		IsAgent:     u.IsAgent,
		Verified:    u.Verified,
	}
}

// TranslateValidationErrors renders validator errors as human readable
// messages keyed by field.
func TranslateValidationErrors(err error) []string {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = entranslations.RegisterDefaultTranslations(validate, trans)

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fieldErr := range verrs {
		out = append(out, fieldErr.Translate(trans))
	}
	return out
}
