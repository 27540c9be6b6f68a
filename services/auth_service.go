package services

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/config"
	"github.com/techagentng/wayvee/db"
	apiError "github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/mailingservices"
	"github.com/techagentng/wayvee/models"
	"github.com/techagentng/wayvee/services/jwt"
	"github.com/techagentng/wayvee/services/utils"
	"github.com/techagentng/wayvee/smsservices"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(user *models.User) (*models.User, *apiError.Error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	LogoutUser(accessToken string) *apiError.Error
	GetUserProfile(userID uuid.UUID) (*models.User, *apiError.Error)
	SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error
	ResetPassword(request *models.ResetPassword, token string) *apiError.Error
	StartPhoneVerification(userID uuid.UUID) *apiError.Error
	CheckPhoneVerification(userID uuid.UUID, request *models.VerifyPhoneRequest) *apiError.Error
	SetGovernmentID(userID uuid.UUID, key string) *apiError.Error
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	mail     mailingservices.Mailer
	sms      smsservices.OTPSender
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, mail mailingservices.Mailer, sms smsservices.OTPSender, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		mail:     mail,
		sms:      sms,
	}
}

func (s *authService) SignupUser(user *models.User) (*models.User, *apiError.Error) {
	if err := user.Sanitize(); err != nil {
		log.Printf("SignupUser sanitize error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if err := user.ValidatePassword(); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	emailExists, err := s.authRepo.IsEmailExist(user.Email)
	if err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if emailExists {
		return nil, apiError.New("email already exists", http.StatusConflict)
	}

	phoneExists, err := s.authRepo.IsPhoneExist(user.PhoneNumber)
	if err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if phoneExists {
		return nil, apiError.New("phone number already exists", http.StatusConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = string(hashedPassword)
	user.Password = ""

	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	// Welcome mail is best effort.
	if err := s.mail.SendWelcomeMail(user.Email, user.Firstname); err != nil {
		log.Printf("SignupUser welcome mail failed: %v", err)
	}

	return user, nil
}

func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	user, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
		}
		log.Printf("LoginUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := user.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
	}

	accessToken, err := jwt.GenerateToken(user.ID, s.Config.JWTSecret)
	if err != nil {
		log.Printf("LoginUser token error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: user.ToResponse(),
		AccessToken:  accessToken,
	}, nil
}

func (s *authService) LogoutUser(accessToken string) *apiError.Error {
	blacklist := &models.Blacklist{Token: accessToken}
	if err := s.authRepo.AddToBlackList(blacklist); err != nil {
		log.Printf("LogoutUser error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) GetUserProfile(userID uuid.UUID) (*models.User, *apiError.Error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("GetUserProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return user, nil
}

func (s *authService) SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error {
	user, err := s.authRepo.FindUserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the address exists.
			return nil
		}
		log.Printf("SendEmailForPasswordReset error: %v", err)
		return apiError.ErrInternalServerError
	}

	resetToken, err := utils.GeneratePasswordResetToken(user.Email, s.Config.JWTSecret)
	if err != nil {
		log.Printf("SendEmailForPasswordReset token error: %v", err)
		return apiError.ErrInternalServerError
	}

	resetLink := fmt.Sprintf("%s/password/reset/%s", s.Config.BaseUrl, resetToken)
	if err := s.mail.SendResetPasswordMail(user.Email, resetLink); err != nil {
		log.Printf("SendEmailForPasswordReset mail error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) ResetPassword(request *models.ResetPassword, token string) *apiError.Error {
	if request.Password != request.ConfirmPassword {
		return apiError.New("passwords do not match", http.StatusBadRequest)
	}

	claims, err := utils.VerifyResetToken(token, s.Config.JWTSecret)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	user, err := s.authRepo.FindUserByEmail(claims.Email)
	if err != nil {
		log.Printf("ResetPassword lookup error: %v", err)
		return apiError.ErrInternalServerError
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("ResetPassword hash error: %v", err)
		return apiError.ErrInternalServerError
	}

	if err := s.authRepo.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		log.Printf("ResetPassword update error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) StartPhoneVerification(userID uuid.UUID) *apiError.Error {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		log.Printf("StartPhoneVerification lookup error: %v", err)
		return apiError.ErrInternalServerError
	}
	if user.Verified {
		return apiError.New("phone number already verified", http.StatusConflict)
	}

	phone := user.CountryCode + user.PhoneNumber
	if err := s.sms.StartVerification(phone); err != nil {
		log.Printf("StartPhoneVerification error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) CheckPhoneVerification(userID uuid.UUID, request *models.VerifyPhoneRequest) *apiError.Error {
	approved, err := s.sms.CheckVerification(request.PhoneNumber, request.Code)
	if err != nil {
		log.Printf("CheckPhoneVerification error: %v", err)
		return apiError.ErrInternalServerError
	}
	if !approved {
		return apiError.New("invalid verification code", http.StatusBadRequest)
	}

	if err := s.authRepo.MarkPhoneVerified(userID); err != nil {
		log.Printf("CheckPhoneVerification update error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

// SetGovernmentID stores the uploaded identity document key pending manual
// review.
func (s *authService) SetGovernmentID(userID uuid.UUID, key string) *apiError.Error {
	if err := s.authRepo.SetGovernmentID(userID, key); err != nil {
		log.Printf("SetGovernmentID error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
