package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) (bool, error)
	IsPhoneExist(phone string) (bool, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uuid.UUID) (*models.User, error)
	UpdateUser(user *models.User) error
	UpdatePassword(userID uuid.UUID, hashedPassword string) error
	MarkPhoneVerified(userID uuid.UUID) error
	SetGovernmentID(userID uuid.UUID, key string) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := a.DB.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "could not create user")
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) (bool, error) {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "could not check email")
	}
	return count > 0, nil
}

func (a *authRepo) IsPhoneExist(phone string) (bool, error) {
	var count int64
	err := a.DB.Model(&models.User{}).Where("phone_number = ?", phone).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "could not check phone number")
	}
	return count > 0, nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("email = ?", email).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) FindUserByID(id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("id = ?", id).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return a.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("hashed_password", hashedPassword).Error
}

func (a *authRepo) MarkPhoneVerified(userID uuid.UUID) error {
	return a.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("verified", true).Error
}

func (a *authRepo) SetGovernmentID(userID uuid.UUID, key string) error {
	return a.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("government_id", key).Error
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
