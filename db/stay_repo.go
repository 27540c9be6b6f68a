package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/models"
	"gorm.io/gorm"
)

type StayRepository interface {
	CreateStay(stay *models.Stay) error
	ListStays(page, limit int) ([]models.Stay, error)
	FindStayByID(id uuid.UUID) (*models.Stay, error)
	FindStayByIDAndHost(id, hostID uuid.UUID) (*models.Stay, error)
	SaveStay(stay *models.Stay) error
	DeleteStay(id uuid.UUID) error
}

type stayRepo struct {
	DB *gorm.DB
}

func NewStayRepo(db *GormDB) StayRepository {
	return &stayRepo{db.DB}
}

func (r *stayRepo) CreateStay(stay *models.Stay) error {
	if err := r.DB.Create(stay).Error; err != nil {
		return errors.Wrap(err, "could not create stay")
	}
	return nil
}

func (r *stayRepo) ListStays(page, limit int) ([]models.Stay, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var stays []models.Stay
	err := r.DB.
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&stays).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list stays")
	}
	return stays, nil
}

func (r *stayRepo) FindStayByID(id uuid.UUID) (*models.Stay, error) {
	stay := &models.Stay{}
	err := r.DB.Where("id = ?", id).First(stay).Error
	if err != nil {
		return nil, err
	}
	return stay, nil
}

func (r *stayRepo) FindStayByIDAndHost(id, hostID uuid.UUID) (*models.Stay, error) {
	stay := &models.Stay{}
	err := r.DB.Where("id = ? AND host_id = ?", id, hostID).First(stay).Error
	if err != nil {
		return nil, err
	}
	return stay, nil
}

func (r *stayRepo) SaveStay(stay *models.Stay) error {
	return r.DB.Save(stay).Error
}

func (r *stayRepo) DeleteStay(id uuid.UUID) error {
	return r.DB.Where("id = ?", id).Delete(&models.Stay{}).Error
}
