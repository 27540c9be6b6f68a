package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/models"
	"gorm.io/gorm"
)

type AgentRepository interface {
	CreateAgent(agent *models.Agent) error
	FindAgentByUserID(userID uuid.UUID) (*models.Agent, error)
}

type agentRepo struct {
	DB *gorm.DB
}

func NewAgentRepo(db *GormDB) AgentRepository {
	return &agentRepo{db.DB}
}

func (r *agentRepo) CreateAgent(agent *models.Agent) error {
	if err := r.DB.Create(agent).Error; err != nil {
		return errors.Wrap(err, "could not create agent profile")
	}
	return nil
}

func (r *agentRepo) FindAgentByUserID(userID uuid.UUID) (*models.Agent, error) {
	agent := &models.Agent{}
	err := r.DB.Where("user_id = ?", userID).First(agent).Error
	if err != nil {
		return nil, err
	}
	return agent, nil
}
