package services

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/db"
	apiError "github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
	"gorm.io/gorm"
)

type AgentService interface {
	// ApplyForAgent creates the agent profile and flips the account's agent
	// capability. Role assignment in any pre-existing conversations stays as
	// it was at their creation time.
	ApplyForAgent(user *models.User, request *models.ApplyForAgentRequest) *apiError.Error
	GetAgentProfile(userID uuid.UUID) (*models.Agent, *apiError.Error)
}

type agentService struct {
	agentRepo db.AgentRepository
	authRepo  db.AuthRepository
}

func NewAgentService(agentRepo db.AgentRepository, authRepo db.AuthRepository) AgentService {
	return &agentService{
		agentRepo: agentRepo,
		authRepo:  authRepo,
	}
}

func (s *agentService) ApplyForAgent(user *models.User, request *models.ApplyForAgentRequest) *apiError.Error {
	if user.IsAgent {
		return apiError.New("you have already been approved as an agent", http.StatusConflict)
	}

	agent := &models.Agent{
		UserID:          user.ID,
		AgencyName:      request.AgencyName,
		About:           request.About,
		ServicesOffered: request.ServicesOffered,
		Latitude:        request.Latitude,
		Longitude:       request.Longitude,
		Membership:      "regular",
	}
	if err := s.agentRepo.CreateAgent(agent); err != nil {
		log.Printf("ApplyForAgent create error: %v", err)
		return apiError.ErrInternalServerError
	}

	user.IsAgent = true
	if err := s.authRepo.UpdateUser(user); err != nil {
		log.Printf("ApplyForAgent user update error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *agentService) GetAgentProfile(userID uuid.UUID) (*models.Agent, *apiError.Error) {
	agent, err := s.agentRepo.FindAgentByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("agent profile not found", http.StatusNotFound)
		}
		log.Printf("GetAgentProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return agent, nil
}
