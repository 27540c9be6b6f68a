package services

import (
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/db"
	apiError "github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
	"github.com/techagentng/wayvee/services/realtime"
	"gorm.io/gorm"
)

// MessageService is the messaging core: conversation identity resolution,
// unread bookkeeping and realtime fan-out over the durable store.
type MessageService interface {
	ListConversations(caller *models.User) ([]models.Conversation, *apiError.Error)
	// GetConversation lazily resolves or creates the conversation with
	// otherID, returns the full history, marks the caller's side read and
	// notifies the counterpart.
	GetConversation(caller *models.User, otherID uuid.UUID) (*models.Conversation, []models.Message, *apiError.Error)
	SendMessage(caller *models.User, receiverID uuid.UUID, content string) (*models.Message, *models.Conversation, *apiError.Error)
	MarkConversationRead(caller *models.User, conversationID uuid.UUID) *apiError.Error
	SendTyping(caller *models.User, receiverID uuid.UUID, isTyping bool) *apiError.Error
	AuthorizeChannel(caller *models.User, socketID, channelName string) ([]byte, *apiError.Error)
}

type messageService struct {
	msgRepo    db.MessageRepository
	convRepo   db.ConversationRepository
	authRepo   db.AuthRepository
	notifier   realtime.Notifier
	authorizer realtime.ChannelAuthorizer
}

func NewMessageService(
	msgRepo db.MessageRepository,
	convRepo db.ConversationRepository,
	authRepo db.AuthRepository,
	notifier realtime.Notifier,
	authorizer realtime.ChannelAuthorizer,
) MessageService {
	return &messageService{
		msgRepo:    msgRepo,
		convRepo:   convRepo,
		authRepo:   authRepo,
		notifier:   notifier,
		authorizer: authorizer,
	}
}

// resolveRoles decides which party occupies the user slot and which the
// agent slot. Exactly one agent-capable party is the normal case. When
// both are agent-capable, a pre-existing conversation's split is reused so
// no duplicate pair can appear; with no prior row the caller defaults to
// the user slot. Neither-agent pairs are rejected.
func (s *messageService) resolveRoles(caller, other *models.User) (userID, agentID uuid.UUID, apiErr *apiError.Error) {
	switch {
	case caller.IsAgent && !other.IsAgent:
		return other.ID, caller.ID, nil
	case !caller.IsAgent && other.IsAgent:
		return caller.ID, other.ID, nil
	case caller.IsAgent && other.IsAgent:
		existing, err := s.convRepo.FindByUnorderedPair(caller.ID, other.ID)
		if err == nil {
			return existing.UserID, existing.AgentID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("resolveRoles: could not look up existing conversation: %v", err)
			return uuid.Nil, uuid.Nil, apiError.ErrInternalServerError
		}
		return caller.ID, other.ID, nil
	default:
		return uuid.Nil, uuid.Nil, apiError.ErrInvalidConversationPair
	}
}

// notify is fire and forget: a failed publish is logged and discarded
// because the durable write already succeeded and clients re-sync from the
// store.
func (s *messageService) notify(targetID uuid.UUID, event realtime.Event, payload interface{}) {
	if err := s.notifier.Publish(targetID, event, payload); err != nil {
		log.Printf("realtime publish failed: target=%s event=%s err=%v", targetID, event, err)
	}
}

func (s *messageService) ListConversations(caller *models.User) ([]models.Conversation, *apiError.Error) {
	conversations, err := s.convRepo.ListForUser(caller.ID, caller.IsAgent)
	if err != nil {
		log.Printf("ListConversations error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return conversations, nil
}

func (s *messageService) GetConversation(caller *models.User, otherID uuid.UUID) (*models.Conversation, []models.Message, *apiError.Error) {
	if otherID == caller.ID {
		return nil, nil, apiError.New("cannot open a conversation with yourself", 400)
	}

	conversation, err := s.convRepo.FindByUnorderedPair(caller.ID, otherID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("GetConversation lookup error: %v", err)
			return nil, nil, apiError.ErrInternalServerError
		}

		other, ferr := s.authRepo.FindUserByID(otherID)
		if ferr != nil {
			if errors.Is(ferr, gorm.ErrRecordNotFound) {
				return nil, nil, apiError.New("user not found", 404)
			}
			log.Printf("GetConversation user lookup error: %v", ferr)
			return nil, nil, apiError.ErrInternalServerError
		}

		userID, agentID, apiErr := s.resolveRoles(caller, other)
		if apiErr != nil {
			return nil, nil, apiErr
		}

		conversation, err = s.convRepo.CreateConversation(userID, agentID)
		if errors.Is(err, db.ErrDuplicateConversation) {
			// Lost a race with a concurrent open; reuse the winner's row.
			conversation, err = s.convRepo.FindByPair(userID, agentID)
		}
		if err != nil {
			log.Printf("GetConversation create error: %v", err)
			return nil, nil, apiError.ErrInternalServerError
		}
	}

	messages, err := s.msgRepo.ListBetween(caller.ID, otherID)
	if err != nil {
		log.Printf("GetConversation history error: %v", err)
		return nil, nil, apiError.ErrInternalServerError
	}

	side, ok := conversation.SideOf(caller.ID)
	if !ok {
		return nil, nil, apiError.ErrForbiddenChannel
	}
	if err := s.msgRepo.MarkReadForReceiver(caller.ID, otherID); err != nil {
		log.Printf("GetConversation mark read error: %v", err)
		return nil, nil, apiError.ErrInternalServerError
	}
	if err := s.convRepo.ResetUnread(conversation.ID, side); err != nil {
		log.Printf("GetConversation reset unread error: %v", err)
		return nil, nil, apiError.ErrInternalServerError
	}

	s.notify(otherID, realtime.EventMessageRead, map[string]interface{}{
		"conversation_id": conversation.ID.String(),
		"read_by":         caller.ID.String(),
	})

	return conversation, messages, nil
}

func (s *messageService) SendMessage(caller *models.User, receiverID uuid.UUID, content string) (*models.Message, *models.Conversation, *apiError.Error) {
	if content == "" {
		return nil, nil, apiError.New("message content is required", 400)
	}
	if receiverID == caller.ID {
		return nil, nil, apiError.New("cannot message yourself", 400)
	}

	receiver, err := s.authRepo.FindUserByID(receiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apiError.ErrReceiverNotFound
		}
		log.Printf("SendMessage receiver lookup error: %v", err)
		return nil, nil, apiError.ErrInternalServerError
	}

	userID, agentID, apiErr := s.resolveRoles(caller, receiver)
	if apiErr != nil {
		return nil, nil, apiErr
	}

	message, conversation, err := s.msgRepo.AppendMessage(caller.ID, receiverID, userID, agentID, content)
	if err != nil {
		log.Printf("SendMessage append error: %v", err)
		return nil, nil, apiError.ErrInternalServerError
	}

	s.notify(receiverID, realtime.EventNewMessage, map[string]interface{}{
		"message":         message,
		"conversation_id": conversation.ID.String(),
		"sender":          caller.UserSummary(),
	})

	return message, conversation, nil
}

func (s *messageService) MarkConversationRead(caller *models.User, conversationID uuid.UUID) *apiError.Error {
	conversation, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("conversation not found", 404)
		}
		log.Printf("MarkConversationRead lookup error: %v", err)
		return apiError.ErrInternalServerError
	}

	side, ok := conversation.SideOf(caller.ID)
	if !ok {
		return apiError.New("not authorized to access this conversation", 403)
	}

	otherID := conversation.OtherParty(caller.ID)
	if err := s.msgRepo.MarkReadForReceiver(caller.ID, otherID); err != nil {
		log.Printf("MarkConversationRead mark error: %v", err)
		return apiError.ErrInternalServerError
	}
	if err := s.convRepo.ResetUnread(conversation.ID, side); err != nil {
		log.Printf("MarkConversationRead reset error: %v", err)
		return apiError.ErrInternalServerError
	}

	s.notify(otherID, realtime.EventMessageRead, map[string]interface{}{
		"conversation_id": conversation.ID.String(),
		"read_by":         caller.ID.String(),
	})

	return nil
}

func (s *messageService) SendTyping(caller *models.User, receiverID uuid.UUID, isTyping bool) *apiError.Error {
	// No persistence: typing only touches the notifier.
	s.notify(receiverID, realtime.EventTyping, map[string]interface{}{
		"user_id":   caller.ID.String(),
		"is_typing": isTyping,
	})
	return nil
}

func (s *messageService) AuthorizeChannel(caller *models.User, socketID, channelName string) ([]byte, *apiError.Error) {
	owner, ok := realtime.ChannelOwner(channelName)
	if !ok || owner != caller.ID {
		// Logged as a potential abuse signal.
		log.Printf("channel auth denied: caller=%s channel=%q", caller.ID, channelName)
		return nil, apiError.ErrForbiddenChannel
	}

	grant, err := s.authorizer.AuthorizeChannel(socketID, channelName)
	if err != nil {
		log.Printf("channel auth signing error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return grant, nil
}
