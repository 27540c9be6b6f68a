package db

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/models"
	"gorm.io/gorm"
)

// ErrDuplicateConversation is returned when the (user_id, agent_id)
// uniqueness constraint rejects a second conversation for the same pair.
var ErrDuplicateConversation = errors.New("conversation already exists")

// MessageRepository is the append-only message log.
type MessageRepository interface {
	// AppendMessage durably stores a message and touches the conversation for
	// the resolved (userID, agentID) pair in the same transaction: the
	// last-message pointer is updated and the receiver's unread counter is
	// incremented by exactly one. The conversation is created on first
	// contact. Returns the stored message and the up-to-date conversation.
	AppendMessage(senderID, receiverID, userID, agentID uuid.UUID, content string) (*models.Message, *models.Conversation, error)
	// ListBetween returns the full history between two accounts regardless of
	// direction, ordered by creation time ascending.
	ListBetween(idA, idB uuid.UUID) ([]models.Message, error)
	// MarkReadForReceiver flips read=true on every unread message sent by
	// counterpartID to receiverID. Idempotent.
	MarkReadForReceiver(receiverID, counterpartID uuid.UUID) error
}

// ConversationRepository manages the unique (user, agent) pairing rows.
type ConversationRepository interface {
	FindByID(id uuid.UUID) (*models.Conversation, error)
	// FindByPair is the exact ordered-pair lookup.
	FindByPair(userID, agentID uuid.UUID) (*models.Conversation, error)
	// FindByUnorderedPair checks both role orderings.
	FindByUnorderedPair(idA, idB uuid.UUID) (*models.Conversation, error)
	// CreateConversation fails with ErrDuplicateConversation if the ordered
	// pair already exists.
	CreateConversation(userID, agentID uuid.UUID) (*models.Conversation, error)
	AttachLastMessage(conversationID, messageID uuid.UUID) error
	IncrementUnread(conversationID uuid.UUID, side models.ConversationSide) error
	ResetUnread(conversationID uuid.UUID, side models.ConversationSide) error
	// ListForUser returns the caller's conversations ordered by recency with
	// participant and last-message projections. Non-agents only ever occupy
	// the user slot, so their agent-side rows are filtered out.
	ListForUser(accountID uuid.UUID, isAgent bool) ([]models.Conversation, error)
}

type messageRepo struct {
	DB *gorm.DB
}

func NewMessageRepo(db *GormDB) MessageRepository {
	return &messageRepo{db.DB}
}

type conversationRepo struct {
	DB *gorm.DB
}

func NewConversationRepo(db *GormDB) ConversationRepository {
	return &conversationRepo{db.DB}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func unreadColumn(side models.ConversationSide) string {
	if side == models.AgentSide {
		return "agent_unread_count"
	}
	return "user_unread_count"
}

func (r *messageRepo) AppendMessage(senderID, receiverID, userID, agentID uuid.UUID, content string) (*models.Message, *models.Conversation, error) {
	if content == "" {
		return nil, nil, errors.New("message content is empty")
	}
	if senderID == receiverID {
		return nil, nil, errors.New("sender and receiver must differ")
	}

	receiverSide := models.UserSide
	if agentID == receiverID {
		receiverSide = models.AgentSide
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}

	var conversation models.Conversation
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return errors.Wrap(err, "could not save message")
		}

		// Single atomic update keeps concurrent sends from losing
		// increments; no read-modify-write round trip.
		updates := map[string]interface{}{
			"last_message_id":           msg.ID,
			"updated_at":                time.Now(),
			unreadColumn(receiverSide): gorm.Expr(unreadColumn(receiverSide) + " + 1"),
		}
		res := tx.Model(&models.Conversation{}).
			Where("user_id = ? AND agent_id = ?", userID, agentID).
			UpdateColumns(updates)
		if res.Error != nil {
			return errors.Wrap(res.Error, "could not update conversation")
		}

		if res.RowsAffected == 0 {
			// First contact for this pair. The create runs under a
			// savepoint: on Postgres a unique violation aborts the
			// surrounding transaction, so the racing-send fallback must
			// roll back to here before retrying the update.
			if err := tx.SavePoint("create_conversation").Error; err != nil {
				return errors.Wrap(err, "could not set savepoint")
			}
			created := models.Conversation{
				UserID:        userID,
				AgentID:       agentID,
				LastMessageID: &msg.ID,
			}
			if receiverSide == models.AgentSide {
				created.AgentUnreadCount = 1
			} else {
				created.UserUnreadCount = 1
			}
			if err := tx.Create(&created).Error; err != nil {
				if !isUniqueViolation(err) {
					return errors.Wrap(err, "could not create conversation")
				}
				// A concurrent send created the row between the two
				// statements; discard the failed insert and fall back to
				// the atomic update.
				if err := tx.RollbackTo("create_conversation").Error; err != nil {
					return errors.Wrap(err, "could not roll back to savepoint")
				}
				res = tx.Model(&models.Conversation{}).
					Where("user_id = ? AND agent_id = ?", userID, agentID).
					UpdateColumns(updates)
				if res.Error != nil {
					return errors.Wrap(res.Error, "could not update conversation")
				}
			}
		}

		return tx.Where("user_id = ? AND agent_id = ?", userID, agentID).
			First(&conversation).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return msg, &conversation, nil
}

func (r *messageRepo) ListBetween(idA, idB uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			idA, idB, idB, idA).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list messages")
	}
	return messages, nil
}

func (r *messageRepo) MarkReadForReceiver(receiverID, counterpartID uuid.UUID) error {
	err := r.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read = ?", receiverID, counterpartID, false).
		Updates(map[string]interface{}{"read": true, "updated_at": time.Now()}).Error
	if err != nil {
		return errors.Wrap(err, "could not mark messages read")
	}
	return nil
}

func (r *conversationRepo) FindByID(id uuid.UUID) (*models.Conversation, error) {
	conversation := &models.Conversation{}
	err := r.DB.Where("id = ?", id).First(conversation).Error
	if err != nil {
		return nil, err
	}
	return conversation, nil
}

func (r *conversationRepo) FindByPair(userID, agentID uuid.UUID) (*models.Conversation, error) {
	conversation := &models.Conversation{}
	err := r.DB.Where("user_id = ? AND agent_id = ?", userID, agentID).First(conversation).Error
	if err != nil {
		return nil, err
	}
	return conversation, nil
}

func (r *conversationRepo) FindByUnorderedPair(idA, idB uuid.UUID) (*models.Conversation, error) {
	conversation := &models.Conversation{}
	err := r.DB.
		Where("(user_id = ? AND agent_id = ?) OR (user_id = ? AND agent_id = ?)", idA, idB, idB, idA).
		First(conversation).Error
	if err != nil {
		return nil, err
	}
	return conversation, nil
}

func (r *conversationRepo) CreateConversation(userID, agentID uuid.UUID) (*models.Conversation, error) {
	conversation := &models.Conversation{
		UserID:  userID,
		AgentID: agentID,
	}
	if err := r.DB.Create(conversation).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateConversation
		}
		return nil, errors.Wrap(err, "could not create conversation")
	}
	return conversation, nil
}

func (r *conversationRepo) AttachLastMessage(conversationID, messageID uuid.UUID) error {
	err := r.DB.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		UpdateColumns(map[string]interface{}{
			"last_message_id": messageID,
			"updated_at":      time.Now(),
		}).Error
	if err != nil {
		return errors.Wrap(err, "could not attach last message")
	}
	return nil
}

func (r *conversationRepo) IncrementUnread(conversationID uuid.UUID, side models.ConversationSide) error {
	column := unreadColumn(side)
	err := r.DB.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	if err != nil {
		return errors.Wrap(err, "could not increment unread count")
	}
	return nil
}

func (r *conversationRepo) ResetUnread(conversationID uuid.UUID, side models.ConversationSide) error {
	err := r.DB.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		UpdateColumn(unreadColumn(side), 0).Error
	if err != nil {
		return errors.Wrap(err, "could not reset unread count")
	}
	return nil
}

func (r *conversationRepo) ListForUser(accountID uuid.UUID, isAgent bool) ([]models.Conversation, error) {
	query := r.DB.
		Preload("User").
		Preload("Agent").
		Preload("LastMessage").
		Order("updated_at desc")

	if isAgent {
		query = query.Where("user_id = ? OR agent_id = ?", accountID, accountID)
	} else {
		query = query.Where("user_id = ?", accountID)
	}

	var conversations []models.Conversation
	if err := query.Find(&conversations).Error; err != nil {
		return nil, errors.Wrap(err, "could not list conversations")
	}
	return conversations, nil
}
