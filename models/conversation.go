package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationSide names one of the two unread counters.
type ConversationSide string

const (
	UserSide  ConversationSide = "user"
	AgentSide ConversationSide = "agent"
)

// Conversation is the unique pairing of a user-role account and an
// agent-role account. The role split is frozen at creation time even if
// either party's agent capability changes afterwards. At most one row
// exists per ordered (UserID, AgentID) pair.
type Conversation struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair,priority:1;index:idx_conversation_user" json:"user_id"`
	User             *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AgentID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair,priority:2;index:idx_conversation_agent" json:"agent_id"`
	Agent            *User      `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	LastMessageID    *uuid.UUID `gorm:"type:uuid" json:"last_message_id"`
	LastMessage      *Message   `gorm:"foreignKey:LastMessageID" json:"last_message,omitempty"`
	UserUnreadCount  int        `gorm:"not null;default:0" json:"user_unread_count"`
	AgentUnreadCount int        `gorm:"not null;default:0" json:"agent_unread_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// SideOf reports which side of the conversation the given account holds.
// The second return is false when the account is not a participant.
func (c *Conversation) SideOf(accountID uuid.UUID) (ConversationSide, bool) {
	switch accountID {
	case c.UserID:
		return UserSide, true
	case c.AgentID:
		return AgentSide, true
	default:
		return "", false
	}
}

// OtherParty returns the counterpart of the given participant.
func (c *Conversation) OtherParty(accountID uuid.UUID) uuid.UUID {
	if accountID == c.UserID {
		return c.AgentID
	}
	return c.UserID
}
