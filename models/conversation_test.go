package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationSideOf(t *testing.T) {
	userID := uuid.New()
	agentID := uuid.New()
	conv := &Conversation{UserID: userID, AgentID: agentID}

	side, ok := conv.SideOf(userID)
	require.True(t, ok)
	assert.Equal(t, UserSide, side)

	side, ok = conv.SideOf(agentID)
	require.True(t, ok)
	assert.Equal(t, AgentSide, side)

	_, ok = conv.SideOf(uuid.New())
	assert.False(t, ok)
}

func TestConversationOtherParty(t *testing.T) {
	userID := uuid.New()
	agentID := uuid.New()
	conv := &Conversation{UserID: userID, AgentID: agentID}

	assert.Equal(t, agentID, conv.OtherParty(userID))
	assert.Equal(t, userID, conv.OtherParty(agentID))
}
