package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/wayvee/db"
	apiError "github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
	"github.com/techagentng/wayvee/services/realtime"
	"gorm.io/gorm"
)

// fakeStore backs both the message and conversation repositories so
// AppendMessage can keep the two in step the way the real transaction does.
type fakeStore struct {
	users         map[uuid.UUID]*models.User
	conversations map[uuid.UUID]*models.Conversation
	messages      []models.Message
	now           time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[uuid.UUID]*models.User),
		conversations: make(map[uuid.UUID]*models.Conversation),
		now:           time.Now(),
	}
}

func (f *fakeStore) addUser(isAgent bool) *models.User {
	u := &models.User{IsAgent: isAgent}
	u.ID = uuid.New()
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeStore) pair(userID, agentID uuid.UUID) *models.Conversation {
	for _, c := range f.conversations {
		if c.UserID == userID && c.AgentID == agentID {
			return c
		}
	}
	return nil
}

// MessageRepository

func (f *fakeStore) AppendMessage(senderID, receiverID, userID, agentID uuid.UUID, content string) (*models.Message, *models.Conversation, error) {
	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  f.tick(),
	}
	msg.ID = uuid.New()
	f.messages = append(f.messages, msg)

	conv := f.pair(userID, agentID)
	if conv == nil {
		conv = &models.Conversation{UserID: userID, AgentID: agentID}
		conv.ID = uuid.New()
		f.conversations[conv.ID] = conv
	}
	conv.LastMessageID = &msg.ID
	conv.UpdatedAt = f.now
	if receiverID == agentID {
		conv.AgentUnreadCount++
	} else {
		conv.UserUnreadCount++
	}
	return &msg, conv, nil
}

func (f *fakeStore) ListBetween(idA, idB uuid.UUID) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if (m.SenderID == idA && m.ReceiverID == idB) || (m.SenderID == idB && m.ReceiverID == idA) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkReadForReceiver(receiverID, counterpartID uuid.UUID) error {
	for i := range f.messages {
		if f.messages[i].ReceiverID == receiverID && f.messages[i].SenderID == counterpartID {
			f.messages[i].Read = true
		}
	}
	return nil
}

// ConversationRepository

func (f *fakeStore) FindByID(id uuid.UUID) (*models.Conversation, error) {
	if c, ok := f.conversations[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) FindByPair(userID, agentID uuid.UUID) (*models.Conversation, error) {
	if c := f.pair(userID, agentID); c != nil {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) FindByUnorderedPair(idA, idB uuid.UUID) (*models.Conversation, error) {
	if c := f.pair(idA, idB); c != nil {
		return c, nil
	}
	if c := f.pair(idB, idA); c != nil {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) CreateConversation(userID, agentID uuid.UUID) (*models.Conversation, error) {
	if f.pair(userID, agentID) != nil {
		return nil, db.ErrDuplicateConversation
	}
	conv := &models.Conversation{UserID: userID, AgentID: agentID}
	conv.ID = uuid.New()
	conv.UpdatedAt = f.tick()
	f.conversations[conv.ID] = conv
	return conv, nil
}

func (f *fakeStore) AttachLastMessage(conversationID, messageID uuid.UUID) error {
	if c, ok := f.conversations[conversationID]; ok {
		c.LastMessageID = &messageID
	}
	return nil
}

func (f *fakeStore) IncrementUnread(conversationID uuid.UUID, side models.ConversationSide) error {
	c, ok := f.conversations[conversationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if side == models.AgentSide {
		c.AgentUnreadCount++
	} else {
		c.UserUnreadCount++
	}
	return nil
}

func (f *fakeStore) ResetUnread(conversationID uuid.UUID, side models.ConversationSide) error {
	c, ok := f.conversations[conversationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if side == models.AgentSide {
		c.AgentUnreadCount = 0
	} else {
		c.UserUnreadCount = 0
	}
	return nil
}

func (f *fakeStore) ListForUser(accountID uuid.UUID, isAgent bool) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range f.conversations {
		if c.UserID == accountID || (isAgent && c.AgentID == accountID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

// AuthRepository (only the lookups the message service touches matter)

func (f *fakeStore) CreateUser(user *models.User) (*models.User, error) {
	f.users[user.ID] = user
	return user, nil
}
func (f *fakeStore) IsEmailExist(string) (bool, error) { return false, nil }
func (f *fakeStore) IsPhoneExist(string) (bool, error) { return false, nil }
func (f *fakeStore) FindUserByEmail(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeStore) FindUserByID(id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeStore) UpdateUser(*models.User) error                  { return nil }
func (f *fakeStore) UpdatePassword(uuid.UUID, string) error         { return nil }
func (f *fakeStore) MarkPhoneVerified(uuid.UUID) error              { return nil }
func (f *fakeStore) SetGovernmentID(uuid.UUID, string) error        { return nil }
func (f *fakeStore) AddToBlackList(*models.Blacklist) error         { return nil }
func (f *fakeStore) IsTokenInBlacklist(string) bool                 { return false }

type publishedEvent struct {
	target  uuid.UUID
	event   realtime.Event
	payload interface{}
}

type fakeNotifier struct {
	events []publishedEvent
}

func (n *fakeNotifier) Publish(targetID uuid.UUID, event realtime.Event, payload interface{}) error {
	n.events = append(n.events, publishedEvent{target: targetID, event: event, payload: payload})
	return nil
}

type fakeAuthorizer struct{}

func (fakeAuthorizer) AuthorizeChannel(socketID, channelName string) ([]byte, error) {
	return []byte(`{"auth":"signed"}`), nil
}

func newTestMessageService(store *fakeStore, notifier *fakeNotifier) MessageService {
	return NewMessageService(store, store, store, notifier, fakeAuthorizer{})
}

func TestSendMessageFirstContact(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newTestMessageService(store, notifier)

	guest := store.addUser(false)
	agent := store.addUser(true)

	msg, conv, err := svc.SendMessage(guest, agent.ID, "hello, is the loft free this weekend?")
	require.Nil(t, err)
	require.NotNil(t, msg)
	require.NotNil(t, conv)

	assert.Equal(t, guest.ID, conv.UserID)
	assert.Equal(t, agent.ID, conv.AgentID)
	assert.Equal(t, 1, conv.AgentUnreadCount)
	assert.Equal(t, 0, conv.UserUnreadCount)
	require.NotNil(t, conv.LastMessageID)
	assert.Equal(t, msg.ID, *conv.LastMessageID)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, agent.ID, notifier.events[0].target)
	assert.Equal(t, realtime.EventNewMessage, notifier.events[0].event)
}

func TestSendMessageUnreadArithmetic(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newTestMessageService(store, notifier)

	guest := store.addUser(false)
	agent := store.addUser(true)

	for i := 0; i < 3; i++ {
		_, _, err := svc.SendMessage(guest, agent.ID, "ping")
		require.Nil(t, err)
	}
	_, conv, err := svc.SendMessage(agent, guest.ID, "pong")
	require.Nil(t, err)

	assert.Equal(t, 3, conv.AgentUnreadCount)
	assert.Equal(t, 1, conv.UserUnreadCount)
	assert.Len(t, store.conversations, 1)
}

func TestSendMessageValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestMessageService(store, &fakeNotifier{})

	guest := store.addUser(false)
	agent := store.addUser(true)
	otherGuest := store.addUser(false)

	_, _, err := svc.SendMessage(guest, agent.ID, "")
	require.NotNil(t, err)
	assert.Equal(t, 400, err.Status)

	_, _, err = svc.SendMessage(guest, guest.ID, "note to self")
	require.NotNil(t, err)
	assert.Equal(t, 400, err.Status)

	_, _, err = svc.SendMessage(guest, uuid.New(), "hello?")
	assert.Equal(t, apiError.ErrReceiverNotFound, err)

	_, _, err = svc.SendMessage(guest, otherGuest.ID, "hey")
	assert.Equal(t, apiError.ErrInvalidConversationPair, err)
}

func TestSendMessageBothAgentsReusesExistingSplit(t *testing.T) {
	store := newFakeStore()
	svc := newTestMessageService(store, &fakeNotifier{})

	a := store.addUser(true)
	b := store.addUser(true)

	// b opened the conversation first, occupying the user slot.
	existing, cerr := store.CreateConversation(b.ID, a.ID)
	require.NoError(t, cerr)

	_, conv, err := svc.SendMessage(a, b.ID, "hi")
	require.Nil(t, err)
	assert.Equal(t, existing.ID, conv.ID)
	assert.Equal(t, b.ID, conv.UserID)
	assert.Equal(t, a.ID, conv.AgentID)
	assert.Len(t, store.conversations, 1)
}

func TestGetConversationCreatesOnFirstOpen(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newTestMessageService(store, notifier)

	guest := store.addUser(false)
	agent := store.addUser(true)

	conv, messages, err := svc.GetConversation(guest, agent.ID)
	require.Nil(t, err)
	require.NotNil(t, conv)
	assert.Empty(t, messages)
	assert.Equal(t, guest.ID, conv.UserID)
	assert.Equal(t, agent.ID, conv.AgentID)
}

func TestGetConversationUnknownCounterpart(t *testing.T) {
	store := newFakeStore()
	svc := newTestMessageService(store, &fakeNotifier{})

	guest := store.addUser(false)
	_, _, err := svc.GetConversation(guest, uuid.New())
	require.NotNil(t, err)
	assert.Equal(t, 404, err.Status)
}

func TestGetConversationRejectsSelf(t *testing.T) {
	store := newFakeStore()
	svc := newTestMessageService(store, &fakeNotifier{})

	agent := store.addUser(true)
	_, _, err := svc.GetConversation(agent, agent.ID)
	require.NotNil(t, err)
	assert.Equal(t, 400, err.Status)
	assert.Empty(t, store.conversations, "no conversation row should be created for a self open")
}

func TestGetConversationMarksCallerSideRead(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newTestMessageService(store, notifier)

	guest := store.addUser(false)
	agent := store.addUser(true)

	_, _, serr := svc.SendMessage(agent, guest.ID, "your booking is confirmed")
	require.Nil(t, serr)
	_, _, serr = svc.SendMessage(agent, guest.ID, "check-in is from 2pm")
	require.Nil(t, serr)

	conv, messages, err := svc.GetConversation(guest, agent.ID)
	require.Nil(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, 0, conv.UserUnreadCount)
	for _, m := range store.messages {
		assert.True(t, m.Read)
	}

	last := notifier.events[len(notifier.events)-1]
	assert.Equal(t, agent.ID, last.target)
	assert.Equal(t, realtime.EventMessageRead, last.event)
}

func TestGetConversationOrdering(t *testing.T) {
	store := newFakeStore()
	svc := newTestMessageService(store, &fakeNotifier{})

	guest := store.addUser(false)
	agent := store.addUser(true)
	otherGuest := store.addUser(false)

	_, _, err := svc.SendMessage(guest, agent.ID, "first")
	require.Nil(t, err)
	// Unrelated pair interleaved in the log.
	_, _, err = svc.SendMessage(otherGuest, agent.ID, "noise")
	require.Nil(t, err)
	_, _, err = svc.SendMessage(agent, guest.ID, "second")
	require.Nil(t, err)
	_, _, err = svc.SendMessage(guest, agent.ID, "third")
	require.Nil(t, err)

	_, messages, gerr := svc.GetConversation(guest, agent.ID)
	require.Nil(t, gerr)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
	assert.Equal(t, "third", messages[2].Content)
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].CreatedAt.Before(messages[i-1].CreatedAt))
	}
}

func TestMarkConversationRead(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newTestMessageService(store, notifier)

	guest := store.addUser(false)
	agent := store.addUser(true)
	stranger := store.addUser(false)

	_, conv, serr := svc.SendMessage(agent, guest.ID, "hello")
	require.Nil(t, serr)
	require.Equal(t, 1, conv.UserUnreadCount)

	err := svc.MarkConversationRead(guest, conv.ID)
	require.Nil(t, err)
	assert.Equal(t, 0, store.conversations[conv.ID].UserUnreadCount)

	// Idempotent: a second call succeeds and leaves counters at zero.
	err = svc.MarkConversationRead(guest, conv.ID)
	require.Nil(t, err)
	assert.Equal(t, 0, store.conversations[conv.ID].UserUnreadCount)

	err = svc.MarkConversationRead(stranger, conv.ID)
	require.NotNil(t, err)
	assert.Equal(t, 403, err.Status)

	err = svc.MarkConversationRead(guest, uuid.New())
	require.NotNil(t, err)
	assert.Equal(t, 404, err.Status)
}

func TestAuthorizeChannelOwnership(t *testing.T) {
	store := newFakeStore()
	svc := newTestMessageService(store, &fakeNotifier{})

	caller := store.addUser(false)
	other := store.addUser(true)

	grant, err := svc.AuthorizeChannel(caller, "1234.5678", realtime.ChannelFor(caller.ID))
	require.Nil(t, err)
	assert.JSONEq(t, `{"auth":"signed"}`, string(grant))

	_, err = svc.AuthorizeChannel(caller, "1234.5678", realtime.ChannelFor(other.ID))
	assert.Equal(t, apiError.ErrForbiddenChannel, err)

	_, err = svc.AuthorizeChannel(caller, "1234.5678", "presence-global")
	assert.Equal(t, apiError.ErrForbiddenChannel, err)
}

func TestSendTypingPublishes(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newTestMessageService(store, notifier)

	caller := store.addUser(false)
	receiver := store.addUser(true)

	err := svc.SendTyping(caller, receiver.ID, true)
	require.Nil(t, err)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, receiver.ID, notifier.events[0].target)
	assert.Equal(t, realtime.EventTyping, notifier.events[0].event)

	payload, ok := notifier.events[0].payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, caller.ID.String(), payload["user_id"])
	assert.Equal(t, true, payload["is_typing"])
}
