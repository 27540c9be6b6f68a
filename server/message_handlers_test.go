package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiError "github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
)

type stubMessageService struct {
	sentContent    string
	sentReceiver   uuid.UUID
	markedConvID   uuid.UUID
	typingReceiver uuid.UUID
	sendErr        *apiError.Error
	authErr        *apiError.Error
}

func (s *stubMessageService) ListConversations(caller *models.User) ([]models.Conversation, *apiError.Error) {
	return []models.Conversation{}, nil
}

func (s *stubMessageService) GetConversation(caller *models.User, otherID uuid.UUID) (*models.Conversation, []models.Message, *apiError.Error) {
	conv := &models.Conversation{UserID: caller.ID, AgentID: otherID}
	conv.ID = uuid.New()
	return conv, []models.Message{}, nil
}

func (s *stubMessageService) SendMessage(caller *models.User, receiverID uuid.UUID, content string) (*models.Message, *models.Conversation, *apiError.Error) {
	if s.sendErr != nil {
		return nil, nil, s.sendErr
	}
	s.sentReceiver = receiverID
	s.sentContent = content
	msg := &models.Message{SenderID: caller.ID, ReceiverID: receiverID, Content: content}
	msg.ID = uuid.New()
	conv := &models.Conversation{UserID: caller.ID, AgentID: receiverID}
	conv.ID = uuid.New()
	return msg, conv, nil
}

func (s *stubMessageService) MarkConversationRead(caller *models.User, conversationID uuid.UUID) *apiError.Error {
	s.markedConvID = conversationID
	return nil
}

func (s *stubMessageService) SendTyping(caller *models.User, receiverID uuid.UUID, isTyping bool) *apiError.Error {
	s.typingReceiver = receiverID
	return nil
}

func (s *stubMessageService) AuthorizeChannel(caller *models.User, socketID, channelName string) ([]byte, *apiError.Error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return []byte(`{"auth":"signed"}`), nil
}

func messagingTestRouter(svc *stubMessageService, caller *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := &Server{MessageService: svc}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", caller)
		c.Next()
	})
	r.GET("/api/v1/messages/conversations", s.handleListConversations())
	r.GET("/api/v1/messages/conversation/:otherId", s.handleGetConversation())
	r.POST("/api/v1/messages", s.handleSendMessage())
	r.POST("/api/v1/messages/read", s.handleMarkConversationRead())
	r.POST("/api/v1/messages/typing", s.handleSendTyping())
	r.POST("/api/v1/pusher/auth", s.handleChannelAuth())
	return r
}

func testCaller() *models.User {
	u := &models.User{Firstname: "Ada", Lastname: "Obi"}
	u.ID = uuid.New()
	return u
}

func TestHandleSendMessage(t *testing.T) {
	svc := &stubMessageService{}
	caller := testCaller()
	r := messagingTestRouter(svc, caller)

	receiverID := uuid.New()
	body := `{"receiver_id":"` + receiverID.String() + `","content":"hello"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, receiverID, svc.sentReceiver)
	assert.Equal(t, "hello", svc.sentContent)
}

func TestHandleSendMessageRejectsBadBody(t *testing.T) {
	svc := &stubMessageService{}
	r := messagingTestRouter(svc, testCaller())

	cases := []string{
		`{}`,
		`{"receiver_id":"not-a-uuid","content":"hi"}`,
		`{"receiver_id":"` + uuid.New().String() + `"}`,
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestHandleSendMessagePropagatesServiceStatus(t *testing.T) {
	svc := &stubMessageService{sendErr: apiError.ErrReceiverNotFound}
	r := messagingTestRouter(svc, testCaller())

	body := `{"receiver_id":"` + uuid.New().String() + `","content":"hi"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetConversation(t *testing.T) {
	svc := &stubMessageService{}
	r := messagingTestRouter(svc, testCaller())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/messages/conversation/"+uuid.New().String(), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Conversation json.RawMessage `json:"conversation"`
			Messages     json.RawMessage `json:"messages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.Conversation)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/messages/conversation/not-a-uuid", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleMarkConversationRead(t *testing.T) {
	svc := &stubMessageService{}
	r := messagingTestRouter(svc, testCaller())

	convID := uuid.New()
	body := `{"conversation_id":"` + convID.String() + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages/read", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, convID, svc.markedConvID)
}

func TestHandleChannelAuthAcceptsFormAndJSON(t *testing.T) {
	svc := &stubMessageService{}
	r := messagingTestRouter(svc, testCaller())

	form := "socket_id=1234.5678&channel_name=private-user-abc"
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pusher/auth", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"auth":"signed"}`, w.Body.String())

	body := `{"socket_id":"1234.5678","channel_name":"private-user-abc"}`
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/pusher/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"auth":"signed"}`, w.Body.String())
}

func TestHandleChannelAuthForbidden(t *testing.T) {
	svc := &stubMessageService{authErr: apiError.ErrForbiddenChannel}
	r := messagingTestRouter(svc, testCaller())

	body := `{"socket_id":"1234.5678","channel_name":"private-user-abc"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pusher/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
