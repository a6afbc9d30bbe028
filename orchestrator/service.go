// Package orchestrator ties the chat pipeline together: sanitize the inbound
// message, load conversation state, route to a specialist, run the delegation
// cycle, and persist the exchange.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	contractx "github.com/pattarad/relaydesk/agent/contract"
	sanitizex "github.com/pattarad/relaydesk/pkg/sanitize"
	storex "github.com/pattarad/relaydesk/store"
)

const (
	contextWindow     = 10
	titleLimit        = 100
	defaultListLimit  = 20
	conversationScanN = 1000
)

var ErrInvalidMessage = fmt.Errorf("%w: invalid message content", contractx.ErrValidation)

// ConversationStore is the persistence slice the orchestrator needs.
type ConversationStore interface {
	Conversation(ctx context.Context, conversationID, userID string, messageLimit int) (*storex.Conversation, error)
	CreateConversation(ctx context.Context, conversation *storex.Conversation) error
	AddMessage(ctx context.Context, message *storex.Message) error
	TouchConversation(ctx context.Context, conversationID, agentType string) error
	ListConversations(ctx context.Context, userID string, limit int) ([]storex.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID, userID string) error
}

// ChatResult is the terminal output of one processed message.
type ChatResult struct {
	ConversationID    string    `json:"conversation_id"`
	Response          string    `json:"response"`
	RoutedTo          string    `json:"routed_to"`
	RoutingReason     string    `json:"routing_reason"`
	RoutingConfidence float64   `json:"routing_confidence"`
	Timestamp         time.Time `json:"timestamp"`
}

// Input is one inbound chat request. ConversationID is empty for a new
// conversation.
type Input struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
	UserID         string `json:"userId"`
}

type Service struct {
	router    contractx.Router
	delegator contractx.Delegator
	store     ConversationStore
}

func New(router contractx.Router, delegator contractx.Delegator, store ConversationStore) *Service {
	return &Service{
		router:    router,
		delegator: delegator,
		store:     store,
	}
}

// ProcessMessage runs the full pipeline for one inbound message. Routing and
// delegation cannot fail; errors here come from input validation and
// persistence only.
func (s *Service) ProcessMessage(ctx context.Context, input Input) (*ChatResult, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, contractx.ErrMissingUserID
	}

	sanitized := sanitizex.Message(input.Message)
	if !sanitized.IsValid {
		return nil, ErrInvalidMessage
	}

	conversation, err := s.loadOrCreate(ctx, input.ConversationID, input.UserID, sanitized.Content)
	if err != nil {
		return nil, err
	}

	// Context comes from the messages already stored, before this one.
	conversationContext := buildContext(conversation.Messages)

	if err := s.store.AddMessage(ctx, &storex.Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		Role:           storex.RoleUser,
		Content:        sanitized.Content,
	}); err != nil {
		return nil, fmt.Errorf("store user message: %w", err)
	}

	decision := s.router.Classify(ctx, sanitized.Content, conversationContext)
	out := s.delegator.Execute(ctx, decision.AgentType, sanitized.Content, input.UserID, conversationContext)

	storedAgentType := strings.ToUpper(string(out.AgentType))
	if err := s.store.AddMessage(ctx, &storex.Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		Role:           storex.RoleAssistant,
		Content:        out.Response,
		AgentType:      storedAgentType,
		ToolCalls:      marshalAudit(out.ToolCalls),
		ToolResults:    marshalAudit(out.ToolResults),
	}); err != nil {
		return nil, fmt.Errorf("store assistant message: %w", err)
	}

	if err := s.store.TouchConversation(ctx, conversation.ID, storedAgentType); err != nil {
		return nil, fmt.Errorf("update conversation: %w", err)
	}

	return &ChatResult{
		ConversationID:    conversation.ID,
		Response:          out.Response,
		RoutedTo:          string(decision.AgentType),
		RoutingReason:     decision.Reasoning,
		RoutingConfidence: decision.Confidence,
		Timestamp:         time.Now().UTC(),
	}, nil
}

func (s *Service) loadOrCreate(ctx context.Context, conversationID, userID, content string) (*storex.Conversation, error) {
	if conversationID != "" {
		conversation, err := s.store.Conversation(ctx, conversationID, userID, contextWindow)
		if err != nil {
			return nil, fmt.Errorf("load conversation: %w", err)
		}
		return conversation, nil
	}

	conversation := &storex.Conversation{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  truncate(content, titleLimit),
	}
	if err := s.store.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conversation, nil
}

// GetConversation returns one conversation with its full message history.
func (s *Service) GetConversation(ctx context.Context, conversationID, userID string) (*storex.Conversation, error) {
	return s.store.Conversation(ctx, conversationID, userID, conversationScanN)
}

// ListConversations returns the user's conversations, most recent first.
func (s *Service) ListConversations(ctx context.Context, userID string, limit int) ([]storex.Conversation, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.store.ListConversations(ctx, userID, limit)
}

func (s *Service) DeleteConversation(ctx context.Context, conversationID, userID string) error {
	return s.store.DeleteConversation(ctx, conversationID, userID)
}

// buildContext renders stored messages as "ROLE: content" lines, oldest
// first, skipping system messages. Messages arrive newest first from the
// store.
func buildContext(messages []*storex.Message) string {
	lines := make([]string, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m == nil || m.Role == storex.RoleSystem {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return strings.Join(lines, "\n")
}

func marshalAudit(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if string(data) == "null" {
		return nil
	}
	return data
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
