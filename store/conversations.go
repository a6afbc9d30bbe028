package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// ConversationHistory returns the user's most recent conversations, each with
// its last few messages, newest conversation first.
func (s *Store) ConversationHistory(ctx context.Context, userID string, limit int) ([]Conversation, error) {
	var conversations []Conversation
	err := s.db.NewSelect().
		Model(&conversations).
		Relation("Messages", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("created_at DESC").Limit(5)
		}).
		Where("c.user_id = ?", userID).
		OrderExpr("c.updated_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// Conversation loads one conversation with its most recent messages, newest
// first. Ownership is checked against userID.
func (s *Store) Conversation(ctx context.Context, conversationID, userID string, messageLimit int) (*Conversation, error) {
	conversation := new(Conversation)
	err := s.db.NewSelect().
		Model(conversation).
		Relation("Messages", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("created_at DESC").Limit(messageLimit)
		}).
		Where("c.id = ?", conversationID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	if conversation.UserID != userID {
		return nil, ErrAccessDenied
	}
	return conversation, nil
}

func (s *Store) CreateConversation(ctx context.Context, conversation *Conversation) error {
	if conversation.CreatedAt.IsZero() {
		conversation.CreatedAt = time.Now().UTC()
	}
	conversation.UpdatedAt = conversation.CreatedAt
	_, err := s.db.NewInsert().Model(conversation).Exec(ctx)
	return err
}

func (s *Store) AddMessage(ctx context.Context, message *Message) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.NewInsert().Model(message).Exec(ctx)
	return err
}

// TouchConversation records which agent answered last and appends it to the
// conversation's agent history.
func (s *Store) TouchConversation(ctx context.Context, conversationID, agentType string) error {
	conversation := new(Conversation)
	err := s.db.NewSelect().
		Model(conversation).
		Where("c.id = ?", conversationID).
		Scan(ctx)
	if err != nil {
		return notFound(err)
	}

	conversation.LastAgentType = agentType
	conversation.AgentsUsed = append(conversation.AgentsUsed, agentType)
	conversation.UpdatedAt = time.Now().UTC()

	_, err = s.db.NewUpdate().
		Model(conversation).
		Column("last_agent_type", "agents_used", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}

func (s *Store) ListConversations(ctx context.Context, userID string, limit int) ([]Conversation, error) {
	var conversations []Conversation
	err := s.db.NewSelect().
		Model(&conversations).
		Where("c.user_id = ?", userID).
		OrderExpr("c.updated_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (s *Store) DeleteConversation(ctx context.Context, conversationID, userID string) error {
	res, err := s.db.NewDelete().
		Model((*Conversation)(nil)).
		Where("c.id = ?", conversationID).
		Where("c.user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	_, err = s.db.NewDelete().
		Model((*Message)(nil)).
		Where("m.conversation_id = ?", conversationID).
		Exec(ctx)
	return err
}
