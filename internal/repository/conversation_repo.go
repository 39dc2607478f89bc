package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recipebot-backend/internal/models"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

// Create inserts the conversation row and its initial messages in one
// transaction. Message positions start at 0 and follow slice order.
func (r *ConversationRepo) Create(ctx context.Context, c *models.Conversation) error {
	c.ID = uuid.New()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO conversations (id, user_id, title)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		c.ID, c.UserID, c.Title,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return err
	}

	for i, m := range c.Messages {
		_, err := tx.Exec(ctx,
			`INSERT INTO conversation_messages (conversation_id, position, role, content)
			 VALUES ($1, $2, $3, $4)`,
			c.ID, i, m.Role, m.Content,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// AppendMessages adds messages after the current last position.
func (r *ConversationRepo) AppendMessages(ctx context.Context, id uuid.UUID, messages []models.ChatMessage) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var next int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM conversation_messages WHERE conversation_id = $1`,
		id,
	).Scan(&next)
	if err != nil {
		return err
	}

	for i, m := range messages {
		_, err := tx.Exec(ctx,
			`INSERT INTO conversation_messages (conversation_id, position, role, content)
			 VALUES ($1, $2, $3, $4)`,
			id, next+i, m.Role, m.Content,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, "UPDATE conversations SET updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID loads a conversation with its messages in position order.
func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	c := &models.Conversation{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, created_at, updated_at FROM conversations WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT role, content FROM conversation_messages
		 WHERE conversation_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, err
		}
		c.Messages = append(c.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

// ListByUser returns conversation metadata (no messages), newest first.
func (r *ConversationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, created_at, updated_at FROM conversations
		 WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

func (r *ConversationRepo) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	_, err := r.pool.Exec(ctx, "UPDATE conversations SET title = $1 WHERE id = $2", title, id)
	return err
}

func (r *ConversationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM conversations WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
