package worker

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"recipebot-backend/internal/models"
	"recipebot-backend/internal/repository"
	"recipebot-backend/internal/services"
)

const titleQueue = "queue:title-generation"

const titlePrompt = "You are a titling assistant. Given a cooking conversation, reply with " +
	"a title of 3 to 6 words naming the dish or topic discussed. Reply with the " +
	"title only: no quotes, no punctuation at the end."

type titleJob struct {
	ConversationID uuid.UUID `json:"conversation_id"`
}

// EnqueueTitleJob pushes a title-generation job for the conversation.
func EnqueueTitleJob(ctx context.Context, queue *redis.Client, conversationID uuid.UUID) {
	data, _ := json.Marshal(titleJob{ConversationID: conversationID})
	if err := queue.RPush(ctx, titleQueue, string(data)).Err(); err != nil {
		log.Printf("Failed to enqueue title job for %s: %v", conversationID, err)
	}
}

// Pool runs background goroutines that name saved conversations: each worker
// pops a job, summarizes the conversation into a short title via the
// completer, and updates the row. A failed title is dropped, not retried; the
// conversation keeps its placeholder title.
type Pool struct {
	redis            *redis.Client
	completer        *services.Completer
	conversationRepo *repository.ConversationRepo
	workerCount      int
	stopChan         chan struct{}
}

func NewPool(redisClient *redis.Client, completer *services.Completer, conversationRepo *repository.ConversationRepo, workerCount int) *Pool {
	return &Pool{
		redis:            redisClient,
		completer:        completer,
		conversationRepo: conversationRepo,
		workerCount:      workerCount,
		stopChan:         make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d title worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Title worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, titleQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}
		if len(result) < 2 {
			continue
		}

		var job titleJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Title worker %d: failed to parse job: %v", id, err)
			continue
		}

		if err := p.process(ctx, job); err != nil {
			log.Printf("Title worker %d: job %s failed: %v", id, job.ConversationID, err)
		}
	}
}

func (p *Pool) process(ctx context.Context, job titleJob) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	conversation, err := p.conversationRepo.GetByID(ctx, job.ConversationID)
	if err != nil {
		return err
	}

	// A system-first request suppresses the recipe persona prompt, so the
	// completer answers as the titling assistant instead.
	request := []models.ChatMessage{
		{Role: models.RoleSystem, Content: titlePrompt},
		{Role: models.RoleUser, Content: transcript(conversation.Messages)},
	}

	updated, err := p.completer.Complete(ctx, request)
	if err != nil {
		return err
	}

	title := updated[len(updated)-1].Content
	if title == "" {
		return nil
	}
	if len(title) > 120 {
		title = title[:120]
	}

	return p.conversationRepo.UpdateTitle(ctx, job.ConversationID, title)
}

// transcript flattens a conversation for the titling request, skipping system
// messages and capping length so long chats stay cheap to title.
func transcript(messages []models.ChatMessage) string {
	var b strings.Builder
	for _, m := range messages {
		if m.Role == models.RoleSystem {
			continue
		}
		if b.Len() > 4000 {
			break
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}
