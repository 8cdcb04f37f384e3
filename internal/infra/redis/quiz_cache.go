package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quizhub/internal/domain"
)

// QuizLoader fetches quiz content from the backing store on cache miss.
type QuizLoader interface {
	LoadQuiz(ctx context.Context, quizID int64) (*domain.Quiz, error)
}

// QuizCache keeps quiz content (questions and answer key included) in Redis
// as JSON under quiz:{id}:content, falling back to the loader on miss.
type QuizCache struct {
	client *redis.Client
	loader QuizLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuizCache(client *redis.Client, loader QuizLoader, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizCache) GetQuiz(ctx context.Context, quizID int64) (*domain.Quiz, error) {
	key := c.key(quizID)

	if quiz, ok := c.fromCache(ctx, key); ok {
		return quiz, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if quiz, ok := c.fromCache(ctx, key); ok {
			return quiz, nil
		}

		quiz, err := c.loader.LoadQuiz(ctx, quizID)
		if err != nil {
			return nil, err
		}

		if raw, err := marshalQuiz(quiz); err == nil {
			// best-effort fill; the loader result is authoritative either way
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return quiz, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Quiz), nil
}

// Invalidate drops a cached quiz, e.g. after its questions change.
func (c *QuizCache) Invalidate(ctx context.Context, quizID int64) {
	_ = c.client.Del(ctx, c.key(quizID)).Err()
}

func (c *QuizCache) fromCache(ctx context.Context, key string) (*domain.Quiz, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	quiz, err := unmarshalQuiz(raw)
	if err != nil {
		return nil, false
	}
	return quiz, true
}

func (c *QuizCache) key(quizID int64) string {
	return "quiz:" + strconv.FormatInt(quizID, 10) + ":content"
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// cachedQuiz is the wire form; the answer key must survive the round trip
// even though domain JSON tags hide nothing here.
type cachedQuiz struct {
	Quiz      *domain.Quiz       `json:"quiz"`
	Questions []*domain.Question `json:"questions"`
}

func marshalQuiz(quiz *domain.Quiz) ([]byte, error) {
	return json.Marshal(cachedQuiz{Quiz: quiz, Questions: quiz.Questions})
}

func unmarshalQuiz(raw []byte) (*domain.Quiz, error) {
	var entry cachedQuiz
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("unmarshal cached quiz: %w", err)
	}
	if entry.Quiz == nil {
		return nil, fmt.Errorf("cached quiz entry is empty")
	}
	entry.Quiz.Questions = entry.Questions
	return entry.Quiz, nil
}
