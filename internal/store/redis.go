package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/resumi/job-discovery/internal/job"
	"github.com/resumi/job-discovery/internal/profile"
)

const (
	jobKeyPrefix     = "job:"
	sessionKeyPrefix = "session:"
)

// RedisStore implements both JobCache and SessionStore on a shared redis
// client. Jobs live under job:<id> with JobTTL, sessions under
// session:<uuid> with SessionTTL.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

// NewRedisClient dials redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis at %s: %w", addr, err)
	}
	return client, nil
}

func (s *RedisStore) Put(ctx context.Context, jobs []job.Job) error {
	pipe := s.client.Pipeline()
	for _, j := range jobs {
		data, err := json.Marshal(j)
		if err != nil {
			return fmt.Errorf("encoding job %s: %w", j.ID, err)
		}
		pipe.Set(ctx, jobKeyPrefix+j.ID, data, JobTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing %d jobs to redis: %w", len(jobs), err)
	}
	return nil
}

func (s *RedisStore) Jobs(ctx context.Context) ([]job.Job, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, jobKeyPrefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning job keys: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading %d jobs: %w", len(keys), err)
	}
	jobs := make([]job.Job, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// The key expired between SCAN and MGET.
			continue
		}
		var j job.Job
		if err := json.Unmarshal([]byte(raw), &j); err != nil {
			s.logger.Warn("dropping undecodable cached job", zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (s *RedisStore) Create(ctx context.Context, p *profile.Profile) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		Profile:   p,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+sess.ID, data, SessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("storing session %s: %w", sess.ID, err)
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", id, err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	// Activity slides the expiry window forward.
	if err := s.client.Expire(ctx, sessionKeyPrefix+id, SessionTTL).Err(); err != nil {
		s.logger.Warn("refreshing session ttl", zap.String("session", id), zap.Error(err))
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}
