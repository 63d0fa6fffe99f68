package etl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/app/repositories"
)

// DefaultCheckpointName identifies the student table migration
const DefaultCheckpointName = "legacy-students"

// CheckpointStore persists the offset a resumed run starts from
type CheckpointStore interface {
	// Load returns nil without error when no checkpoint is stored.
	Load(ctx context.Context) (*models.Checkpoint, error)
	Save(ctx context.Context, cp *models.Checkpoint) error
	Clear(ctx context.Context) error
}

// CheckpointRepository is the table access PostgresCheckpointStore needs
type CheckpointRepository interface {
	Get(ctx context.Context, name string) (*models.Checkpoint, error)
	Save(ctx context.Context, cp *models.Checkpoint) error
	Delete(ctx context.Context, name string) error
}

// PostgresCheckpointStore keeps checkpoints in the migration_checkpoints table
type PostgresCheckpointStore struct {
	repo CheckpointRepository
	name string
}

// NewPostgresCheckpointStore creates a PostgresCheckpointStore
func NewPostgresCheckpointStore(repo CheckpointRepository, name string) *PostgresCheckpointStore {
	return &PostgresCheckpointStore{repo: repo, name: name}
}

func (s *PostgresCheckpointStore) Load(ctx context.Context) (*models.Checkpoint, error) {
	cp, err := s.repo.Get(ctx, s.name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return cp, err
}

func (s *PostgresCheckpointStore) Save(ctx context.Context, cp *models.Checkpoint) error {
	cp.Name = s.name
	return s.repo.Save(ctx, cp)
}

func (s *PostgresCheckpointStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, s.name)
}

// RedisCheckpointStore keeps the checkpoint as a JSON value under one key
type RedisCheckpointStore struct {
	client redis.Cmdable
	key    string
	name   string
}

// NewRedisCheckpointStore creates a RedisCheckpointStore storing under
// "<prefix>:checkpoint:<name>"
func NewRedisCheckpointStore(client redis.Cmdable, prefix, name string) *RedisCheckpointStore {
	return &RedisCheckpointStore{
		client: client,
		key:    fmt.Sprintf("%s:checkpoint:%s", prefix, name),
		name:   name,
	}
}

func (s *RedisCheckpointStore) Load(ctx context.Context) (*models.Checkpoint, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading checkpoint %s: %w", s.key, err)
	}

	var cp models.Checkpoint
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, fmt.Errorf("decoding checkpoint %s: %w", s.key, err)
	}
	return &cp, nil
}

func (s *RedisCheckpointStore) Save(ctx context.Context, cp *models.Checkpoint) error {
	cp.Name = s.name
	raw, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("writing checkpoint %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisCheckpointStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("deleting checkpoint %s: %w", s.key, err)
	}
	return nil
}

// NopCheckpointStore never stores anything; every run starts at offset zero
type NopCheckpointStore struct{}

func (NopCheckpointStore) Load(context.Context) (*models.Checkpoint, error) { return nil, nil }
func (NopCheckpointStore) Save(context.Context, *models.Checkpoint) error { return nil }
func (NopCheckpointStore) Clear(context.Context) error { return nil }
