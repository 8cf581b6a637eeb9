package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/puntotecno/terminal/pkg/redisstore"
)

// Store persists the session across terminal restarts. Load returns
// (nil, nil) when no session exists.
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Clear(ctx context.Context) error
}

// FileStore keeps the session in a JSON file, the single-terminal default.
type FileStore struct {
	path string
}

// NewFileStore builds a file-backed store at the given path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("session file path required")
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Load(ctx context.Context) (*Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decoding session file: %w", err)
	}
	return &sess, nil
}

// Save writes the whole session atomically: tokens and profile land
// together or not at all.
func (f *FileStore) Save(ctx context.Context, sess *Session) error {
	if sess == nil {
		return fmt.Errorf("session required")
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// RedisStore shares one session across the shop's terminals.
type RedisStore struct {
	client     *redisstore.Client
	terminalID string
}

// NewRedisStore builds a redis-backed store keyed by terminal group.
func NewRedisStore(client *redisstore.Client, terminalID string) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if terminalID == "" {
		terminalID = "default"
	}
	return &RedisStore{client: client, terminalID: terminalID}, nil
}

func (r *RedisStore) Load(ctx context.Context) (*Session, error) {
	raw, err := r.client.Get(ctx, r.client.SessionKey(r.terminalID))
	if err != nil {
		if errors.Is(err, redisstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session from redis: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decoding stored session: %w", err)
	}
	return &sess, nil
}

func (r *RedisStore) Save(ctx context.Context, sess *Session) error {
	if sess == nil {
		return fmt.Errorf("session required")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return r.client.Set(ctx, r.client.SessionKey(r.terminalID), string(data), 0)
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.client.SessionKey(r.terminalID))
}
