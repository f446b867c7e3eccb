package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/script-editor/pkg/script"
	"github.com/redis/go-redis/v9"
)

// ScriptPublisher pushes script snapshots to Redis where a game runtime can
// read them. For a script published as name the keys are:
//
//	<prefix>:<name>           full JSON document
//	<prefix>:<name>:order     list of scene names in document order
//	<prefix>:<name>:scenes    hash of scene name to scene JSON
//	<prefix>:<name>:revision  UUID of the latest publish
type ScriptPublisher struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewScriptPublisher creates a publisher from a redis:// URL.
func NewScriptPublisher(redisURL, prefix string, logger *slog.Logger) (*ScriptPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	if prefix == "" {
		prefix = "script"
	}

	return &ScriptPublisher{
		client: redis.NewClient(opt),
		prefix: prefix,
		logger: logger,
	}, nil
}

func (p *ScriptPublisher) key(name string, parts ...string) string {
	k := p.prefix + ":" + name
	for _, part := range parts {
		k += ":" + part
	}
	return k
}

func (p *ScriptPublisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// WaitForConnection retries Ping until Redis answers or ctx ends.
func (p *ScriptPublisher) WaitForConnection(ctx context.Context, attempts int, delay time.Duration) error {
	for i := 0; i < attempts; i++ {
		if err := p.Ping(ctx); err != nil {
			p.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(delay):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("redis did not become available after %d attempts", attempts)
}

// Publish replaces the published copy of name with doc in a single
// transaction and returns the new revision.
func (p *ScriptPublisher) Publish(ctx context.Context, name string, doc *script.Document) (uuid.UUID, error) {
	full, err := json.Marshal(doc)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal script: %w", err)
	}

	names := doc.Names()
	order := make([]interface{}, 0, len(names))
	scenes := make([]interface{}, 0, 2*len(names))
	for _, sceneName := range names {
		scene, _ := doc.Scene(sceneName)
		data, err := json.Marshal(scene)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal scene %q: %w", sceneName, err)
		}
		order = append(order, sceneName)
		scenes = append(scenes, sceneName, string(data))
	}

	revision := uuid.New()
	_, err = p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, p.key(name), string(full), 0)
		pipe.Del(ctx, p.key(name, "order"), p.key(name, "scenes"))
		if len(order) > 0 {
			pipe.RPush(ctx, p.key(name, "order"), order...)
			pipe.HSet(ctx, p.key(name, "scenes"), scenes...)
		}
		pipe.Set(ctx, p.key(name, "revision"), revision.String(), 0)
		return nil
	})
	if err != nil {
		p.logger.Error("Failed to publish script", "name", name, "error", err)
		return uuid.Nil, fmt.Errorf("failed to publish script: %w", err)
	}

	p.logger.Info("Script published", "name", name, "scenes", len(names), "revision", revision)
	return revision, nil
}

// Fetch reads a published script back. It returns nil, nil when nothing is
// published under name.
func (p *ScriptPublisher) Fetch(ctx context.Context, name string) (*script.Document, error) {
	data, err := p.client.Get(ctx, p.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch script: %w", err)
	}

	doc, err := script.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("published script %q is invalid: %w", name, err)
	}
	return doc, nil
}

// FetchScene reads one scene of a published script.
func (p *ScriptPublisher) FetchScene(ctx context.Context, name, scene string) (*script.Scene, error) {
	data, err := p.client.HGet(ctx, p.key(name, "scenes"), scene).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch scene: %w", err)
	}

	var s script.Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("published scene %q is invalid: %w", scene, err)
	}
	return &s, nil
}

// Revision returns the revision of the latest publish, or uuid.Nil when
// nothing is published.
func (p *ScriptPublisher) Revision(ctx context.Context, name string) (uuid.UUID, error) {
	val, err := p.client.Get(ctx, p.key(name, "revision")).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("failed to read revision: %w", err)
	}
	return uuid.Parse(val)
}

func (p *ScriptPublisher) Close() error {
	if err := p.client.Close(); err != nil {
		p.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}
