package sessionstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/repository"
)

const redisKeyPrefix = "portal:session:"

// ConnectRedis acepta una URL redis:// o host:port.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Redis perfiles en Redis; la clave demo expira junto con la cuenta demo.
type Redis struct {
	client *redis.Client
}

var _ repository.ProfileStores = (*Redis)(nil)

// NewRedis crea el adaptador sobre un cliente ya conectado.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Profile implementa repository.ProfileStores.
func (r *Redis) Profile(profileID string) repository.SessionStore {
	return &redisProfile{client: r.client, id: profileID}
}

func redisKey(profileID string, ns entity.Namespace) string {
	return redisKeyPrefix + profileID + ":" + string(ns)
}

type redisProfile struct {
	client *redis.Client
	id     string
}

func (p *redisProfile) Save(ctx context.Context, s entity.Session) error {
	raw, err := Encode(s)
	if err != nil {
		return err
	}
	var ttl time.Duration
	if exp, ok := s.DemoExpiresAt(); ok {
		ttl = time.Until(exp)
		if ttl <= 0 {
			ttl = time.Second
		}
	}
	if err := p.client.Set(ctx, redisKey(p.id, s.Namespace), raw, ttl).Err(); err != nil {
		return fmt.Errorf("sessionstore: redis set: %w", err)
	}
	return nil
}

func (p *redisProfile) Load(ctx context.Context, ns entity.Namespace) (entity.Session, bool) {
	raw, err := p.client.Get(ctx, redisKey(p.id, ns)).Bytes()
	if err != nil {
		return entity.Session{}, false
	}
	s, err := Decode(ns, raw)
	if err != nil {
		return entity.Session{}, false
	}
	return s, true
}

func (p *redisProfile) Clear(ctx context.Context, ns entity.Namespace) error {
	if err := p.client.Del(ctx, redisKey(p.id, ns)).Err(); err != nil {
		return fmt.Errorf("sessionstore: redis del: %w", err)
	}
	return nil
}
