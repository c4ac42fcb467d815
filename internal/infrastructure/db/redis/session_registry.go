package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pres-portal/auth-gateway/internal/core/ports"
)

// registerScript implements atomic check-and-insert with oldest-evict. The
// session set is a sorted set scored by registration time; when the cap is
// exceeded the lowest-scored member is popped and returned. Running it as
// a script keeps the cap intact under concurrent logins across instances.
const registerScript = `
redis.call('ZADD', KEYS[1], ARGV[1], ARGV[2])
if redis.call('ZCARD', KEYS[1]) > tonumber(ARGV[3]) then
  local popped = redis.call('ZPOPMIN', KEYS[1], 1)
  return popped[1]
end
return ''
`

// SessionRegistry is the redis-backed ports.SessionRegistry for
// multi-instance deployments. Key format: sessions:<principal>.
type SessionRegistry struct {
	client *redis.Client
	max    int
	script *redis.Script
}

var _ ports.SessionRegistry = (*SessionRegistry)(nil)

// NewSessionRegistry wraps the given client with a per-principal cap.
func NewSessionRegistry(client *redis.Client, max int) *SessionRegistry {
	return &SessionRegistry{
		client: client,
		max:    max,
		script: redis.NewScript(registerScript),
	}
}

func (r *SessionRegistry) Register(ctx context.Context, principal, sessionID string, at time.Time) (string, error) {
	res, err := r.script.Run(ctx, r.client,
		[]string{r.key(principal)},
		at.UnixNano(), sessionID, r.max,
	).Text()
	if err != nil {
		return "", fmt.Errorf("register session: %w", err)
	}
	return res, nil
}

func (r *SessionRegistry) Contains(ctx context.Context, principal, sessionID string) (bool, error) {
	err := r.client.ZScore(ctx, r.key(principal), sessionID).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("session lookup: %w", err)
	}
	return true, nil
}

func (r *SessionRegistry) Evict(ctx context.Context, principal, sessionID string) error {
	if err := r.client.ZRem(ctx, r.key(principal), sessionID).Err(); err != nil {
		return fmt.Errorf("evict session: %w", err)
	}
	return nil
}

func (r *SessionRegistry) ActiveCount(ctx context.Context, principal string) (int, error) {
	n, err := r.client.ZCard(ctx, r.key(principal)).Result()
	if err != nil {
		return 0, fmt.Errorf("session count: %w", err)
	}
	return int(n), nil
}

func (r *SessionRegistry) key(principal string) string {
	return fmt.Sprintf("sessions:%s", principal)
}
