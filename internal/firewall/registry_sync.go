package firewall

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	redisRulesKey     = "vesselos:firewall:rules"
	redisRulesChannel = "vesselos:firewall:updates"
	redisOpTimeout    = 5 * time.Second
)

type ruleSnapshot struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
}

type registrySyncState struct {
	mu       sync.RWMutex
	client   *redis.Client
	registry *Registry
	ctx      context.Context
	cancel   context.CancelFunc
}

var (
	globalRegistrySync registrySyncState
	rulesLoadGroup     singleflight.Group
)

// EnableRegistrySync connects the registry's allow/deny rule state to a Redis
// broadcast channel so peer instances converge on the same rule set. The
// in-memory registry stays authoritative per process; the broadcast is a
// convenience, not durability.
func EnableRegistrySync(ctx context.Context, client *redis.Client, registry *Registry) {
	if client == nil || registry == nil {
		log.Warn("Firewall rule synchronization disabled: missing redis client or registry")
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	syncCtx, cancel := context.WithCancel(ctx)

	globalRegistrySync.mu.Lock()
	if globalRegistrySync.client != nil {
		globalRegistrySync.mu.Unlock()
		cancel()
		return
	}

	globalRegistrySync.client = client
	globalRegistrySync.registry = registry
	globalRegistrySync.ctx = syncCtx
	globalRegistrySync.cancel = cancel
	globalRegistrySync.mu.Unlock()

	loaded, err := loadRulesFromRedis(syncCtx, client, registry)
	if err != nil {
		log.Error("Firewall sync: failed to load rules from redis", "error", err)
	}

	if !loaded {
		if err := PublishRuleUpdate(registry); err != nil {
			log.Error("Firewall sync: failed to publish initial rules", "error", err)
		}
	}

	go subscribeToRuleUpdates(syncCtx, client, registry)
}

func loadRulesFromRedis(ctx context.Context, client *redis.Client, registry *Registry) (bool, error) {
	result, err, _ := rulesLoadGroup.Do(redisRulesKey, func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
		defer cancel()

		payload, err := client.Get(opCtx, redisRulesKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return false, nil
			}
			return false, err
		}

		var snapshot ruleSnapshot
		if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
			return true, err
		}

		registry.ReplaceRules(snapshot.Allow, snapshot.Deny)
		return true, nil
	})
	if err != nil {
		loaded, _ := result.(bool)
		return loaded, err
	}

	loaded, _ := result.(bool)
	return loaded, nil
}

func subscribeToRuleUpdates(ctx context.Context, client *redis.Client, registry *Registry) {
	pubsub := client.Subscribe(ctx, redisRulesChannel)
	defer pubsub.Close()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, redis.ErrClosed) || ctx.Err() != nil {
				return
			}
			log.Error("Firewall sync: subscription error", "error", err)
			time.Sleep(time.Second)
			continue
		}

		var snapshot ruleSnapshot
		if err := json.Unmarshal([]byte(msg.Payload), &snapshot); err != nil {
			log.Error("Firewall sync: invalid payload", "error", err)
			continue
		}

		registry.ReplaceRules(snapshot.Allow, snapshot.Deny)
		log.Debug("Firewall rules applied from peer broadcast",
			"allow", len(snapshot.Allow), "deny", len(snapshot.Deny))
	}
}

// PublishRuleUpdate stores the registry's current allow/deny snapshot in
// Redis and notifies peer instances. A no-op when synchronization is not
// enabled.
func PublishRuleUpdate(registry *Registry) error {
	globalRegistrySync.mu.RLock()
	client := globalRegistrySync.client
	baseCtx := globalRegistrySync.ctx
	globalRegistrySync.mu.RUnlock()

	if client == nil {
		return nil
	}

	allow, deny := registry.Snapshot()
	payload, err := json.Marshal(ruleSnapshot{Allow: allow, Deny: deny})
	if err != nil {
		return err
	}

	ctx := baseCtx
	if ctx == nil || ctx.Err() != nil {
		ctx = context.Background()
	}

	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := client.Set(opCtx, redisRulesKey, payload, 0).Err(); err != nil {
		return err
	}

	return client.Publish(opCtx, redisRulesChannel, payload).Err()
}
