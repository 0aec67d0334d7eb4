package counter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/ShopLedger/internal/pkg/cache"
)

const (
	upgradePromptsKey = "subscription:counters:upgrade_prompts"
	gateDenialsKey    = "subscription:counters:gate_denials"
)

// Counts holds per-feature counters.
type Counts struct {
	UpgradePrompts map[string]int64 `json:"upgradePrompts"`
	GateDenials    map[string]int64 `json:"gateDenials"`
}

// AddUpgradePrompt counts a click on a gated feature that raised an upgrade prompt.
func AddUpgradePrompt(ctx context.Context, feature string) error {
	return cache.GetClient().HIncrBy(ctx, upgradePromptsKey, feature, 1).Err()
}

// AddGateDenial counts a request refused by the feature gate.
func AddGateDenial(ctx context.Context, feature string) error {
	return cache.GetClient().HIncrBy(ctx, gateDenialsKey, feature, 1).Err()
}

// Read returns the current counters without resetting them.
func Read(ctx context.Context) (*Counts, error) {
	prompts, err := readHash(ctx, upgradePromptsKey)
	if err != nil {
		return nil, err
	}
	denials, err := readHash(ctx, gateDenialsKey)
	if err != nil {
		return nil, err
	}
	return &Counts{UpgradePrompts: prompts, GateDenials: denials}, nil
}

// Drain returns the current counters and resets them. Increments that arrive
// while draining are kept for the next call.
func Drain(ctx context.Context) (*Counts, error) {
	prompts, err := drainHash(ctx, upgradePromptsKey)
	if err != nil {
		return nil, err
	}
	denials, err := drainHash(ctx, gateDenialsKey)
	if err != nil {
		return nil, err
	}
	return &Counts{UpgradePrompts: prompts, GateDenials: denials}, nil
}

func readHash(ctx context.Context, key string) (map[string]int64, error) {
	data, err := cache.GetClient().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return parseCounts(data), nil
}

// drainHash moves the hash to a temporary key with RENAME so that the read
// and the reset happen atomically.
func drainHash(ctx context.Context, key string) (map[string]int64, error) {
	rdb := cache.GetClient()

	tmpKey := fmt.Sprintf("%s:tmp:%d", key, time.Now().UnixNano())
	if err := rdb.Rename(ctx, key, tmpKey).Err(); err != nil {
		if errors.Is(err, redis.Nil) || strings.Contains(strings.ToLower(err.Error()), "no such key") {
			return map[string]int64{}, nil
		}
		return nil, err
	}
	defer rdb.Del(ctx, tmpKey)

	data, err := rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return nil, err
	}
	return parseCounts(data), nil
}

func parseCounts(data map[string]string) map[string]int64 {
	out := make(map[string]int64, len(data))
	for k, v := range data {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n == 0 {
			continue
		}
		out[k] = n
	}
	return out
}
