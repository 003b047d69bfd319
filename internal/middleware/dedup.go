package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Deduper remembers processed Telegram update IDs so a webhook retry does not
// run the same handler twice (double purchase, double deposit).
type Deduper interface {
	Seen(ctx context.Context, updateID int64) (bool, error)
}

type redisDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

func (d *redisDeduper) Seen(ctx context.Context, updateID int64) (bool, error) {
	key := "shop:update:" + strconv.FormatInt(updateID, 10)
	fresh, err := d.client.SetNX(ctx, key, "1", d.ttl).Result()
	if err != nil {
		return false, err
	}
	return !fresh, nil
}

type memoryDeduper struct {
	mu      sync.Mutex
	entries map[int64]time.Time
	ttl     time.Duration
	sweepAt time.Time
}

func (d *memoryDeduper) Seen(_ context.Context, updateID int64) (bool, error) {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if deadline, ok := d.entries[updateID]; ok && deadline.After(now) {
		return true, nil
	}
	d.entries[updateID] = now.Add(d.ttl)

	if now.After(d.sweepAt) {
		for id, deadline := range d.entries {
			if deadline.Before(now) {
				delete(d.entries, id)
			}
		}
		d.sweepAt = now.Add(d.ttl)
	}
	return false, nil
}

// NewDeduper builds a Redis-backed deduper when an address is configured,
// falling back to in-memory when Redis is absent or unreachable.
func NewDeduper(addr, pass string, db int, ttl time.Duration) (Deduper, error) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	mem := &memoryDeduper{
		entries: make(map[int64]time.Time),
		ttl:     ttl,
		sweepAt: time.Now().Add(ttl),
	}
	if addr == "" {
		return mem, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return mem, err
	}
	return &redisDeduper{client: client, ttl: ttl}, nil
}

// UpdateDedup drops duplicate Telegram webhook updates by update_id.
func UpdateDedup(deduper Deduper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if deduper == nil {
				return next(c)
			}

			req := c.Request()
			if req.Body == nil {
				return next(c)
			}
			raw, err := io.ReadAll(req.Body)
			if err != nil {
				return next(c)
			}
			req.Body = io.NopCloser(bytes.NewReader(raw))

			var payload struct {
				UpdateID int64 `json:"update_id"`
			}
			if err := json.Unmarshal(raw, &payload); err != nil || payload.UpdateID == 0 {
				return next(c)
			}

			duplicate, err := deduper.Seen(req.Context(), payload.UpdateID)
			if err != nil {
				return next(c)
			}
			if duplicate {
				// Telegram only needs a 2xx to stop retrying.
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
