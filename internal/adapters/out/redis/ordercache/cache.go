package ordercache

import (
	"context"
	"errors"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
	"dinein/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

const (
	orderKeyPrefix  = "order:"
	deviceKeyPrefix = "device_active:"
	dirtySetKey     = "order_dirty"

	// DefaultTTL covers a full service day with margin. Entries touched by
	// an edit get their expiry pushed out again.
	DefaultTTL = 24 * time.Hour
)

// RedisOrderCache implements ports.OrderCache on a Redis client.
// The dirty set intentionally carries no TTL: a dirty mark must survive
// until the sync job drains it.
type RedisOrderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisOrderCache creates a cache around the given client. A non-positive
// ttl falls back to DefaultTTL.
func NewRedisOrderCache(client *redis.Client, ttl time.Duration) *RedisOrderCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisOrderCache{
		client: client,
		ttl:    ttl,
	}
}

// Put stores an order snapshot under its id, refreshing the expiry.
func (c *RedisOrderCache) Put(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	raw, err := marshalOrder(aggregate)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, orderKey(aggregate.ID()), raw, c.ttl).Err()
}

// Get retrieves an order snapshot by id.
func (c *RedisOrderCache) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	raw, err := c.client.Get(ctx, orderKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return nil, err
	}

	return unmarshalOrder(raw)
}

// Remove drops an order snapshot. Removing a missing snapshot is not an error.
func (c *RedisOrderCache) Remove(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return c.client.Del(ctx, orderKey(id)).Err()
}

// SetActiveOrder points a device at the order it is currently working on.
func (c *RedisOrderCache) SetActiveOrder(ctx context.Context, deviceID, orderID kernel.UUID) error {
	if err := errors.Join(deviceID.Validate(), orderID.Validate()); err != nil {
		return err
	}

	return c.client.Set(ctx, deviceKey(deviceID), orderID.String(), c.ttl).Err()
}

// ActiveOrder returns the order id a device currently points at.
func (c *RedisOrderCache) ActiveOrder(ctx context.Context, deviceID kernel.UUID) (kernel.UUID, error) {
	if err := deviceID.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	value, err := c.client.Get(ctx, deviceKey(deviceID)).Result()
	if errors.Is(err, redis.Nil) {
		return kernel.UUID{}, errs.NewObjectNotFoundError("active order", deviceID.String())
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromString(value)
}

// ClearActiveOrder drops a device's active-order pointer.
func (c *RedisOrderCache) ClearActiveOrder(ctx context.Context, deviceID kernel.UUID) error {
	if err := deviceID.Validate(); err != nil {
		return err
	}

	return c.client.Del(ctx, deviceKey(deviceID)).Err()
}

// MarkDirty records that an order's durable copy is behind its cached copy.
func (c *RedisOrderCache) MarkDirty(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return c.client.SAdd(ctx, dirtySetKey, orderID.String()).Err()
}

// DirtyOrderIDs returns every order currently marked dirty.
func (c *RedisOrderCache) DirtyOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	values, err := c.client.SMembers(ctx, dirtySetKey).Result()
	if err != nil {
		return nil, err
	}

	return kernel.UUIDsFromStrings(values)
}

// ClearDirty removes an order from the dirty set.
func (c *RedisOrderCache) ClearDirty(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return c.client.SRem(ctx, dirtySetKey, orderID.String()).Err()
}

func orderKey(id kernel.UUID) string {
	return orderKeyPrefix + id.String()
}

func deviceKey(id kernel.UUID) string {
	return deviceKeyPrefix + id.String()
}
