package cache

import (
	"context"
	"encoding/json"
	"time"

	usermodel "github.com/gatehouse/gatehouse/internal/models/user"
	"github.com/redis/go-redis/v9"
)

const userKeyPrefix = "users:"

// UserCache keeps recently fetched profiles in redis so /api/me reads skip
// the database. Hash and salt are excluded from the User JSON form, so the
// cache never holds credentials.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *UserCache) Get(ctx context.Context, userID string) (*usermodel.User, bool) {
	val, err := c.client.Get(ctx, userKeyPrefix+userID).Result()
	if err != nil {
		return nil, false
	}

	var user usermodel.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, false
	}

	return &user, true
}

func (c *UserCache) Set(ctx context.Context, user *usermodel.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, userKeyPrefix+user.ID, data, c.ttl).Err()
}

func (c *UserCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, userKeyPrefix+userID).Err()
}
