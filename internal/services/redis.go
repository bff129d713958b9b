package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// Pub/sub channels carrying collection change events.
const (
	ChannelBookingUpdates = "bookings:updates"
	ChannelVehicleUpdates = "vehicles:updates"
	ChannelDriverUpdates  = "drivers:updates"
)

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// SetSessionRole caches the resolved role and login flag so later app
// launches can route without waiting on a user-record lookup.
func SetSessionRole(ctx context.Context, userID uint, role string) error {
	roleKey := fmt.Sprintf("userRole:%d", userID)
	if err := RedisClient.Set(ctx, roleKey, role, 7*24*time.Hour).Err(); err != nil {
		return err
	}
	loginKey := fmt.Sprintf("isLoggedIn:%d", userID)
	return RedisClient.Set(ctx, loginKey, "true", 7*24*time.Hour).Err()
}

// GetSessionRole retrieves the cached role for a user. A redis.Nil error
// means no cached session exists.
func GetSessionRole(ctx context.Context, userID uint) (string, error) {
	key := fmt.Sprintf("userRole:%d", userID)
	return RedisClient.Get(ctx, key).Result()
}

// IsLoggedIn retrieves the cached login flag for a user.
func IsLoggedIn(ctx context.Context, userID uint) (bool, error) {
	key := fmt.Sprintf("isLoggedIn:%d", userID)
	result, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return result == "true", nil
}

// ClearSession drops the cached session flags on sign-out.
func ClearSession(ctx context.Context, userID uint) error {
	roleKey := fmt.Sprintf("userRole:%d", userID)
	loginKey := fmt.Sprintf("isLoggedIn:%d", userID)
	return RedisClient.Del(ctx, roleKey, loginKey).Err()
}

// PublishBookingUpdate publishes a booking change event to Redis pub/sub
func PublishBookingUpdate(ctx context.Context, bookingID uint, status string, data map[string]interface{}) error {
	updateData := map[string]interface{}{
		"bookingId": bookingID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, ChannelBookingUpdates, jsonData).Err()
}

// PublishFleetUpdate publishes a vehicle or driver status change event
func PublishFleetUpdate(ctx context.Context, channel string, recordID uint, status string) error {
	updateData := map[string]interface{}{
		"id":        recordID,
		"status":    status,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, channel, jsonData).Err()
}
