package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the cache key holding a serialized session by its ID (JWT jti).
func (r *CacheKeyStruct) SessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// UserSessionsKey returns the set of live session IDs for a user.
func (r *CacheKeyStruct) UserSessionsKey(userID int) string {
	return fmt.Sprintf("user:%d:sessions", userID)
}

// PaymentLockKey guards a payment order against concurrent confirmation.
func (r *CacheKeyStruct) PaymentLockKey(orderID string) string {
	return fmt.Sprintf("payment:%s:lock", orderID)
}

var CacheKey = NewCacheKeyStruct()

// Channel names for Redis Pub/Sub.
var Channel = struct {
	RefreshEvents string
}{
	RefreshEvents: "refresh:events",
}
