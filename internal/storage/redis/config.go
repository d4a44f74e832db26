package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// RoomTTL bounds how long an abandoned room key can linger.
	// Live rooms are re-saved on every mutation, refreshing the TTL.
	RoomTTL time.Duration
	// MembershipTTL bounds the playerID -> roomID index entries
	MembershipTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		RoomTTL:       24 * time.Hour,
		MembershipTTL: 24 * time.Hour,
	}
}
