package ratelimit

// Limiter decides whether a key may proceed.
type Limiter interface {
	Allow(key string) bool
}
