package redisstore

// KeyPrefix namespaces every dashboard record in Redis.
const KeyPrefix = "linkdeck:"

// RecordKey returns the Redis key for a persisted record.
func RecordKey(key string) string {
	return KeyPrefix + key
}
