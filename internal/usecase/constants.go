package usecase

import "strconv"

// Pagination limits
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// BalanceCacheKey builds the cache key for an owner/type current balance.
func BalanceCacheKey(ownerID, typeID string) string {
	return "balance:" + ownerID + ":" + typeID
}

func formatEventID(id int64) string {
	return strconv.FormatInt(id, 10)
}
