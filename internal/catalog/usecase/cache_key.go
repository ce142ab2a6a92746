package usecase

import (
	"sort"
	"strconv"
	"strings"
)

// resultCacheKey builds a cache key from a hashed credential and the
// normalized source filter. Filter order must not affect the key, so ids are
// sorted before joining.
func resultCacheKey(credentialHash string, sourceFilterIDs []int) string {
	if len(sourceFilterIDs) == 0 {
		return credentialHash
	}
	ids := make([]int, len(sourceFilterIDs))
	copy(ids, sourceFilterIDs)
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return credentialHash + ":" + strings.Join(parts, ",")
}
