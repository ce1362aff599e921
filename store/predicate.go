package store

import "github.com/sanshu/iconcache/types"

// Predicate selects entries for Clear. expired is the store's own verdict
// for ent at the time of the call.
type Predicate func(ent *types.CacheEntry, expired bool) bool

// All matches every entry.
func All(*types.CacheEntry, bool) bool { return true }

// Expired matches stale entries only.
func Expired(_ *types.CacheEntry, expired bool) bool { return expired }
