package shopping

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	shoppingdb "foodplaner/internal/shopping/shopping_db"
)

// CacheStore remembers categorization decisions per household so that
// repeated generations only pay for ingredients never seen before.
type CacheStore interface {
	// Get returns all entries of a household keyed by normalization key.
	Get(ctx context.Context, householdID string) (map[string]CacheEntry, error)
	// Put persists new entries. Existing entries win; a put never
	// overwrites an earlier decision for the same key.
	Put(ctx context.Context, entries []CacheEntry) error
	// Clear drops all entries of a household and reports how many.
	Clear(ctx context.Context, householdID string) (int64, error)
}

// CachedIngredient pairs a cache hit with the aggregate it resolves.
type CachedIngredient struct {
	Entry      CacheEntry
	Ingredient AggregatedIngredient
}

// splitCached partitions aggregates into cache hits and misses. Order
// of the inputs is preserved in both partitions.
func splitCached(aggs []AggregatedIngredient, cache map[string]CacheEntry) (hits []CachedIngredient, misses []AggregatedIngredient) {
	for _, agg := range aggs {
		if entry, ok := cache[agg.Key]; ok {
			hits = append(hits, CachedIngredient{Entry: entry, Ingredient: agg})
		} else {
			misses = append(misses, agg)
		}
	}
	return hits, misses
}

// CacheRepository is the SQLite-backed CacheStore.
type CacheRepository struct {
	queries *shoppingdb.Queries
}

func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{queries: shoppingdb.New(db)}
}

func (r *CacheRepository) Get(ctx context.Context, householdID string) (map[string]CacheEntry, error) {
	rows, err := r.queries.GetCacheEntries(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient cache: %w", err)
	}

	entries := make(map[string]CacheEntry, len(rows))
	for _, row := range rows {
		entries[row.Key] = CacheEntry{
			HouseholdID: row.HouseholdID,
			Key:         row.Key,
			Category:    row.Category,
			DisplayName: row.DisplayName,
			IsBasic:     row.IsBasic != 0,
		}
	}
	return entries, nil
}

func (r *CacheRepository) Put(ctx context.Context, entries []CacheEntry) error {
	now := time.Now().UTC()
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		var isBasic int64
		if e.IsBasic {
			isBasic = 1
		}
		err := r.queries.InsertCacheEntry(ctx, shoppingdb.InsertCacheEntryParams{
			HouseholdID: e.HouseholdID,
			Key:         e.Key,
			Category:    e.Category,
			DisplayName: e.DisplayName,
			IsBasic:     isBasic,
			CreatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("failed to store cache entry %q: %w", e.Key, err)
		}
	}
	return nil
}

func (r *CacheRepository) Clear(ctx context.Context, householdID string) (int64, error) {
	n, err := r.queries.ClearCache(ctx, householdID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear ingredient cache: %w", err)
	}
	return n, nil
}
