package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/enzogallo/discover-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Cache stores serialized search results in PostgreSQL so repeated queries
// within the TTL skip the upstream API.
type Cache struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewCache creates a Cache and migrates its table.
func NewCache(db *gorm.DB, ttl time.Duration) (*Cache, error) {
	if err := db.AutoMigrate(&models.CachedSearch{}); err != nil {
		return nil, err
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Get returns the cached results for the query, or ok=false on a miss or
// an expired entry. Queries are matched case-insensitively.
func (c *Cache) Get(ctx context.Context, query string) ([]models.MusicItem, bool, error) {
	var row models.CachedSearch
	err := c.db.WithContext(ctx).Where("query = ?", normalizeQuery(query)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if time.Since(row.FetchedAt) > c.ttl {
		return nil, false, nil
	}

	var items []models.MusicItem
	if err := json.Unmarshal(row.Results, &items); err != nil {
		// A corrupt row is treated as a miss; the next Put overwrites it.
		return nil, false, nil
	}
	return items, true, nil
}

// Put upserts the results for the query.
func (c *Cache) Put(ctx context.Context, query string, items []models.MusicItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	row := models.CachedSearch{
		Query:     normalizeQuery(query),
		Results:   payload,
		FetchedAt: time.Now(),
	}
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "query"}},
		DoUpdates: clause.AssignmentColumns([]string{"results", "fetched_at"}),
	}).Create(&row).Error
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
