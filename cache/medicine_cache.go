package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/models"
)

const listKey = "medicines:all"

// MedicineCache is a cache-aside layer for the unfiltered catalog listing.
// A nil *MedicineCache is valid and does nothing, so callers never branch on
// whether caching is configured. Redis trouble is logged and treated as a
// miss; the database stays the source of truth.
type MedicineCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewMedicineCache(addr, password string) *MedicineCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &MedicineCache{rdb: client, ttl: 5 * time.Minute}
}

func (c *MedicineCache) GetList(ctx context.Context) ([]models.Medicine, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, listKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("⚠️ Redis get failed (continuing with DB): %v", err)
		}
		return nil, false
	}

	var medicines []models.Medicine
	if err := json.Unmarshal(data, &medicines); err != nil {
		log.Printf("⚠️ Bad cached catalog payload (continuing with DB): %v", err)
		return nil, false
	}
	return medicines, true
}

func (c *MedicineCache) SetList(ctx context.Context, medicines []models.Medicine) {
	if c == nil {
		return
	}

	data, err := json.Marshal(medicines)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
		log.Printf("⚠️ Failed to cache catalog: %v", err)
	}
}

// Invalidate drops the cached listing. Called after any catalog mutation
// (like toggles, stock decrements).
func (c *MedicineCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, listKey).Err(); err != nil {
		log.Printf("⚠️ Failed to invalidate catalog cache: %v", err)
	}
}
