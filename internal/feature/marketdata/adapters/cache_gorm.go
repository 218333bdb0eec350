package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
)

type cacheGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.CacheStore = (*cacheGorm)(nil)

// NewCacheRepository はGORMで永続化するキャッシュストアを生成します。
// nowがnilの場合は time.Now を使います。
func NewCacheRepository(db *gorm.DB, now func() time.Time) *cacheGorm {
	if now == nil {
		now = time.Now
	}
	return &cacheGorm{db: db, now: now}
}

// MarketCacheModel はキャッシュ1件を表すテーブル行です。キーごとに1行だけ存在します。
type MarketCacheModel struct {
	ID         uint      `gorm:"primaryKey"`
	CacheKey   string    `gorm:"size:191;not null;uniqueIndex"`
	CacheValue []byte    `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (MarketCacheModel) TableName() string {
	return "market_cache"
}

func (r *cacheGorm) Get(ctx context.Context, key string) (entity.CacheEntry, bool, error) {
	var m MarketCacheModel
	err := r.db.WithContext(ctx).Where("cache_key = ?", key).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.CacheEntry{}, false, nil
	}
	if err != nil {
		return entity.CacheEntry{}, false, err
	}
	return entity.CacheEntry{Key: m.CacheKey, Value: m.CacheValue, UpdatedAt: m.UpdatedAt}, true, nil
}

// Put はキーの値を上書きし、更新時刻を現在時刻にします。同時書き込みは後勝ちです。
func (r *cacheGorm) Put(ctx context.Context, key string, value []byte) error {
	m := MarketCacheModel{
		CacheKey:   key,
		CacheValue: value,
		UpdatedAt:  r.now().UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"cache_value", "updated_at"}),
	}).Create(&m).Error
}
