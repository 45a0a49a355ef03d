// Package orm is a thin fluent wrapper over the shared GORM connection.
//
// It exists so repositories stay terse, every query reports latency to
// Prometheus, and list endpoints share one pagination and read-through
// caching implementation.
package orm

import (
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/handcraftedhaven/haven/pkg/cache"
	"github.com/handcraftedhaven/haven/pkg/database"
	"github.com/handcraftedhaven/haven/pkg/metrics"
)

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type Query struct {
	db *gorm.DB
}

// DB starts a query chain on the shared connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// With starts a chain on an explicit connection (transactions, tests).
func With(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(cond string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(cond, args...)}
}

func (q *Query) Order(expr string) *Query {
	return &Query{db: q.db.Order(expr)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

// Get loads all matching rows into dest.
func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

// First loads the first matching row. gorm.ErrRecordNotFound when none.
func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

// Count stores the matching row count in n.
func (q *Query) Count(n *int64) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Count(n).Error
}

// Create inserts v.
func (q *Query) Create(v interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(v).Error
}

// Save upserts v by primary key.
func (q *Query) Save(v interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Save(v).Error
}

// UpdateColumn sets a single column on the matched rows.
func (q *Query) UpdateColumn(name string, value interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Update(name, value).Error
}

// Delete removes v (soft delete for models embedding gorm.Model).
func (q *Query) Delete(v interface{}) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return q.db.Delete(v).Error
}

// Paginate loads one page into dest and returns the page metadata.
// page and limit are clamped to sane bounds.
func (q *Query) Paginate(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	var total int64
	if err := q.Count(&total); err != nil {
		return Pagination{}, err
	}

	defer metrics.ObserveDBQuery("select", time.Now())
	err := q.db.Offset((page - 1) * limit).Limit(limit).Find(dest).Error
	if err != nil {
		return Pagination{}, err
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Cached loads dest from the cache under key, falling back to the database
// and populating the cache on a miss.
func (q *Query) Cached(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}
	if err := q.Get(dest); err != nil {
		return err
	}
	_ = cache.Set(key, dest, ttl)
	return nil
}

// Transaction runs fn atomically; any returned error rolls back.
func Transaction(fn func(tx *Query) error) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx})
	})
}
