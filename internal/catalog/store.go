// internal/catalog/store.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/matching"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const snapshotCachePrefix = "catalog:snapshot:"

// Store loads JobRequirement records from PostgreSQL and serves immutable
// snapshots to the matching workers. Snapshots are additionally cached in
// Redis so sibling processes can reuse a fresh load.
type Store struct {
	db     *sql.DB
	redis  *redis.Client
	cfg    config.CatalogConfig
	logger logger.Logger

	mu      sync.RWMutex
	current *Snapshot
}

func NewStore(db *sql.DB, redisClient *redis.Client, cfg config.CatalogConfig, log logger.Logger) *Store {
	return &Store{
		db:     db,
		redis:  redisClient,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "job-catalog"}),
	}
}

// Load reads the full catalog from PostgreSQL and publishes it as the
// current snapshot. In-flight consumers of the previous snapshot keep it.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, department, description, required_skills, bonus_skills, min_years, max_years
		FROM jobs
		ORDER BY id
		LIMIT $1`, s.cfg.MaxJobs)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewQueryTimeoutError("catalog_load")
		}
		return nil, errors.NewJobCatalogLoadFailedError(err)
	}
	defer rows.Close()

	var jobs []*matching.JobRequirement
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, errors.NewJobCatalogLoadFailedError(err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewJobCatalogLoadFailedError(err)
	}

	snapshot := newSnapshot(uuid.New().String(), jobs)

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	s.cacheSnapshot(ctx, snapshot)

	s.logger.Info("job catalog loaded", map[string]interface{}{
		"version": snapshot.Version,
		"jobs":    snapshot.Len(),
	})
	return snapshot, nil
}

// Snapshot returns the current snapshot, or nil before the first Load.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Job returns one job by ID from the current snapshot, falling back to a
// direct row fetch when the snapshot misses it.
func (s *Store) Job(ctx context.Context, id string) (*matching.JobRequirement, error) {
	if snapshot := s.Snapshot(); snapshot != nil {
		if job := snapshot.Get(id); job != nil {
			return job, nil
		}
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, department, description, required_skills, bonus_skills, min_years, max_years
		FROM jobs
		WHERE id = $1`, id)

	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewJobNotFoundError(id)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewQueryTimeoutError("job_by_id")
		}
		return nil, errors.NewQueryExecutionFailedError("job_by_id", err)
	}
	return job, nil
}

// CachedSnapshot fetches a snapshot by version from Redis, for processes
// that want to share a load instead of querying PostgreSQL themselves.
func (s *Store) CachedSnapshot(ctx context.Context, version string) (*Snapshot, bool) {
	if s.redis == nil {
		return nil, false
	}

	data, err := s.redis.Get(ctx, snapshotCachePrefix+version).Bytes()
	if err != nil {
		return nil, false
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Warn("corrupt cached snapshot", map[string]interface{}{
			"version": version,
			"error":   err,
		})
		return nil, false
	}
	snapshot.rebuildIndex()
	return &snapshot, true
}

func (s *Store) cacheSnapshot(ctx context.Context, snapshot *Snapshot) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}

	ttl := time.Duration(s.cfg.SnapshotTTL) * time.Second
	if err := s.redis.Set(ctx, snapshotCachePrefix+snapshot.Version, data, ttl).Err(); err != nil {
		s.logger.Warn("failed to cache snapshot", map[string]interface{}{
			"version": snapshot.Version,
			"error":   err,
		})
	}
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row scanner) (*matching.JobRequirement, error) {
	var (
		job                  matching.JobRequirement
		requiredRaw          []byte
		bonusRaw             []byte
		minYears, maxYears   sql.NullFloat64
		department, descText sql.NullString
	)

	err := row.Scan(&job.ID, &job.Title, &department, &descText, &requiredRaw, &bonusRaw, &minYears, &maxYears)
	if err != nil {
		return nil, err
	}

	job.Department = department.String
	job.Description = descText.String

	if len(requiredRaw) > 0 {
		if err := json.Unmarshal(requiredRaw, &job.Required); err != nil {
			return nil, err
		}
	}
	if len(bonusRaw) > 0 {
		if err := json.Unmarshal(bonusRaw, &job.Bonus); err != nil {
			return nil, err
		}
	}
	if minYears.Valid {
		job.MinYears = &minYears.Float64
	}
	if maxYears.Valid {
		job.MaxYears = &maxYears.Float64
	}

	return &job, nil
}
