package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"catadopt-backend/internal/domains/announcement/model"
	"catadopt-backend/pkg/cache"
	"catadopt-backend/pkg/logger"
)

const (
	announcementCacheKeyFmt = "announcement:%s"
	announcementCacheTTL    = 5 * time.Minute
)

// postgresRepository - raw SQL with pgxpool, read-through cache on GetByID.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) AnnouncementRepository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const announcementColumns = `id, person_id, title, description, status, claimed_at, created_at, updated_at`

func scanAnnouncement(row pgx.Row) (*model.Announcement, error) {
	var a model.Announcement
	err := row.Scan(
		&a.ID, &a.PersonID, &a.Title, &a.Description,
		&a.Status, &a.ClaimedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new announcement record.
func (r *postgresRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	return r.create(ctx, r.pool, announcement)
}

func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, announcement *model.Announcement) error {
	return r.create(ctx, tx, announcement)
}

// queryRunner is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx.
type queryRunner interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *postgresRepository) create(ctx context.Context, q queryRunner, announcement *model.Announcement) error {
	query := `
		INSERT INTO announcements (id, person_id, title, description, status, claimed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		announcement.ID, announcement.PersonID, announcement.Title, announcement.Description,
		announcement.Status, announcement.ClaimedAt, announcement.CreatedAt, announcement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}

	return nil
}

// GetByID retrieves an announcement, serving from cache when possible.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	cacheKey := fmt.Sprintf(announcementCacheKeyFmt, id)

	var cached model.Announcement
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM announcements WHERE id = $1`, announcementColumns)

	announcement, err := scanAnnouncement(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewNotFoundError(id)
		}
		return nil, fmt.Errorf("query announcement %s: %w", id, err)
	}

	if err := r.cache.Set(ctx, cacheKey, announcement, announcementCacheTTL); err != nil {
		logger.Warn("failed to cache announcement", map[string]interface{}{
			"announcement_id": id,
			"error":           err.Error(),
		})
	}

	return announcement, nil
}

// GetByIDForUpdate loads the announcement under a FOR UPDATE row lock.
// Never served from cache: the whole point is a fresh row inside the tx.
func (r *postgresRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Announcement, error) {
	query := fmt.Sprintf(`SELECT %s FROM announcements WHERE id = $1 FOR UPDATE`, announcementColumns)

	announcement, err := scanAnnouncement(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewNotFoundError(id)
		}
		return nil, fmt.Errorf("lock announcement %s: %w", id, err)
	}

	return announcement, nil
}

// Update persists announcement mutations and drops the cache entry.
func (r *postgresRepository) Update(ctx context.Context, announcement *model.Announcement) error {
	return r.update(ctx, r.pool, announcement)
}

func (r *postgresRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, announcement *model.Announcement) error {
	return r.update(ctx, tx, announcement)
}

func (r *postgresRepository) update(ctx context.Context, q queryRunner, announcement *model.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $2, description = $3, status = $4, claimed_at = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		announcement.ID, announcement.Title, announcement.Description,
		announcement.Status, announcement.ClaimedAt, announcement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update announcement %s: %w", announcement.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(announcement.ID)
	}

	r.invalidate(ctx, announcement.ID)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, fmt.Sprintf(announcementCacheKeyFmt, id)); err != nil {
		logger.Warn("failed to invalidate announcement cache", map[string]interface{}{
			"announcement_id": id,
			"error":           err.Error(),
		})
	}
}

// List returns announcements filtered by status with pagination.
func (r *postgresRepository) List(ctx context.Context, status string, page, limit int) ([]model.Announcement, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM announcements %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count announcements: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM announcements %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, announcementColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	return r.queryList(ctx, query, args, total)
}

// ListByPerson returns all announcements owned by a person.
func (r *postgresRepository) ListByPerson(ctx context.Context, personID uuid.UUID, page, limit int) ([]model.Announcement, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM announcements WHERE person_id = $1`, personID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count announcements by person: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM announcements
		WHERE person_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, announcementColumns)

	return r.queryList(ctx, query, []interface{}{personID, limit, (page - 1) * limit}, total)
}

func (r *postgresRepository) queryList(ctx context.Context, query string, args []interface{}, total int) ([]model.Announcement, int, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	announcements := make([]model.Announcement, 0)
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan announcement: %w", err)
		}
		announcements = append(announcements, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return announcements, total, nil
}
