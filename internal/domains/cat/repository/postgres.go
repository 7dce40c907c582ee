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

	"catadopt-backend/internal/domains/cat/model"
	"catadopt-backend/pkg/cache"
	"catadopt-backend/pkg/logger"
)

const (
	catCacheKeyFmt = "cat:%s"
	catCacheTTL    = 5 * time.Minute
)

// postgresRepository - raw SQL with pgxpool, read-through cache on GetByID.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) CatRepository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const catColumns = `id, person_id, name, description, status, announcement_id, thumbnail_id,
	fiv, felv, published_at, claimed_at, created_at, updated_at`

func scanCat(row pgx.Row) (*model.Cat, error) {
	var c model.Cat
	var fiv, felv string
	err := row.Scan(
		&c.ID, &c.PersonID, &c.Name, &c.Description, &c.Status,
		&c.AnnouncementID, &c.ThumbnailID,
		&fiv, &felv,
		&c.PublishedAt, &c.ClaimedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Disease = model.DiseaseStatus{
		Fiv:  model.DiseaseMarker(fiv),
		Felv: model.DiseaseMarker(felv),
	}
	return &c, nil
}

type queryRunner interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Create inserts a new cat record.
func (r *postgresRepository) Create(ctx context.Context, cat *model.Cat) error {
	query := `
		INSERT INTO cats (id, person_id, name, description, status, announcement_id, thumbnail_id,
			fiv, felv, published_at, claimed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		cat.ID, cat.PersonID, cat.Name, cat.Description, cat.Status,
		cat.AnnouncementID, cat.ThumbnailID,
		string(cat.Disease.Fiv), string(cat.Disease.Felv),
		cat.PublishedAt, cat.ClaimedAt, cat.CreatedAt, cat.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cat: %w", err)
	}

	return nil
}

// GetByID retrieves a cat, serving from cache when possible.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Cat, error) {
	cacheKey := fmt.Sprintf(catCacheKeyFmt, id)

	var cached model.Cat
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM cats WHERE id = $1 AND deleted_at IS NULL`, catColumns)

	cat, err := scanCat(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewNotFoundError(id)
		}
		return nil, fmt.Errorf("query cat %s: %w", id, err)
	}

	if err := r.cache.Set(ctx, cacheKey, cat, catCacheTTL); err != nil {
		logger.Warn("failed to cache cat", map[string]interface{}{
			"cat_id": id,
			"error":  err.Error(),
		})
	}

	return cat, nil
}

// GetByIDForUpdate loads the cat under a FOR UPDATE row lock.
func (r *postgresRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Cat, error) {
	query := fmt.Sprintf(`SELECT %s FROM cats WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, catColumns)

	cat, err := scanCat(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewNotFoundError(id)
		}
		return nil, fmt.Errorf("lock cat %s: %w", id, err)
	}

	return cat, nil
}

// ListByAnnouncement returns the current cohort of an announcement.
func (r *postgresRepository) ListByAnnouncement(ctx context.Context, announcementID uuid.UUID) ([]*model.Cat, error) {
	return r.listByAnnouncement(ctx, r.pool, announcementID)
}

// ListByAnnouncementWithTx returns the cohort inside a transaction, so
// it observes rows consistent with any announcement lock already held.
func (r *postgresRepository) ListByAnnouncementWithTx(ctx context.Context, tx pgx.Tx, announcementID uuid.UUID) ([]*model.Cat, error) {
	return r.listByAnnouncement(ctx, tx, announcementID)
}

type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *postgresRepository) listByAnnouncement(ctx context.Context, q rowQuerier, announcementID uuid.UUID) ([]*model.Cat, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM cats
		WHERE announcement_id = $1 AND deleted_at IS NULL
		ORDER BY published_at ASC
	`, catColumns)

	rows, err := q.Query(ctx, query, announcementID)
	if err != nil {
		return nil, fmt.Errorf("list cohort for announcement %s: %w", announcementID, err)
	}
	defer rows.Close()

	return collectCats(rows)
}

// ListByPerson returns every non-deleted cat owned by a person.
func (r *postgresRepository) ListByPerson(ctx context.Context, personID uuid.UUID) ([]*model.Cat, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM cats
		WHERE person_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, catColumns)

	rows, err := r.pool.Query(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("list cats by person %s: %w", personID, err)
	}
	defer rows.Close()

	return collectCats(rows)
}

func collectCats(rows pgx.Rows) ([]*model.Cat, error) {
	cats := make([]*model.Cat, 0)
	for rows.Next() {
		cat, err := scanCat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cat: %w", err)
		}
		cats = append(cats, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return cats, nil
}

// Update persists cat mutations and drops the cache entry.
func (r *postgresRepository) Update(ctx context.Context, cat *model.Cat) error {
	return r.update(ctx, r.pool, cat)
}

func (r *postgresRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, cat *model.Cat) error {
	return r.update(ctx, tx, cat)
}

func (r *postgresRepository) update(ctx context.Context, q queryRunner, cat *model.Cat) error {
	query := `
		UPDATE cats
		SET name = $2, description = $3, status = $4, announcement_id = $5, thumbnail_id = $6,
			fiv = $7, felv = $8, published_at = $9, claimed_at = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		cat.ID, cat.Name, cat.Description, cat.Status, cat.AnnouncementID, cat.ThumbnailID,
		string(cat.Disease.Fiv), string(cat.Disease.Felv),
		cat.PublishedAt, cat.ClaimedAt, cat.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cat %s: %w", cat.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(cat.ID)
	}

	r.invalidate(ctx, cat.ID)
	return nil
}

// SoftDelete hides the cat from all queries without destroying history.
func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE cats
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete cat %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewNotFoundError(id)
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, fmt.Sprintf(catCacheKeyFmt, id)); err != nil {
		logger.Warn("failed to invalidate cat cache", map[string]interface{}{
			"cat_id": id,
			"error":  err.Error(),
		})
	}
}
