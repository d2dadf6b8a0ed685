package image

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, img *Image) error
	GetByID(ctx context.Context, id string) (*Image, error)
	// List returns matching images ordered by display order, then upload time.
	List(ctx context.Context, filter Filter) ([]Image, error)
	// Update persists the metadata fields of img and its UpdatedAt.
	Update(ctx context.Context, img *Image) error
	// SetPrimary marks id as the primary image of its owner and clears the flag on the
	// owner's other images.
	SetPrimary(ctx context.Context, id string, at time.Time) (*Image, error)
	Delete(ctx context.Context, id string) error
}

type memoryRepository struct {
	mu     sync.RWMutex
	images map[string]Image
}

func NewMemoryRepository() Repository {
	return &memoryRepository{images: make(map[string]Image)}
}

func (r *memoryRepository) Create(_ context.Context, img *Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[img.ID]; ok {
		return fmt.Errorf("image %s already exists", img.ID)
	}
	r.images[img.ID] = *img
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	img, ok := r.images[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &img, nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]Image, error) {
	r.mu.RLock()
	out := make([]Image, 0, len(r.images))
	for _, img := range r.images {
		if filter.Matches(&img) {
			out = append(out, img)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, img *Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[img.ID]; !ok {
		return ErrNotFound
	}
	r.images[img.ID] = *img
	return nil
}

func (r *memoryRepository) SetPrimary(_ context.Context, id string, at time.Time) (*Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.images[id]
	if !ok {
		return nil, ErrNotFound
	}
	for key, img := range r.images {
		if img.Kind != target.Kind || img.OwnerID != target.OwnerID {
			continue
		}
		primary := key == id
		if img.IsPrimary != primary {
			img.IsPrimary = primary
			img.UpdatedAt = at
			r.images[key] = img
		}
	}
	target = r.images[id]
	target.UpdatedAt = at
	r.images[id] = target
	return &target, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[id]; !ok {
		return ErrNotFound
	}
	delete(r.images, id)
	return nil
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var imageColumns = []string{
	"id", "kind", "owner_id", "section", "alt_text", "caption", "title", "subtitle",
	"is_primary", "display_order", "is_active", "filename", "storage_path",
	"thumbnail_path", "content_type", "size", "created_at", "updated_at",
}

func scanImage(row pgx.Row) (*Image, error) {
	img := &Image{}
	err := row.Scan(
		&img.ID, &img.Kind, &img.OwnerID, &img.Section, &img.AltText, &img.Caption, &img.Title, &img.Subtitle,
		&img.IsPrimary, &img.DisplayOrder, &img.IsActive, &img.Filename, &img.StoragePath,
		&img.ThumbnailPath, &img.ContentType, &img.Size, &img.CreatedAt, &img.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (r *pgxRepository) Create(ctx context.Context, img *Image) error {
	query, args, err := psql.Insert("public.images").
		Columns(imageColumns...).
		Values(
			img.ID, img.Kind, img.OwnerID, img.Section, img.AltText, img.Caption, img.Title, img.Subtitle,
			img.IsPrimary, img.DisplayOrder, img.IsActive, img.Filename, img.StoragePath,
			img.ThumbnailPath, img.ContentType, img.Size, img.CreatedAt, img.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert image query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert image failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Image, error) {
	query, args, err := psql.Select(imageColumns...).
		From("public.images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get image query failed: %w", err)
	}

	img, err := scanImage(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get image failed: %w", err)
	}
	return img, nil
}

func listQuery(filter Filter) (string, []any, error) {
	q := psql.Select(imageColumns...).From("public.images")
	if filter.Kind != "" {
		q = q.Where(squirrel.Eq{"kind": filter.Kind})
	}
	if filter.OwnerID != "" {
		q = q.Where(squirrel.Eq{"owner_id": filter.OwnerID})
	}
	if filter.Section != "" {
		q = q.Where(squirrel.Eq{"section": filter.Section})
	}
	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	return q.OrderBy("display_order ASC", "created_at ASC", "id ASC").ToSql()
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]Image, error) {
	query, args, err := listQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build list images query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list images failed: %w", err)
	}
	defer rows.Close()

	images := make([]Image, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image failed: %w", err)
		}
		images = append(images, *img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images failed: %w", err)
	}
	return images, nil
}

func updateQuery(img *Image) (string, []any, error) {
	return psql.Update("public.images").
		Set("alt_text", img.AltText).
		Set("caption", img.Caption).
		Set("title", img.Title).
		Set("subtitle", img.Subtitle).
		Set("display_order", img.DisplayOrder).
		Set("is_active", img.IsActive).
		Set("updated_at", img.UpdatedAt).
		Where(squirrel.Eq{"id": img.ID}).
		ToSql()
}

func (r *pgxRepository) Update(ctx context.Context, img *Image) error {
	query, args, err := updateQuery(img)
	if err != nil {
		return fmt.Errorf("build update image query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update image failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// setPrimaryQuery flips every image of the owner in one statement so at most one stays primary.
func setPrimaryQuery(id string, kind Kind, ownerID string, at time.Time) (string, []any, error) {
	return psql.Update("public.images").
		Set("is_primary", squirrel.Expr("(id = ?)", id)).
		Set("updated_at", at).
		Where(squirrel.Eq{"kind": kind, "owner_id": ownerID}).
		Where(squirrel.Or{squirrel.Eq{"id": id}, squirrel.Eq{"is_primary": true}}).
		ToSql()
}

func (r *pgxRepository) SetPrimary(ctx context.Context, id string, at time.Time) (*Image, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin set primary image failed: %w", err)
	}
	defer tx.Rollback(ctx)

	lock, args, err := psql.Select(imageColumns...).
		From("public.images").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lock image query failed: %w", err)
	}

	img, err := scanImage(tx.QueryRow(ctx, lock, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock image failed: %w", err)
	}

	query, args, err := setPrimaryQuery(id, img.Kind, img.OwnerID, at)
	if err != nil {
		return nil, fmt.Errorf("build set primary image query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("set primary image failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit primary image failed: %w", err)
	}

	img.IsPrimary = true
	img.UpdatedAt = at
	return img, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete image query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete image failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
