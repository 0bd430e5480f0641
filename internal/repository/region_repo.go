package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"newsact/internal/model"
)

type RegionRepository struct {
	pool *pgxpool.Pool
}

func NewRegionRepository(pool *pgxpool.Pool) *RegionRepository {
	return &RegionRepository{pool: pool}
}

func (r *RegionRepository) List(ctx context.Context) ([]model.Region, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, image, created_at FROM regions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()

	regions := []model.Region{}
	for rows.Next() {
		var region model.Region
		if err := rows.Scan(&region.ID, &region.Name, &region.Image, &region.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		region.SubZones = []model.SubZone{}
		regions = append(regions, region)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regions: %w", err)
	}

	if err := r.attachSubZones(ctx, regions); err != nil {
		return nil, err
	}

	return regions, nil
}

func (r *RegionRepository) attachSubZones(ctx context.Context, regions []model.Region) error {
	if len(regions) == 0 {
		return nil
	}

	byID := make(map[string]int, len(regions))
	for i, region := range regions {
		byID[region.ID] = i
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, region_id, name, image, created_at FROM sub_zones ORDER BY name`)
	if err != nil {
		return fmt.Errorf("list sub-zones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var z model.SubZone
		if err := rows.Scan(&z.ID, &z.RegionID, &z.Name, &z.Image, &z.CreatedAt); err != nil {
			return fmt.Errorf("scan sub-zone: %w", err)
		}
		if i, ok := byID[z.RegionID]; ok {
			regions[i].SubZones = append(regions[i].SubZones, z)
		}
	}

	return rows.Err()
}

func (r *RegionRepository) FindByID(ctx context.Context, id string) (model.Region, error) {
	var region model.Region
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, image, created_at FROM regions WHERE id = $1`, id).
		Scan(&region.ID, &region.Name, &region.Image, &region.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Region{}, model.ErrRegionNotFound
	}
	if err != nil {
		return model.Region{}, fmt.Errorf("find region by id: %w", err)
	}

	region.SubZones = []model.SubZone{}
	regions := []model.Region{region}
	if err := r.attachSubZones(ctx, regions); err != nil {
		return model.Region{}, err
	}

	return regions[0], nil
}

func (r *RegionRepository) Create(ctx context.Context, region model.Region) error {
	exists, err := r.existsByName(ctx, region.Name)
	if err != nil {
		return err
	}
	if exists {
		return model.ErrRegionExists
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO regions (id, name, image, created_at) VALUES ($1, $2, $3, $4)`,
		region.ID, region.Name, region.Image, region.CreatedAt)
	if err != nil {
		return fmt.Errorf("create region: %w", err)
	}
	return nil
}

func (r *RegionRepository) Update(ctx context.Context, region model.Region) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE regions SET name = $2, image = $3 WHERE id = $1`,
		region.ID, region.Name, region.Image)
	if err != nil {
		return fmt.Errorf("update region: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRegionNotFound
	}
	return nil
}

// Delete removes the region; sub-zones go with it via ON DELETE CASCADE.
func (r *RegionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete region: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRegionNotFound
	}
	return nil
}

func (r *RegionRepository) CreateSubZone(ctx context.Context, z model.SubZone) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sub_zones (id, region_id, name, image, created_at) VALUES ($1, $2, $3, $4, $5)`,
		z.ID, z.RegionID, z.Name, z.Image, z.CreatedAt)
	if err != nil {
		return fmt.Errorf("create sub-zone: %w", err)
	}
	return nil
}

func (r *RegionRepository) DeleteSubZone(ctx context.Context, regionID string, subZoneID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM sub_zones WHERE id = $1 AND region_id = $2`, subZoneID, regionID)
	if err != nil {
		return fmt.Errorf("delete sub-zone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSubZoneNotFound
	}
	return nil
}

func (r *RegionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM regions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count regions: %w", err)
	}
	return count, nil
}

func (r *RegionRepository) existsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM regions WHERE lower(name) = lower($1))`,
		strings.TrimSpace(name)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check region exists: %w", err)
	}
	return exists, nil
}
