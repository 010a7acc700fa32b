package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/internal/domain/repository"
)

const placeColumns = `id, title, description, address, lat, lng, image, creator_id, created_at, updated_at`

type PlaceRepository struct {
	pool *pgxpool.Pool
}

func NewPlaceRepository(pool *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{pool: pool}
}

func scanPlace(row scanner) (*entity.Place, error) {
	p := &entity.Place{}
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Address, &p.Location.Lat, &p.Location.Lng,
		&p.Image, &p.CreatorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PlaceRepository) Create(ctx context.Context, p *entity.Place) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO places (id, title, description, address, lat, lng, image, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, p.ID, p.Title, p.Description, p.Address, p.Location.Lat, p.Location.Lng, p.Image, p.CreatorID)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert place: %w", err)
	}
	return nil
}

func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	row := conn(ctx, r.pool).QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE id = $1`, id)
	p, err := scanPlace(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return p, nil
}

func (r *PlaceRepository) ListByCreator(ctx context.Context, userID string) ([]*entity.Place, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+placeColumns+` FROM places WHERE creator_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Place, 0)
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlaceRepository) Update(ctx context.Context, p *entity.Place) error {
	p.UpdatedAt = time.Now()
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE places
		SET title = $1, description = $2, address = $3, lat = $4, lng = $5, image = $6, updated_at = $7
		WHERE id = $8
	`, p.Title, p.Description, p.Address, p.Location.Lat, p.Location.Lng, p.Image, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update place: %w", err)
	}
	return expectOne(tag)
}

func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete place: %w", err)
	}
	return expectOne(tag)
}

var _ repository.PlaceRepository = (*PlaceRepository)(nil)
