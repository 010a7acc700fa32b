package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/internal/domain/repository"
)

const userColumns = `id, name, email, password_hash, image, place_ids, profile_id, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row scanner) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Image, &u.Places, &u.ProfileID,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if u.Places == nil {
		u.Places = []string{}
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.Places == nil {
		u.Places = []string{}
	}
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, image, place_ids, profile_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, u.ID, u.Name, u.Email, u.Password, u.Image, u.Places, u.ProfileID)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := conn(ctx, r.pool).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := conn(ctx, r.pool).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) AddPlace(ctx context.Context, userID, placeID string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE users SET place_ids = array_append(place_ids, $2), updated_at = $3
		WHERE id = $1
	`, userID, placeID, time.Now())
	if err != nil {
		return fmt.Errorf("append user place: %w", err)
	}
	return expectOne(tag)
}

func (r *UserRepository) RemovePlace(ctx context.Context, userID, placeID string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE users SET place_ids = array_remove(place_ids, $2), updated_at = $3
		WHERE id = $1
	`, userID, placeID, time.Now())
	if err != nil {
		return fmt.Errorf("remove user place: %w", err)
	}
	return expectOne(tag)
}

func (r *UserRepository) SetProfile(ctx context.Context, userID string, profileID *string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE users SET profile_id = $2, updated_at = $3
		WHERE id = $1
	`, userID, profileID, time.Now())
	if err != nil {
		return fmt.Errorf("set user profile: %w", err)
	}
	return expectOne(tag)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectOne(tag)
}

var _ repository.UserRepository = (*UserRepository)(nil)
