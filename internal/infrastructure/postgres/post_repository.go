package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/internal/domain/repository"
)

const postColumns = `id, creator_id, text, name, image, likes, comments, created_at`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row scanner) (*entity.Post, error) {
	p := &entity.Post{}
	var likes, comments []byte
	if err := row.Scan(&p.ID, &p.CreatorID, &p.Text, &p.Name, &p.Image, &likes, &comments, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(likes, &p.Likes); err != nil {
		return nil, fmt.Errorf("decode likes: %w", err)
	}
	if err := json.Unmarshal(comments, &p.Comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	normalizePost(p)
	return p, nil
}

func normalizePost(p *entity.Post) {
	if p.Likes == nil {
		p.Likes = []entity.Like{}
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
}

func encodePostDocs(p *entity.Post) (likes, comments []byte, err error) {
	normalizePost(p)
	if likes, err = json.Marshal(p.Likes); err != nil {
		return nil, nil, err
	}
	if comments, err = json.Marshal(p.Comments); err != nil {
		return nil, nil, err
	}
	return likes, comments, nil
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	likes, comments, err := encodePostDocs(p)
	if err != nil {
		return fmt.Errorf("encode post: %w", err)
	}
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO posts (id, creator_id, text, name, image, likes, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, p.ID, p.CreatorID, p.Text, p.Name, p.Image, likes, comments)
	if err := row.Scan(&p.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	p, err := scanPost(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context) ([]*entity.Post, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update persists likes and comments; text and author snapshot are immutable.
func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	likes, comments, err := encodePostDocs(p)
	if err != nil {
		return fmt.Errorf("encode post: %w", err)
	}
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE posts SET likes = $1, comments = $2 WHERE id = $3
	`, likes, comments, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return expectOne(tag)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return expectOne(tag)
}

var _ repository.PostRepository = (*PostRepository)(nil)
