package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/internal/domain/repository"
)

const profileSelect = `
	SELECT p.id, p.creator_id, p.company, p.location, p.website, p.bio, p.status, p.skills,
	       p.social, p.experience, p.education, p.created_at, p.updated_at,
	       u.id, u.name, u.image
	FROM profiles p
	LEFT JOIN users u ON u.id = p.creator_id`

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func scanProfile(row scanner) (*entity.Profile, error) {
	p := &entity.Profile{}
	var social, experience, education []byte
	var ownerID, ownerName, ownerImage *string
	if err := row.Scan(&p.ID, &p.CreatorID, &p.Company, &p.Location, &p.Website, &p.Bio, &p.Status, &p.Skills,
		&social, &experience, &education, &p.CreatedAt, &p.UpdatedAt,
		&ownerID, &ownerName, &ownerImage); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(social, &p.Social); err != nil {
		return nil, fmt.Errorf("decode social: %w", err)
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		return nil, fmt.Errorf("decode experience: %w", err)
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}
	if ownerID != nil {
		p.Owner = &entity.Owner{ID: *ownerID}
		if ownerName != nil {
			p.Owner.Name = *ownerName
		}
		if ownerImage != nil {
			p.Owner.Image = *ownerImage
		}
	}
	normalizeProfile(p)
	return p, nil
}

func normalizeProfile(p *entity.Profile) {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []entity.Experience{}
	}
	if p.Education == nil {
		p.Education = []entity.Education{}
	}
}

type profileDocs struct {
	social, experience, education []byte
}

func encodeProfileDocs(p *entity.Profile) (profileDocs, error) {
	normalizeProfile(p)
	var d profileDocs
	var err error
	if d.social, err = json.Marshal(p.Social); err != nil {
		return d, err
	}
	if d.experience, err = json.Marshal(p.Experience); err != nil {
		return d, err
	}
	if d.education, err = json.Marshal(p.Education); err != nil {
		return d, err
	}
	return d, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	docs, err := encodeProfileDocs(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO profiles (id, creator_id, company, location, website, bio, status, skills, social, experience, education)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`, p.ID, p.CreatorID, p.Company, p.Location, p.Website, p.Bio, p.Status, p.Skills,
		docs.social, docs.experience, docs.education)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	p, err := scanProfile(conn(ctx, r.pool).QueryRow(ctx, profileSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return p, nil
}

func (r *ProfileRepository) GetByCreator(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := scanProfile(conn(ctx, r.pool).QueryRow(ctx, profileSelect+` WHERE p.creator_id = $1`, userID))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*entity.Profile, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, profileSelect+` ORDER BY p.created_at`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	docs, err := encodeProfileDocs(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	p.UpdatedAt = time.Now()
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE profiles
		SET company = $1, location = $2, website = $3, bio = $4, status = $5, skills = $6,
		    social = $7, experience = $8, education = $9, updated_at = $10
		WHERE id = $11
	`, p.Company, p.Location, p.Website, p.Bio, p.Status, p.Skills,
		docs.social, docs.experience, docs.education, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return expectOne(tag)
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return expectOne(tag)
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
