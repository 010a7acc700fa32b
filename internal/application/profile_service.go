package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/placebook/internal/domain/entity"
	repo "github.com/oksasatya/placebook/internal/domain/repository"
	"github.com/oksasatya/placebook/pkg/apperror"
)

const (
	msgNoProfileForUser     = "There is no profile for this user"
	msgProfileNotFound      = "Could not find profile for this id."
	msgProfileExists        = "Profile already exists for this user."
	msgFindProfilesFailed   = "Searching profiles failed, please try again later."
	msgFindProfileFailed    = "Something went wrong, could not find profile."
	msgCreateProfileFailed  = "Creating profile failed, please try again."
	msgUpdateProfileFailed  = "Something went wrong, could not update profile."
	msgDeleteProfileFailed  = "Something went wrong, could not delete profile."
	msgUpdateExperienceFail = "Something went wrong, could not update experience."
	msgDeleteExperienceFail = "Something went wrong, could not delete profile experience."
	msgUpdateEducationFail  = "Something went wrong, could not update education."
	msgDeleteEducationFail  = "Something went wrong, could not delete profile education."
	msgExperienceNotFound   = "Could not find experience for this id."
	msgEducationNotFound    = "Could not find education for this id."
	msgEditProfileDenied    = "You are not allowed to edit this profile."
	msgDeleteProfileDenied  = "You are not allowed to delete this profile."
)

// ProfileService manages profiles and their experience and education lists.
type ProfileService struct {
	Profiles repo.ProfileRepository
	Users    repo.UserRepository
	Tx       repo.Transactor
	Logger   *logrus.Logger
}

func NewProfileService(profiles repo.ProfileRepository, users repo.UserRepository, tx repo.Transactor, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Profiles: profiles, Users: users, Tx: tx, Logger: logger}
}

// ProfileInput replaces every editable profile field.
type ProfileInput struct {
	Company  string
	Location string
	Website  string
	Bio      string
	Status   string
	Skills   []string
	Social   entity.Social
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func (in ProfileInput) apply(p *entity.Profile) {
	p.Company = in.Company
	p.Location = in.Location
	p.Website = in.Website
	p.Bio = in.Bio
	p.Status = in.Status
	p.Skills = in.Skills
	if p.Skills == nil {
		p.Skills = []string{}
	}
	p.Social = in.Social
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]*entity.Profile, error) {
	profiles, err := s.Profiles.List(ctx)
	if err != nil {
		return nil, apperror.Storage(msgFindProfilesFailed, err)
	}
	return profiles, nil
}

func (s *ProfileService) byCreator(ctx context.Context, userID, notFound string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByCreator(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(notFound)
		}
		return nil, apperror.Storage(msgFindProfileFailed, err)
	}
	return p, nil
}

func (s *ProfileService) byID(ctx context.Context, id string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(msgProfileNotFound)
		}
		return nil, apperror.Storage(msgFindProfileFailed, err)
	}
	return p, nil
}

// ProfileByUser returns the profile of any user.
func (s *ProfileService) ProfileByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	return s.byCreator(ctx, userID, msgNoProfileForUser)
}

// MyProfile returns the caller's profile.
func (s *ProfileService) MyProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	return s.byCreator(ctx, userID, msgNoProfileForUser)
}

// CreateProfile stores the profile and links it from the user in one transaction.
func (s *ProfileService) CreateProfile(ctx context.Context, userID string, in ProfileInput) (*entity.Profile, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, apperror.Storage(msgCreateProfileFailed, err)
	}
	if _, err := s.Profiles.GetByCreator(ctx, user.ID); err == nil {
		return nil, apperror.Validation(msgProfileExists)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Storage(msgCreateProfileFailed, err)
	}

	p := &entity.Profile{
		ID:         uuid.NewString(),
		CreatorID:  user.ID,
		Experience: []entity.Experience{},
		Education:  []entity.Education{},
	}
	in.apply(p)
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Profiles.Create(ctx, p); err != nil {
			return err
		}
		return s.Users.SetProfile(ctx, user.ID, &p.ID)
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Validation(msgProfileExists)
		}
		return nil, apperror.Storage(msgCreateProfileFailed, err)
	}
	p.Owner = &entity.Owner{ID: user.ID, Name: user.Name, Image: user.Image}
	return p, nil
}

// UpdateProfile replaces the editable fields. Only the creator may update.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID, profileID string, in ProfileInput) (*entity.Profile, error) {
	p, err := s.byID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(userID) {
		return nil, apperror.Authorization(msgEditProfileDenied)
	}
	in.apply(p)
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, apperror.Storage(msgUpdateProfileFailed, err)
	}
	return p, nil
}

// DeleteProfile removes the profile together with the user who owns it.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID, profileID string) error {
	p, err := s.byID(ctx, profileID)
	if err != nil {
		return err
	}
	if !p.OwnedBy(userID) {
		return apperror.Authorization(msgDeleteProfileDenied)
	}
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Profiles.Delete(ctx, p.ID); err != nil {
			return err
		}
		// TODO: deleting the account here also orphans the user's places and posts; decide whether profile deletion should only unlink User.profile.
		return s.Users.Delete(ctx, p.CreatorID)
	})
	if err != nil {
		return apperror.Storage(msgDeleteProfileFailed, err)
	}
	return nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*entity.Profile, error) {
	p, err := s.byCreator(ctx, userID, msgProfileNotFound)
	if err != nil {
		return nil, err
	}
	p.PrependExperience(entity.Experience{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	})
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, apperror.Storage(msgUpdateExperienceFail, err)
	}
	return p, nil
}

// RemoveExperience drops the matching entry and every entry after it.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*entity.Profile, error) {
	p, err := s.byCreator(ctx, userID, msgProfileNotFound)
	if err != nil {
		return nil, err
	}
	if !p.TruncateExperienceAt(expID) {
		return nil, apperror.NotFound(msgExperienceNotFound)
	}
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, apperror.Storage(msgDeleteExperienceFail, err)
	}
	return p, nil
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, in EducationInput) (*entity.Profile, error) {
	p, err := s.byCreator(ctx, userID, msgProfileNotFound)
	if err != nil {
		return nil, err
	}
	p.PrependEducation(entity.Education{
		ID:           uuid.NewString(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	})
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, apperror.Storage(msgUpdateEducationFail, err)
	}
	return p, nil
}

// RemoveEducation drops the matching entry and every entry after it.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*entity.Profile, error) {
	p, err := s.byCreator(ctx, userID, msgProfileNotFound)
	if err != nil {
		return nil, err
	}
	if !p.TruncateEducationAt(eduID) {
		return nil, apperror.NotFound(msgEducationNotFound)
	}
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, apperror.Storage(msgDeleteEducationFail, err)
	}
	return p, nil
}
