package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/placebook/internal/domain/entity"
	repo "github.com/oksasatya/placebook/internal/domain/repository"
	"github.com/oksasatya/placebook/pkg/apperror"
	"github.com/oksasatya/placebook/pkg/geocode"
)

const (
	msgPlaceNotFound       = "Could not find place for the provided id."
	msgPlaceNotFoundForDel = "Could not find place for this id."
	msgPlacesNotFound      = "Could not find places for the provided user id."
	msgFindPlaceFailed     = "Something went wrong, could not find a place."
	msgFetchPlacesFailed   = "Fetching places failed, please try again later."
	msgCreatePlaceFailed   = "Creating place failed, please try again."
	msgUpdatePlaceFailed   = "Something went wrong, could not update place."
	msgDeletePlaceFailed   = "Something went wrong, could not delete place."
	msgEditPlaceDenied     = "You are not allowed to edit this place."
	msgDeletePlaceDenied   = "You are not allowed to delete this place."
	msgSearchPlacesFailed  = "Searching places failed, please try again later."
	msgUploadsDisabled     = "Image uploads are not configured."
	msgUploadFailed        = "Uploading image failed, please try again later."
)

// PlaceService manages places and keeps User.places in step with them.
type PlaceService struct {
	Places       repo.PlaceRepository
	Users        repo.UserRepository
	Tx           repo.Transactor
	Geocoder     geocode.Geocoder
	Index        PlaceIndexer // optional
	Images       ImageStore   // optional
	DefaultImage string
	Logger       *logrus.Logger
}

func NewPlaceService(places repo.PlaceRepository, users repo.UserRepository, tx repo.Transactor, geo geocode.Geocoder, index PlaceIndexer, images ImageStore, defaultImage string, logger *logrus.Logger) *PlaceService {
	return &PlaceService{
		Places:       places,
		Users:        users,
		Tx:           tx,
		Geocoder:     geo,
		Index:        index,
		Images:       images,
		DefaultImage: defaultImage,
		Logger:       logger,
	}
}

type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
}

type UpdatePlaceInput struct {
	Title       string
	Description string
}

func (s *PlaceService) find(ctx context.Context, id, notFound string) (*entity.Place, error) {
	p, err := s.Places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(notFound)
		}
		return nil, apperror.Storage(msgFindPlaceFailed, err)
	}
	return p, nil
}

func (s *PlaceService) GetPlace(ctx context.Context, id string) (*entity.Place, error) {
	return s.find(ctx, id, msgPlaceNotFound)
}

// PlacesByUser fails with 404 when the user has no places.
func (s *PlaceService) PlacesByUser(ctx context.Context, userID string) ([]*entity.Place, error) {
	places, err := s.Places.ListByCreator(ctx, userID)
	if err != nil {
		return nil, apperror.Storage(msgFetchPlacesFailed, err)
	}
	if len(places) == 0 {
		return nil, apperror.NotFound(msgPlacesNotFound)
	}
	return places, nil
}

// CreatePlace geocodes the address, then stores the place and appends it to
// the creator's place list in one transaction.
func (s *PlaceService) CreatePlace(ctx context.Context, userID string, in CreatePlaceInput) (*entity.Place, error) {
	loc, err := s.Geocoder.Coordinates(ctx, in.Address)
	if err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		return nil, apperror.Storage(msgCreatePlaceFailed, err)
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, apperror.Storage(msgCreatePlaceFailed, err)
	}

	place := &entity.Place{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Location:    loc,
		Image:       s.DefaultImage,
		CreatorID:   user.ID,
	}
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Places.Create(ctx, place); err != nil {
			return err
		}
		return s.Users.AddPlace(ctx, user.ID, place.ID)
	})
	if err != nil {
		return nil, apperror.Storage(msgCreatePlaceFailed, err)
	}
	s.index(ctx, place)
	return place, nil
}

func (s *PlaceService) UpdatePlace(ctx context.Context, userID, placeID string, in UpdatePlaceInput) (*entity.Place, error) {
	place, err := s.find(ctx, placeID, msgPlaceNotFound)
	if err != nil {
		return nil, err
	}
	if !place.OwnedBy(userID) {
		return nil, apperror.Authorization(msgEditPlaceDenied)
	}
	place.Title = in.Title
	place.Description = in.Description
	if err := s.Places.Update(ctx, place); err != nil {
		return nil, apperror.Storage(msgUpdatePlaceFailed, err)
	}
	s.index(ctx, place)
	return place, nil
}

// DeletePlace removes the place and its id from the creator's place list in one transaction.
func (s *PlaceService) DeletePlace(ctx context.Context, userID, placeID string) error {
	place, err := s.find(ctx, placeID, msgPlaceNotFoundForDel)
	if err != nil {
		return err
	}
	if !place.OwnedBy(userID) {
		return apperror.Authorization(msgDeletePlaceDenied)
	}
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Places.Delete(ctx, place.ID); err != nil {
			return err
		}
		return s.Users.RemovePlace(ctx, place.CreatorID, place.ID)
	})
	if err != nil {
		return apperror.Storage(msgDeletePlaceFailed, err)
	}
	if s.Index != nil {
		if err := s.Index.DeletePlace(ctx, place.ID); err != nil {
			s.warn(err, place.ID, "place deindex failed")
		}
	}
	return nil
}

// UploadImage stores the image and points the place at it. Only the creator may upload.
func (s *PlaceService) UploadImage(ctx context.Context, userID, placeID, filename, contentType string, r io.Reader) (*entity.Place, error) {
	if s.Images == nil {
		return nil, apperror.Unavailable(msgUploadsDisabled)
	}
	place, err := s.find(ctx, placeID, msgPlaceNotFound)
	if err != nil {
		return nil, err
	}
	if !place.OwnedBy(userID) {
		return nil, apperror.Authorization(msgEditPlaceDenied)
	}
	objectPath := path.Join("places", place.ID, uuid.NewString()+strings.ToLower(path.Ext(filename)))
	url, err := s.Images.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, apperror.Storage(msgUploadFailed, err)
	}
	place.Image = url
	if err := s.Places.Update(ctx, place); err != nil {
		return nil, apperror.Storage(msgUpdatePlaceFailed, err)
	}
	s.index(ctx, place)
	return place, nil
}

// SearchPlaces queries the search index; without one it finds nothing.
func (s *PlaceService) SearchPlaces(ctx context.Context, q string, size int) ([]*entity.Place, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []*entity.Place{}, nil
	}
	places, err := s.Index.SearchPlaces(ctx, q, size)
	if err != nil {
		return nil, apperror.Storage(msgSearchPlacesFailed, err)
	}
	return places, nil
}

// index logs failures instead of returning them.
func (s *PlaceService) index(ctx context.Context, p *entity.Place) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexPlace(ctx, p); err != nil {
		s.warn(err, p.ID, "place index failed")
	}
}

func (s *PlaceService) warn(err error, placeID, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("place_id", placeID).Warn(msg)
	}
}
