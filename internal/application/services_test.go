package application

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/internal/infrastructure/memory"
	"github.com/oksasatya/placebook/pkg/apperror"
	"github.com/oksasatya/placebook/pkg/geocode"
	"github.com/oksasatya/placebook/pkg/helpers"
	mailtpl "github.com/oksasatya/placebook/pkg/mailer/templates"
)

const defaultImage = "https://img.test/default.jpg"

func TestMain(m *testing.M) {
	helpers.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, body)
	return f.err
}

type fakeIndex struct {
	indexed map[string]*entity.Place
	deleted []string
	err     error
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[string]*entity.Place{}} }

func (f *fakeIndex) IndexPlace(_ context.Context, p *entity.Place) error {
	f.indexed[p.ID] = p
	return f.err
}

func (f *fakeIndex) DeletePlace(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeIndex) SearchPlaces(_ context.Context, q string, _ int) ([]*entity.Place, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Place
	for _, p := range f.indexed {
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeImages struct {
	paths []string
	body  string
}

func (f *fakeImages) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.paths = append(f.paths, objectPath)
	f.body = string(b)
	return "https://cdn.test/" + objectPath, nil
}

type env struct {
	store    *memory.Store
	users    *UserService
	places   *PlaceService
	profiles *ProfileService
	posts    *PostService
	mail     *fakePublisher
	index    *fakeIndex
	images   *fakeImages
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	tx := memory.NewTransactor(store)
	logger := helpers.DiscardLogger()
	e := &env{store: store, mail: &fakePublisher{}, index: newFakeIndex(), images: &fakeImages{}}
	e.users = NewUserService(userRepo, helpers.NewJWTManager("test-secret"), e.mail, mailtpl.Branding{AppName: "Placebook"}, defaultImage, logger)
	e.places = NewPlaceService(memory.NewPlaceRepository(store), userRepo, tx, geocode.Static{Location: entity.Location{Lat: 40.7, Lng: -73.9}}, e.index, e.images, defaultImage, logger)
	e.profiles = NewProfileService(memory.NewProfileRepository(store), userRepo, tx, logger)
	e.posts = NewPostService(memory.NewPostRepository(store), userRepo, logger)
	return e
}

func (e *env) signup(t *testing.T, name, email string) string {
	t.Helper()
	res, err := e.users.Signup(context.Background(), SignupInput{Name: name, Email: email, Password: "secret1"})
	require.NoError(t, err)
	return res.UserID
}

func requireCode(t *testing.T, err error, code int) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	ae, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %T: %v", err, err)
	assert.Equal(t, code, ae.Code, ae.Message)
	return ae
}
