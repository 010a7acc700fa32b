package container

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/placebook/config"
	"github.com/oksasatya/placebook/internal/application"
	"github.com/oksasatya/placebook/internal/domain/entity"
	repo "github.com/oksasatya/placebook/internal/domain/repository"
	"github.com/oksasatya/placebook/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/placebook/internal/infrastructure/postgres"
	"github.com/oksasatya/placebook/internal/infrastructure/search"
	handlers "github.com/oksasatya/placebook/internal/interface/http"
	"github.com/oksasatya/placebook/pkg/geocode"
	"github.com/oksasatya/placebook/pkg/helpers"
	mailtpl "github.com/oksasatya/placebook/pkg/mailer/templates"
)

// Fallback coordinates used when no geocoding key is configured.
var staticLocation = geocode.Static{Location: entity.Location{Lat: 40.7484405, Lng: -73.9878531}}

// Container owns every constructed component of the API process.
// Optional backends (redis, gcs, elasticsearch, rabbitmq) stay nil when
// they are not configured or cannot be reached at startup.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager

	Pool   *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	Rabbit *helpers.RabbitPublisher

	Users    repo.UserRepository
	Places   repo.PlaceRepository
	Profiles repo.ProfileRepository
	Posts    repo.PostRepository
	Tx       repo.Transactor

	UserService    *application.UserService
	PlaceService   *application.PlaceService
	ProfileService *application.ProfileService
	PostService    *application.PostService

	UserHandler    *handlers.UserHandler
	PlaceHandler   *handlers.PlaceHandler
	ProfileHandler *handlers.ProfileHandler
	PostHandler    *handlers.PostHandler

	closers []func()
}

// New builds the container for cfg. The caller must call Close.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret),
	}
	if err := c.initStorage(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initOptional(ctx)
	c.initServices(ctx)
	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.DBDriver {
	case config.DriverMemory:
		store := memory.NewStore()
		c.Users = memory.NewUserRepository(store)
		c.Places = memory.NewPlaceRepository(store)
		c.Profiles = memory.NewProfileRepository(store)
		c.Posts = memory.NewPostRepository(store)
		c.Tx = memory.NewTransactor(store)
		c.Logger.Warn("using in-memory storage; data is lost on restart")
		return nil
	case config.DriverPostgres:
		pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
			DSN:             c.Config.PostgresDSN(),
			MaxConns:        c.Config.DBMaxConns,
			MinConns:        c.Config.DBMinConns,
			MaxConnLifetime: c.Config.DBMaxConnLife,
		})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.Pool = pool
		c.closers = append(c.closers, pool.Close)
		c.Users = pginfra.NewUserRepository(pool)
		c.Places = pginfra.NewPlaceRepository(pool)
		c.Profiles = pginfra.NewProfileRepository(pool)
		c.Posts = pginfra.NewPostRepository(pool)
		c.Tx = pginfra.NewTransactor(pool)
		return nil
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Config.DBDriver)
	}
}

func (c *Container) initOptional(ctx context.Context) {
	cfg := c.Config

	if cfg.RedisAddr != "" {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			c.Logger.WithError(err).Warn("redis unavailable, rate limiting falls back to in-process")
		} else {
			c.Redis = rdb
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}
	}

	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			c.Logger.WithError(err).Warn("gcs unavailable, image upload disabled")
		} else {
			c.GCS = gcs
			c.closers = append(c.closers, func() { _ = gcs.Close() })
		}
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			c.Logger.WithError(err).Warn("elasticsearch unavailable, place search disabled")
		} else {
			c.ES = es
		}
	}

	if cfg.RabbitMQURL != "" && cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			c.Logger.WithError(err).Warn("rabbitmq unavailable, welcome emails disabled")
		} else {
			c.Rabbit = pub
			c.closers = append(c.closers, pub.Close)
		}
	}
}

func (c *Container) initServices(ctx context.Context) {
	cfg := c.Config

	var geo geocode.Geocoder = staticLocation
	if cfg.GeocodeAPIKey != "" {
		geo = geocode.NewGoogleGeocoder(cfg.GeocodeAPIKey, cfg.GeocodeBaseURL)
	} else {
		c.Logger.Warn("GEOCODE_API_KEY not set, places get fixed coordinates")
	}

	// nil interfaces, not typed nil pointers, mark a disabled backend
	var (
		mail   application.JobPublisher
		index  application.PlaceIndexer
		images application.ImageStore
	)
	if c.Rabbit != nil {
		mail = c.Rabbit
	}
	if c.ES != nil {
		idx := search.NewPlaceIndex(c.ES, cfg.ESPlacesIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			c.Logger.WithError(err).Warn("elasticsearch index setup failed")
		}
		index = idx
	}
	if c.GCS != nil {
		images = helpers.NewGCSUploader(c.GCS, cfg.GCSBucket)
	}

	branding := mailtpl.Branding{CompanyName: cfg.CompanyName, AppName: cfg.AppName, AppURL: cfg.AppURL}

	c.UserService = application.NewUserService(c.Users, c.JWT, mail, branding, cfg.DefaultImageURL, c.Logger)
	c.PlaceService = application.NewPlaceService(c.Places, c.Users, c.Tx, geo, index, images, cfg.DefaultImageURL, c.Logger)
	c.ProfileService = application.NewProfileService(c.Profiles, c.Users, c.Tx, c.Logger)
	c.PostService = application.NewPostService(c.Posts, c.Users, c.Logger)

	c.UserHandler = handlers.NewUserHandler(c.UserService)
	c.PlaceHandler = handlers.NewPlaceHandler(c.PlaceService)
	c.ProfileHandler = handlers.NewProfileHandler(c.ProfileService)
	c.PostHandler = handlers.NewPostHandler(c.PostService)
}

// Close releases backends in reverse order of construction.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
