// Package container builds the application graph once at startup. Optional
// backends (Redis, Elasticsearch, Gemini, Google sign-in, GCS) are skipped
// with a warning when unconfigured or unreachable.
package container

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/travel-story-api/config"
	"github.com/oksasatya/travel-story-api/internal/application"
	"github.com/oksasatya/travel-story-api/internal/infrastructure/google"
	pginfra "github.com/oksasatya/travel-story-api/internal/infrastructure/postgres"
	"github.com/oksasatya/travel-story-api/internal/infrastructure/search"
	"github.com/oksasatya/travel-story-api/internal/infrastructure/storage"
	"github.com/oksasatya/travel-story-api/pkg/cache"
	"github.com/oksasatya/travel-story-api/pkg/genai"
	"github.com/oksasatya/travel-story-api/pkg/helpers"
	"github.com/oksasatya/travel-story-api/pkg/mailer"
)

const startupTimeout = 5 * time.Second

type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *pgxpool.Pool
	Redis  *redis.Client // nil when disabled or unreachable
	JWT    *helpers.JWTManager

	Auth      *application.AuthService
	Stories   *application.StoryService
	Analytics *application.AnalyticsService
	Assistant *application.AssistantService

	// UploadsDir is set when images live on local disk and must be served.
	UploadsDir string

	closers []func()
}

// New wires every service on top of an open pool.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     pool,
		JWT:    helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL),
	}
	c.Redis = c.openRedis(ctx)

	mail, err := c.openMailer()
	if err != nil {
		c.Close()
		return nil, err
	}
	images, err := c.openImageStore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	users := pginfra.NewUserRepository(pool)
	stories := pginfra.NewStoryRepository(pool)

	c.Analytics = application.NewAnalyticsService(stories, c.openCache(), logger)
	c.Stories = application.NewStoryService(stories, images, c.openIndex(ctx), c.Analytics, cfg.PlaceholderImageURL, logger)
	c.Auth = application.NewAuthService(users, c.JWT, mail, c.openGoogle(ctx), application.AuthConfig{
		AppName:                  cfg.AppName,
		FrontendURL:              cfg.FrontendURL,
		ResetTokenTTL:            cfg.ResetTokenTTL,
		ExposeTokenOnMailFailure: cfg.ExposeTokenOnMailFailure,
	}, logger)
	c.Assistant = application.NewAssistantService(c.openGenerator(ctx), stories, logger)
	return c, nil
}

// Close releases clients in reverse order of creation. The pool belongs to the caller.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

func (c *Container) onClose(fn func()) { c.closers = append(c.closers, fn) }

func (c *Container) openRedis(ctx context.Context) *redis.Client {
	if !c.Config.RedisEnabled {
		return nil
	}
	rdb := helpers.NewRedisClient(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		c.Logger.WithError(err).Warn("redis unreachable, rate limits off and analytics cached in process")
		_ = rdb.Close()
		return nil
	}
	c.onClose(func() { _ = rdb.Close() })
	return rdb
}

func (c *Container) openCache() cache.Cache {
	if c.Redis != nil {
		return cache.NewRedis(c.Redis, c.Config.AppName+":", c.Config.AnalyticsCacheTTL)
	}
	return cache.NewLRU(c.Config.AnalyticsCacheSize, c.Config.AnalyticsCacheTTL)
}

func (c *Container) openMailer() (mailer.Sender, error) {
	transport := c.Config.MailTransport
	if err := mailer.ValidateTransport(transport); err != nil {
		return nil, err
	}
	var s mailer.Sender
	switch transport {
	case mailer.TransportMailgun:
		s = mailer.NewMailgun(c.Config.MailgunDomain, c.Config.MailgunAPIKey, c.Config.MailFrom)
	case mailer.TransportSMTP:
		s = mailer.NewSMTP(c.Config.SMTPHost, c.Config.SMTPPort, c.Config.SMTPUsername, c.Config.SMTPPassword, c.Config.MailFrom)
	case mailer.TransportQueue:
		pub, err := helpers.DialRabbitQueue(c.Config.RabbitMQURL, c.Config.RabbitMQEmailQueue, c.Config.AppName)
		if err != nil {
			c.Logger.WithError(err).Warn("rabbitmq unreachable, mail disabled")
			s = mailer.Noop{}
			break
		}
		c.onClose(pub.Close)
		s = mailer.NewQueue(pub)
	default:
		transport = mailer.TransportNone
		s = mailer.Noop{}
	}
	helpers.LogInfo(c.Logger, "mail transport selected", logrus.Fields{"transport": transport})
	return mailer.Instrument(transport, s), nil
}

func (c *Container) openImageStore(ctx context.Context) (application.ImageStore, error) {
	if c.Config.GCSBucket != "" {
		client, err := helpers.NewGCSClient(ctx, c.Config.GCSCredentialsJSONPath)
		if err != nil {
			return nil, err
		}
		c.onClose(func() { _ = client.Close() })
		return storage.NewGCS(client, c.Config.GCSBucket), nil
	}
	local, err := storage.NewLocal(c.Config.UploadsDir, c.Config.PublicBaseURL)
	if err != nil {
		return nil, err
	}
	c.UploadsDir = local.Dir
	return local, nil
}

func (c *Container) openIndex(ctx context.Context) application.StoryIndex {
	es, err := helpers.NewESClient(c.Config.ESAddrs(), c.Config.ElasticsearchUser, c.Config.ElasticsearchPass)
	if err != nil {
		c.Logger.WithError(err).Warn("elasticsearch client failed, searching the database")
		return nil
	}
	if es == nil {
		return nil
	}
	idx := search.NewStoryIndex(es, c.Config.ESStoriesIndex)
	if err := idx.EnsureIndex(ctx); err != nil {
		c.Logger.WithError(err).Warn("elasticsearch index unavailable, searching the database")
		return nil
	}
	return idx
}

func (c *Container) openGoogle(ctx context.Context) application.GoogleVerifier {
	if c.Config.GoogleClientID == "" {
		return nil
	}
	v, err := google.NewVerifier(ctx, c.Config.GoogleClientID)
	if err != nil {
		c.Logger.WithError(err).Warn("google sign-in disabled")
		return nil
	}
	return v
}

func (c *Container) openGenerator(ctx context.Context) application.TextGenerator {
	if c.Config.GeminiAPIKey == "" {
		return nil
	}
	g, err := genai.NewGemini(ctx, c.Config.GeminiAPIKey, c.Config.GeminiModel)
	if err != nil {
		c.Logger.WithError(err).Warn("assistant disabled")
		return nil
	}
	return g
}
