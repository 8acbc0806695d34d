// internal/app/app.go
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	awsclient "medassist-workers/internal/common/aws"
	"medassist-workers/internal/common/config"
	"medassist-workers/internal/common/database"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/common/observability"
	"medassist-workers/internal/common/sms"
	"medassist-workers/internal/analysis"
	"medassist-workers/internal/genai"
	"medassist-workers/internal/medicine"
	"medassist-workers/internal/notification"
	"medassist-workers/internal/pharmacy"
	"medassist-workers/internal/records"
	"medassist-workers/internal/store"
	"medassist-workers/internal/triage"
)

// Services is everything the HTTP API and the job workers call into.
type Services struct {
	Analyzer      *analysis.Orchestrator
	Catalog       medicine.Catalog
	Pharmacy      *pharmacy.Simulator
	Orders        *records.OrderService
	Records       *records.Service
	Notifications *notification.Service

	// readiness probes for the connected backends
	Checks map[string]func(context.Context) error

	closers []func() error
}

// Close releases every connection opened by Build.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i]()
	}
}

// Ready runs every readiness probe and returns the first failure.
func (s *Services) Ready(ctx context.Context) error {
	for name, check := range s.Checks {
		if err := check(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Build wires services from configuration. obs may be nil.
func Build(ctx context.Context, cfg *config.Config, obs *observability.Observability, log logger.Logger) (*Services, error) {
	s := &Services{Checks: map[string]func(context.Context) error{}}

	var redisClient *redis.Client
	sharedRedis := func() *redis.Client {
		if redisClient == nil {
			redisClient = database.NewRedis(cfg.Database.Redis)
			s.closers = append(s.closers, redisClient.Close)
			s.Checks["redis"] = func(ctx context.Context) error { return database.PingRedis(ctx, redisClient) }
		}
		return redisClient
	}

	docs, err := buildStore(cfg, s, sharedRedis, log)
	if err != nil {
		s.Close()
		return nil, err
	}

	catalog, err := buildCatalog(ctx, cfg, s, sharedRedis, log)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Catalog = catalog

	gen, err := genai.New(cfg.GenAI, log)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Analyzer = analysis.NewOrchestrator(triage.NewKeywordClassifier(), log,
		analysis.WithGenerator(gen, config.GetDuration(cfg.GenAI.Timeout)),
		analysis.WithObservability(obs),
	)

	var simOpts []pharmacy.Option
	if cfg.Pharmacy.Seed != 0 {
		simOpts = append(simOpts, pharmacy.WithSeed(cfg.Pharmacy.Seed))
	}
	s.Pharmacy = pharmacy.NewSimulator(log, simOpts...)

	s.Records = records.NewService(docs, log)
	s.Orders = records.NewOrderService(docs, s.Pharmacy, log)

	notifier, err := buildNotifications(ctx, cfg.Notifications, log)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Notifications = notifier

	log.Info("services ready", map[string]interface{}{
		"store":   cfg.Store.Backend,
		"catalog": cfg.Catalog.Backend,
		"genai":   cfg.GenAI.Provider,
	})
	return s, nil
}

func buildStore(cfg *config.Config, s *Services, sharedRedis func() *redis.Client, log logger.Logger) (store.DocumentStore, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil

	case "postgres", "sqlite":
		var (
			client *database.SQLClient
			err    error
		)
		if cfg.Store.Backend == "postgres" {
			client, err = database.NewPostgres(cfg.Database.Postgres)
		} else {
			client, err = database.NewSQLite(cfg.Database.SQLite)
		}
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Close)
		s.Checks[cfg.Store.Backend] = client.Ping

		if cfg.Store.RunMigrations {
			if err := database.Migrate(client); err != nil {
				return nil, err
			}
			log.Info("migrations applied", map[string]interface{}{"dialect": client.Dialect})
		}
		sqlStore, err := store.NewSQLStore(client, log)
		if err != nil {
			return nil, err
		}
		return sqlStore, nil

	case "redis":
		return store.NewRedisStore(sharedRedis(), log), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func buildCatalog(ctx context.Context, cfg *config.Config, s *Services, sharedRedis func() *redis.Client, log logger.Logger) (medicine.Catalog, error) {
	static := medicine.NewStaticCatalog()

	var catalog medicine.Catalog
	switch cfg.Catalog.Backend {
	case "", "static":
		catalog = static

	case "elasticsearch":
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, err
		}
		s.Checks["elasticsearch"] = func(ctx context.Context) error { return database.PingElasticsearch(ctx, es) }

		elastic := medicine.NewElasticCatalog(es, cfg.Database.Elasticsearch.Index, log)
		if cfg.Catalog.SeedIndex {
			if err := elastic.Seed(ctx, static.All()); err != nil {
				return nil, err
			}
		}
		catalog = elastic

	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}

	if cfg.Catalog.CacheTTL > 0 {
		catalog = medicine.NewCachedCatalog(catalog, sharedRedis(), config.GetDuration(cfg.Catalog.CacheTTL), log)
	}
	return catalog, nil
}

func buildNotifications(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*notification.Service, error) {
	var email notification.EmailSender
	if cfg.Email.Enabled {
		ses, err := awsclient.NewSESClient(ctx, cfg.AWS.Region, cfg.Email.FromEmail)
		if err != nil {
			return nil, fmt.Errorf("ses client: %w", err)
		}
		email = ses
	}

	var smsSender sms.Sender
	if cfg.SMS.Enabled {
		sender, err := sms.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("sms sender: %w", err)
		}
		smsSender = sender
	}

	return notification.NewService(cfg, email, smsSender, log), nil
}
