package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"catadopt-backend/internal/config"
	infraCache "catadopt-backend/internal/infrastructure/cache"
	"catadopt-backend/internal/infrastructure/database"
	"catadopt-backend/pkg/cache"
	"catadopt-backend/pkg/jwt"

	annHandler "catadopt-backend/internal/domains/announcement/handler"
	annRepo "catadopt-backend/internal/domains/announcement/repository"
	annService "catadopt-backend/internal/domains/announcement/service"
	catHandler "catadopt-backend/internal/domains/cat/handler"
	catRepo "catadopt-backend/internal/domains/cat/repository"
	catService "catadopt-backend/internal/domains/cat/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the whole process.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// Repositories
	CatRepo          catRepo.CatRepository
	AnnouncementRepo annRepo.AnnouncementRepository

	// Services
	CatService          catService.ServiceInterface
	AnnouncementService annService.ServiceInterface

	// HTTP handlers
	CatHandler          *catHandler.CatHandler
	AnnouncementHandler *annHandler.AnnouncementHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the whole dependency graph. Initialization order
// matters: config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	// Step 2: database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("[Container] Database connected")

	// Step 3: cache. Redis being down is not fatal, the repositories
	// degrade to plain DB reads.
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("[Container] Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("[Container] Redis connected")
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// Step 4: task queue client
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Step 5: repositories
	c.CatRepo = catRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.AnnouncementRepo = annRepo.NewPostgresRepository(db.Pool, c.Cache)

	// Step 6: services
	c.CatService = catService.NewCatService(db.Pool, c.CatRepo, c.AnnouncementRepo, c.AsynqClient)
	c.AnnouncementService = annService.NewAnnouncementService(db.Pool, c.AnnouncementRepo, c.CatRepo)

	// Step 7: handlers
	c.CatHandler = catHandler.NewCatHandler(c.CatService)
	c.AnnouncementHandler = annHandler.NewAnnouncementHandler(c.AnnouncementService)

	log.Println("[Container] Initialized")
	return c, nil
}

// Cleanup releases all held resources. Call it on shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("[Container] Failed to close asynq client: %v", err)
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("[Container] Failed to close Redis: %v", err)
			}
		}
	}

	log.Println("[Container] Cleanup completed")
}
