package di

import (
	"time"

	"gorm.io/gorm"

	"taskdeck/application/serviceimpl"
	"taskdeck/domain/ports"
	"taskdeck/domain/repositories"
	"taskdeck/domain/services"
	"taskdeck/infrastructure/messaging"
	natspkg "taskdeck/infrastructure/nats"
	"taskdeck/infrastructure/postgres"
	redispkg "taskdeck/infrastructure/redis"
	"taskdeck/infrastructure/storage"
	ws "taskdeck/infrastructure/websocket"
	"taskdeck/interfaces/api/handlers"
	"taskdeck/pkg/config"
	"taskdeck/pkg/logger"
	"taskdeck/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redispkg.Client // optional - cache ของ board lists
	NATSClient  *natspkg.Client  // optional - board events
	Storage     ports.StoragePort
	Publisher   ports.EventPublisher
	Scheduler   scheduler.Scheduler

	// Repositories
	ProjectRepository    repositories.ProjectRepository
	TaskRepository       repositories.TaskRepository
	SubtaskRepository    repositories.SubtaskRepository
	DependencyRepository repositories.DependencyRepository
	HistoryRepository    repositories.HistoryRepository
	AttachmentRepository repositories.AttachmentRepository
	UserRepository       repositories.UserRepository
	TxManager            repositories.TxManager

	// Services
	ProjectService    services.ProjectService
	TaskService       services.TaskService
	SubtaskService    services.SubtaskService
	DependencyService services.DependencyService
	AttachmentService services.AttachmentService
	ExportService     services.ExportService
	UserService       services.UserService
	RetentionService  *serviceimpl.TrashRetentionService

	// WebSocket & Broadcasting
	Hub              *ws.Hub
	BoardBroadcaster *ws.BoardBroadcaster
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initScheduler(); err != nil {
		return err
	}

	if err := c.initBroadcaster(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSizeMB,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAgeDays,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized", "level", c.Config.Log.Level, "format", c.Config.Log.Format)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis optional - ไม่มีก็แค่ query DB ตลอด
	if c.Config.Redis.Enabled {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
		}
	}

	// NATS optional - ไม่มีก็ใช้ noop publisher (board ไม่ได้ live update)
	c.Publisher = messaging.NewNoopEventPublisher()
	if c.Config.NATS.Enabled {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
		if err != nil {
			logger.Warn("NATS initialization failed (board events disabled)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.Publisher = messaging.NewNATSEventPublisher(natsClient.Conn())
		}
	}

	return c.initStorage()
}

// initStorage สร้าง storage adapter ตาม config
func (c *Container) initStorage() error {
	switch c.Config.Storage.Provider {
	case "s3":
		s3Storage, err := storage.NewS3Storage(storage.S3StorageConfig{
			Endpoint:  c.Config.Storage.S3.Endpoint,
			AccessKey: c.Config.Storage.S3.AccessKey,
			SecretKey: c.Config.Storage.S3.SecretKey,
			Bucket:    c.Config.Storage.S3.Bucket,
			Region:    c.Config.Storage.S3.Region,
			UseSSL:    c.Config.Storage.S3.UseSSL,
			PublicURL: c.Config.Storage.BaseURL,
		})
		if err != nil {
			return err
		}
		c.Storage = s3Storage
	default:
		localStorage, err := storage.NewLocalStorage(storage.LocalStorageConfig{
			BasePath: c.Config.Storage.LocalPath,
			BaseURL:  c.Config.Storage.BaseURL,
		})
		if err != nil {
			return err
		}
		c.Storage = localStorage
	}

	logger.Info("Storage initialized", "provider", c.Storage.GetProviderName())
	return nil
}

func (c *Container) initRepositories() {
	c.ProjectRepository = postgres.NewProjectRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	c.SubtaskRepository = postgres.NewSubtaskRepository(c.DB)
	c.DependencyRepository = postgres.NewDependencyRepository(c.DB)
	c.HistoryRepository = postgres.NewHistoryRepository(c.DB)
	c.AttachmentRepository = postgres.NewAttachmentRepository(c.DB)
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TxManager = postgres.NewTxManager(c.DB)
}

func (c *Container) initServices() {
	historyOpt := serviceimpl.WithHistoryLimit(c.Config.Retention.HistoryMaxItems)

	if c.RedisClient != nil {
		c.TaskService = serviceimpl.NewTaskServiceWithCache(
			c.TaskRepository,
			c.ProjectRepository,
			c.SubtaskRepository,
			c.DependencyRepository,
			c.HistoryRepository,
			c.AttachmentRepository,
			c.TxManager,
			c.Storage,
			c.Publisher,
			c.RedisClient,
			historyOpt,
			serviceimpl.WithCacheTTL(c.Config.Redis.CacheTTL),
		)
	} else {
		c.TaskService = serviceimpl.NewTaskService(
			c.TaskRepository,
			c.ProjectRepository,
			c.SubtaskRepository,
			c.DependencyRepository,
			c.HistoryRepository,
			c.AttachmentRepository,
			c.TxManager,
			c.Storage,
			c.Publisher,
			historyOpt,
		)
	}

	c.ProjectService = serviceimpl.NewProjectService(
		c.ProjectRepository,
		c.TaskRepository,
		c.SubtaskRepository,
		c.DependencyRepository,
		c.HistoryRepository,
		c.AttachmentRepository,
		c.TxManager,
		c.Storage,
		c.Publisher,
	)

	c.SubtaskService = serviceimpl.NewSubtaskService(c.SubtaskRepository, c.TaskRepository)
	c.DependencyService = serviceimpl.NewDependencyService(c.DependencyRepository, c.TaskRepository)
	c.AttachmentService = serviceimpl.NewAttachmentService(c.AttachmentRepository, c.TaskRepository, c.Storage)
	c.ExportService = serviceimpl.NewExportService(c.ProjectRepository, c.TaskRepository)
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.Config.JWT)

	logger.Info("Services initialized")
}

func (c *Container) initScheduler() error {
	c.Scheduler = scheduler.New()

	c.RetentionService = serviceimpl.NewTrashRetentionService(
		serviceimpl.TrashRetentionConfig{
			TrashTTL: time.Duration(c.Config.Retention.TrashTTLDays) * 24 * time.Hour,
			Interval: time.Duration(c.Config.Retention.IntervalMinutes) * time.Minute,
		},
		c.ProjectService,
		c.TaskService,
		c.ProjectRepository,
		c.TaskRepository,
		c.Scheduler,
	)

	if err := c.RetentionService.RegisterJob(); err != nil {
		return err
	}

	c.Scheduler.Start()
	return nil
}

func (c *Container) initBroadcaster() error {
	c.Hub = ws.NewHub()

	if c.NATSClient == nil {
		logger.Warn("Board broadcaster disabled (no NATS connection)")
		return nil
	}

	subscriber := natspkg.NewSubscriber(c.NATSClient.Conn())
	c.BoardBroadcaster = ws.NewBoardBroadcaster(subscriber, c.Hub)
	return c.BoardBroadcaster.Start()
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetHandlerServices รวม services สำหรับสร้าง handlers
func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		ProjectService:    c.ProjectService,
		TaskService:       c.TaskService,
		SubtaskService:    c.SubtaskService,
		DependencyService: c.DependencyService,
		AttachmentService: c.AttachmentService,
		ExportService:     c.ExportService,
		UserService:       c.UserService,
		Hub:               c.Hub,
		JWTSecret:         c.Config.JWT.Secret,
	}
}

func (c *Container) Cleanup() error {
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}

	if c.BoardBroadcaster != nil {
		c.BoardBroadcaster.Stop()
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("NATS close failed", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Redis close failed", "error", err)
		}
	}

	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			return sqlDB.Close()
		}
	}

	return nil
}
