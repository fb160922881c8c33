package provider

import (
	"github.com/remitrack/internal/cache"
	"github.com/remitrack/internal/config"
	"github.com/remitrack/internal/logger"
	"github.com/remitrack/internal/models"
	"github.com/remitrack/internal/queue"
	"github.com/remitrack/internal/repository"
	"github.com/remitrack/internal/service"
)

// Container wires repositories and services once at startup. Handlers
// and the worker both hang off it.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	RemisionRepo repository.RemisionRepository
	PiezaRepo    repository.PiezaRepository
	InfoRepo     repository.PreembarqueInfoRepository
	ImageRepo    repository.ImageRepository

	// Services
	AuthService     *service.AuthService
	RemisionService *service.RemisionService
	PiezaService    *service.PiezaService
	UploadService   *service.UploadService
	ImageService    *service.ImageService
	ReportService   *service.ReportService
}

// NewContainer builds the dependency graph.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.RemisionRepo = repository.NewRemisionRepository(db)
	c.PiezaRepo = repository.NewPiezaRepository(db)
	c.InfoRepo = repository.NewPreembarqueInfoRepository(db)
	c.ImageRepo = repository.NewImageRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.RemisionService = service.NewRemisionService(c.RemisionRepo, c.InfoRepo)
	c.PiezaService = service.NewPiezaService(c.PiezaRepo, c.RemisionRepo, c.QueueClient)
	c.UploadService = service.NewUploadService(c.Config)
	c.ImageService = service.NewImageService(c.ImageRepo, c.RemisionRepo, c.UploadService, c.QueueClient)
	c.ReportService = service.NewReportService(c.Config, c.RemisionRepo, c.InfoRepo, c.ImageRepo, c.UploadService)
}
