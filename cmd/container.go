package main

import (
	"context"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/config"
	"github.com/0Omaaar/iRecruitApp/pkg/fsx"
	"github.com/0Omaaar/iRecruitApp/pkg/fsx/fsxapi"
	"github.com/0Omaaar/iRecruitApp/pkg/fsx/fsxlocal"
	"github.com/0Omaaar/iRecruitApp/pkg/fsx/fsxs3"
	"github.com/0Omaaar/iRecruitApp/pkg/iam/auth"
	"github.com/0Omaaar/iRecruitApp/pkg/iam/user/userinfra"
	"github.com/0Omaaar/iRecruitApp/pkg/logx"
	"github.com/0Omaaar/iRecruitApp/pkg/mailx"
	"github.com/0Omaaar/iRecruitApp/pkg/metricx"
	"github.com/0Omaaar/iRecruitApp/pkg/ratelimit"
	"github.com/0Omaaar/iRecruitApp/recruitment/application/applicationapi"
	"github.com/0Omaaar/iRecruitApp/recruitment/application/applicationinfra"
	"github.com/0Omaaar/iRecruitApp/recruitment/application/applicationsrv"
	"github.com/0Omaaar/iRecruitApp/recruitment/candidature/candidatureinfra"
	"github.com/0Omaaar/iRecruitApp/recruitment/export/exportapi"
	"github.com/0Omaaar/iRecruitApp/recruitment/export/exportinfra"
	"github.com/0Omaaar/iRecruitApp/recruitment/export/exportsrv"
	"github.com/0Omaaar/iRecruitApp/recruitment/export/worker"
	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer/jobofferapi"
	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer/jobofferinfra"
	"github.com/0Omaaar/iRecruitApp/recruitment/joboffer/joboffersrv"
	"github.com/0Omaaar/iRecruitApp/recruitment/session/sessionapi"
	"github.com/0Omaaar/iRecruitApp/recruitment/session/sessioninfra"
	"github.com/0Omaaar/iRecruitApp/recruitment/session/sessionsrv"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche/trancheapi"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche/trancheinfra"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche/tranchesrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
)

const appName = "irecruit-api"

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	Uploader   *fsx.Uploader
	Mailer     mailx.Mailer
	Metrics    *metricx.Metrics

	// IAM
	TokenService   auth.TokenService
	AuthService    *auth.AuthService
	AuthMiddleware *auth.TokenMiddleware

	// Recruitment Services
	JobOfferService    *joboffersrv.JobOfferService
	SessionService     *sessionsrv.SessionService
	TrancheService     *tranchesrv.TrancheService
	ApplicationService *applicationsrv.ApplicationService
	ExportService      *exportsrv.Service
	ExportQueue        *exportinfra.RedisQueue
	ExportWorker       *worker.ExportWorker

	// Rate limiters
	LoginLimiter  *ratelimit.RedisLimiter
	SubmitLimiter *ratelimit.RedisLimiter

	// API Handlers
	AuthHandlers        *auth.AuthHandlers
	UploadHandlers      *fsxapi.Handlers
	JobOfferHandlers    *jobofferapi.Handlers
	SessionHandlers     *sessionapi.Handlers
	TrancheHandlers     *trancheapi.Handlers
	ApplicationHandlers *applicationapi.Handlers
	ExportHandlers      *exportapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	c.initMetrics()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	db, err := sqlx.Connect("postgres", c.Config.DB.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if err := c.Redis.Ping(context.Background()).Err(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. File storage
	switch c.Config.Storage.Driver {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(c.Config.Storage.Region))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), c.Config.Storage.Bucket, c.Config.Storage.Prefix)
	default:
		c.FileSystem = fsxlocal.NewLocalFileSystem(c.Config.Storage.LocalDir)
	}
	c.Uploader = fsx.NewUploader(c.FileSystem)

	// 4. Mail
	switch c.Config.Mail.Driver {
	case "smtp":
		m := c.Config.Mail
		c.Mailer = mailx.NewSMTPMailer(m.Host, m.Port, m.Username, m.Password, m.From)
	default:
		c.Mailer = mailx.NewConsoleMailer()
	}

	// 5. Auth
	if c.Config.UsesInsecureJWTSecret() {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
	}
	c.TokenService = auth.NewJWTService(c.Config.JWT.Secret, c.Config.JWT.TTL, c.Config.JWT.Issuer)
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)

	rl := c.Config.RateLimit
	c.LoginLimiter = ratelimit.NewRedisLimiter(c.Redis, rl.Limit, rl.Window, "ratelimit:login:")
	c.SubmitLimiter = ratelimit.NewRedisLimiter(c.Redis, rl.Limit, rl.Window, "ratelimit:apply:")
}

func (c *Container) initServices() {
	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	jobOfferRepo := jobofferinfra.NewPostgresJobOfferRepository(c.DB)
	sessionRepo := sessioninfra.NewPostgresSessionRepository(c.DB)
	trancheRepo := trancheinfra.NewPostgresTrancheRepository(c.DB)
	candidatureRepo := candidatureinfra.NewPostgresCandidatureRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)

	exportStore := exportinfra.NewRedisJobStore(c.Redis, "export:job:", exportinfra.DefaultJobTTL)
	c.ExportQueue = exportinfra.NewRedisQueue(c.Redis, "export:queue")

	// --- Domain Services ---
	c.AuthService = auth.NewAuthService(userRepo, c.TokenService, auth.NewPasswordService(bcrypt.DefaultCost))

	c.JobOfferService = joboffersrv.NewJobOfferService(jobOfferRepo, applicationRepo, c.Uploader)
	c.SessionService = sessionsrv.NewSessionService(sessionRepo)
	c.TrancheService = tranchesrv.NewTrancheService(trancheRepo, c.SessionService, c.JobOfferService)

	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		candidatureRepo,
		c.TrancheService,
		c.JobOfferService,
		c.Uploader,
		c.Mailer,
	)

	c.ExportService = exportsrv.NewExportService(
		exportStore,
		c.ExportQueue,
		c.TrancheService,
		c.ApplicationService,
		c.FileSystem,
	)
	c.ExportWorker = worker.NewExportWorker(c.ExportService, c.ExportQueue, c.Config.Export.Workers)

	// --- Handlers ---
	c.AuthHandlers = auth.NewAuthHandlers(c.AuthService)
	c.UploadHandlers = fsxapi.NewHandlers(c.FileSystem)
	c.JobOfferHandlers = jobofferapi.NewHandlers(c.JobOfferService)
	c.SessionHandlers = sessionapi.NewHandlers(c.SessionService)
	c.TrancheHandlers = trancheapi.NewHandlers(c.TrancheService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.ExportHandlers = exportapi.NewHandlers(c.ExportService)
}

func (c *Container) initMetrics() {
	c.Metrics = metricx.New(appName)

	queueGauge := func(name, help string, size func(context.Context) (int64, error)) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			n, err := size(ctx)
			if err != nil {
				return 0
			}
			return float64(n)
		})
	}

	c.Metrics.Register(
		queueGauge("export_queue_ready_jobs", "Export jobs waiting for a worker", c.ExportQueue.GetQueueSize),
		queueGauge("export_queue_delayed_jobs", "Export jobs waiting for a retry", c.ExportQueue.GetDelayedQueueSize),
	)
}

// Close releases connections held by the container
func (c *Container) Close() {
	if err := c.Redis.Close(); err != nil {
		logx.Warn("failed to close redis", "error", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warn("failed to close database", "error", err)
	}
}
