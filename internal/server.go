package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/liftlog/internal/achievements"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/notify"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workouts"
	"github.com/2beens/liftlog/pkg"
)

type entriesStore interface {
	ListAll(ctx context.Context) ([]workouts.Entry, error)
	Get(ctx context.Context, id int) (*workouts.Entry, error)
	Add(ctx context.Context, entry workouts.Entry) (*workouts.Entry, error)
	BulkUpsert(ctx context.Context, entries []workouts.Entry) ([]workouts.Entry, error)
	List(ctx context.Context, page, size int) ([]workouts.Entry, error)
	Count(ctx context.Context) (int, error)
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	entries             entriesStore
	notifier            *notify.WebhookNotifier
	achievementsService *achievements.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	DBPassword              string
	RedisPassword           string
	NotifyWebhookURL        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	snapshotTTL, err := cfg.SnapshotTTL()
	if err != nil {
		return nil, fmt.Errorf("snapshot cache ttl: %w", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if cfg.RunDBMigrations {
		if err := db.MigratePool(dbPool); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("run db migrations: %w", err)
		}
		log.Debugln("db migrations applied")
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("liftlog", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "liftlog-backend", rdb)
	if err != nil {
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}

	var entries entriesStore = workouts.NewRepo(dbPool)
	if snapshotTTL > 0 {
		entries = workouts.NewCachedRepo(entries, snapshotTTL)
		log.Debugf("entries snapshot cache enabled, ttl: %s", snapshotTTL)
	}

	webhookURL := params.NotifyWebhookURL
	if !cfg.NotificationsEnabled {
		webhookURL = ""
	}
	notifier := notify.NewWebhookNotifier(notify.WebhookNotifierParams{
		WebhookURL:    webhookURL,
		GroupImageURL: cfg.GroupImageURL,
		Participants:  cfg.Participants,
		HttpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
		RedisClient:    rdb,
		MetricsManager: metricsManager,
	})
	if !notifier.Enabled() {
		log.Warnln("workout update notifications disabled")
	}

	achievementsService := achievements.NewService(achievements.NewRepo(dbPool), entries)
	if cfg.SeedAchievements {
		added, err := achievementsService.SeedDefaults(ctx, cfg.ParticipantNames())
		if err != nil {
			log.Errorf("seed default achievements: %s", err)
		} else if added > 0 {
			log.Infof("seeded %d default achievements", added)
		}
	}

	return &Server{
		config:              cfg,
		dbPool:              dbPool,
		redisClient:         rdb,
		versionInfo:         params.VersionInfo,
		entries:             entries,
		notifier:            notifier,
		achievementsService: achievementsService,
		metricsManager:      metricsManager,
		promRegistry:        promRegistry,
		otelShutdown:        otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("liftlog-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	workoutsHandler := workouts.NewHandler(
		s.entries,
		s.notifier,
		s.config.ParticipantNames(),
		s.metricsManager,
	)
	workoutsHandler.SetupRoutes(
		r,
		redis_rate.NewLimiter(s.redisClient),
		s.config.BulkUpdateRateLimitPerMin,
	)

	achievementsHandler := achievements.NewHandler(s.achievementsService, s.metricsManager)
	achievementsHandler.SetupRoutes(r)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.RequestID())
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.LimitAndDrainRequestBody(s.config.MaxRequestBodyBytes))

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.dbPool.Ping(ctx); err != nil {
		log.Errorf("health check, ping db: %s", err)
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}
	pkg.WriteTextResponseOK(w, "ok "+s.versionInfo)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
}
