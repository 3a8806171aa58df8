package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hlcomp/hanabi-competitions/internal/config"
	"github.com/hlcomp/hanabi-competitions/internal/infrastructure/credentials"
	"github.com/hlcomp/hanabi-competitions/internal/infrastructure/repository/guarded"
	"github.com/hlcomp/hanabi-competitions/internal/infrastructure/repository/postgres"
	"github.com/hlcomp/hanabi-competitions/internal/interfaces/httpapi"
	"github.com/hlcomp/hanabi-competitions/internal/platform/logging"
	"github.com/hlcomp/hanabi-competitions/internal/platform/resilience"
	"github.com/hlcomp/hanabi-competitions/internal/usecase"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

// Server is the HTTP server together with the database pools it owns.
type Server struct {
	HTTP     *http.Server
	viewerDB *sqlx.DB
	adminDB  *sqlx.DB
}

// Close releases both database pools.
func (s *Server) Close() error {
	var errs []error
	if s.adminDB != nil && s.adminDB != s.viewerDB {
		errs = append(errs, s.adminDB.Close())
	}
	if s.viewerDB != nil {
		errs = append(errs, s.viewerDB.Close())
	}
	return errors.Join(errs...)
}

// NewHTTPServer opens the viewer and admin pools, loads the admin
// credentials and wires every repository, service and route.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	admins, err := credentials.LoadFile(cfg.AdminCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("load admin credentials: %w", err)
	}
	if admins.Len() == 0 {
		logger.Warn("no admin credentials configured, write routes will reject every request",
			"file", cfg.AdminCredentialsFile)
	}

	viewerDB, err := openDB(ctx, cfg.DBViewerURL, cfg)
	if err != nil {
		return nil, fmt.Errorf("open viewer database: %w", err)
	}
	adminDB := viewerDB
	if cfg.DBAdminURL != "" && cfg.DBAdminURL != cfg.DBViewerURL {
		adminDB, err = openDB(ctx, cfg.DBAdminURL, cfg)
		if err != nil {
			_ = viewerDB.Close()
			return nil, fmt.Errorf("open admin database: %w", err)
		}
	}

	logger.Info("database pools ready",
		"viewer_db", parseDBTarget(cfg.DBViewerURL, false).display,
		"admin_db", parseDBTarget(cfg.DBAdminURL, false).display,
		"max_open_conns", cfg.DBMaxOpenConns,
	)

	return &Server{
		HTTP: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           newRouter(cfg, viewerDB, adminDB, admins, logger),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		viewerDB: viewerDB,
		adminDB:  adminDB,
	}, nil
}

// newRouter builds the handler graph. Reads go through the viewer pool behind
// one circuit breaker and writes through the admin pool.
func newRouter(cfg config.Config, viewerDB, adminDB *sqlx.DB, admins *credentials.Store, logger *logging.Logger) http.Handler {
	viewerBreaker := resilience.New(cfg.DBCircuitBreaker)
	competitionReader := guarded.NewCompetitionRepository(postgres.NewCompetitionRepository(viewerDB), viewerBreaker)
	competitionWriter := postgres.NewCompetitionRepository(adminDB)
	standingsRepo := guarded.NewStandingsSource(postgres.NewStandingsRepository(viewerDB), viewerBreaker)
	resultRepo := guarded.NewResultRepository(postgres.NewResultRepository(viewerDB), viewerBreaker)
	seriesRepo := postgres.NewSeriesRepository(adminDB)
	gameRepo := postgres.NewGameRepository(adminDB)
	variantRepo := postgres.NewVariantRepository(adminDB)

	standingsSvc := usecase.NewStandingsService(competitionReader, standingsRepo)
	competitionSvc := usecase.NewCompetitionService(competitionWriter)
	handler := httpapi.NewHandler(
		standingsSvc,
		competitionSvc,
		usecase.NewGameService(gameRepo),
		usecase.NewVariantService(variantRepo),
		usecase.NewSeriesService(seriesRepo, standingsSvc, cfg.SeriesWorkers, cfg.SeriesMaxCompetitions),
		usecase.NewResultService(resultRepo),
		usecase.NewIndexService(usecase.NewCompetitionService(competitionReader)),
		logger,
	)

	return httpapi.NewRouter(handler, httpapi.RouterConfig{
		Admin:              admins,
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		BodyMaxBytes:       cfg.RequestBodyMaxBytes,
	})
}

func openDB(ctx context.Context, rawURL string, cfg config.Config) (*sqlx.DB, error) {
	target := parseDBTarget(rawURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", target.dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(target.name),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", target.display, err)
	}
	return db, nil
}
