package httpserver

import (
	"database/sql"
	"errors"

	"fanout-srv/config"
	"fanout-srv/internal/fanout"
	fanoutRedis "fanout-srv/internal/fanout/delivery/redis"
	"fanout-srv/pkg/log"
	pkgRedis "fanout-srv/pkg/redis"

	"github.com/gin-gonic/gin"
)

// HTTPServer wires the service together. New only validates and stores the
// dependencies; Run (in httpserver.go) starts background services and serves.
type HTTPServer struct {
	gin    *gin.Engine
	logger log.Logger

	host string
	port int
	mode string

	// Core domain, built in mapHandlers
	fanoutUC   fanout.UseCase
	subscriber fanoutRedis.Subscriber

	// Configuration
	wsCfg     config.WebSocketConfig
	fanoutCfg config.FanoutConfig

	// Auth & security
	jwtSecretKey string
	internalKey  string

	// External stores
	redis pkgRedis.IRedis
	db    *sql.DB
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Host string
	Port int
	Mode string

	WSConfig     config.WebSocketConfig
	FanoutConfig config.FanoutConfig

	JwtSecretKey string
	InternalKey  string

	Redis pkgRedis.IRedis
	DB    *sql.DB
}

// New creates a new HTTPServer instance with the provided configuration.
// No goroutines start here; use Run.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		gin:          gin.New(),
		logger:       logger,
		host:         cfg.Host,
		port:         cfg.Port,
		mode:         cfg.Mode,
		wsCfg:        cfg.WSConfig,
		fanoutCfg:    cfg.FanoutConfig,
		jwtSecretKey: cfg.JwtSecretKey,
		internalKey:  cfg.InternalKey,
		redis:        cfg.Redis,
		db:           cfg.DB,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.redis == nil {
		return errors.New("redis client is required")
	}
	if srv.db == nil {
		return errors.New("postgres client is required")
	}
	if srv.jwtSecretKey == "" {
		return errors.New("jwt secret key is required")
	}
	if srv.internalKey == "" {
		return errors.New("internal key is required")
	}
	return nil
}
