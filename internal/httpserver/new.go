package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"tasktrack-api/config"
	"tasktrack-api/internal/realtime"
	rtRedis "tasktrack-api/internal/realtime/delivery/redis"
	rtUsecase "tasktrack-api/internal/realtime/usecase"
	pkgJWT "tasktrack-api/pkg/jwt"
	"tasktrack-api/pkg/log"
	pkgMinio "tasktrack-api/pkg/minio"
	pkgRedis "tasktrack-api/pkg/redis"
)

// HTTPServer holds the service dependencies. New() only wires and
// validates them; Run() starts background services and serves HTTP.
type HTTPServer struct {
	gin    *gin.Engine
	logger log.Logger
	host   string
	port   int

	wsConfig     config.WebSocketConfig
	rtUC         realtime.UseCase
	rtSubscriber rtRedis.Subscriber

	jwtMgr pkgJWT.Manager

	db           *sql.DB
	redis        pkgRedis.IRedis
	minio        pkgMinio.MinIO
	reportBucket string
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Host string
	Port int
	Mode string

	WSConfig     config.WebSocketConfig
	JWTManager   pkgJWT.Manager
	PostgresDB   *sql.DB
	Redis        pkgRedis.IRedis
	MinIO        pkgMinio.MinIO
	ReportBucket string
}

// New creates a new HTTPServer instance. It does not start any
// goroutines; use Run() for that.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		gin:          gin.New(),
		logger:       logger,
		host:         cfg.Host,
		port:         cfg.Port,
		wsConfig:     cfg.WSConfig,
		jwtMgr:       cfg.JWTManager,
		db:           cfg.PostgresDB,
		redis:        cfg.Redis,
		minio:        cfg.MinIO,
		reportBucket: cfg.ReportBucket,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.rtUC = rtUsecase.New(logger, cfg.JWTManager, rtUsecase.Config{
		MaxConnections: cfg.WSConfig.MaxConnections,
		AuthWait:       cfg.WSConfig.AuthWait,
		PongWait:       cfg.WSConfig.PongWait,
		PingPeriod:     cfg.WSConfig.PingPeriod,
		WriteWait:      cfg.WSConfig.WriteWait,
		MaxMessageSize: cfg.WSConfig.MaxMessageSize,
		SendBuffer:     cfg.WSConfig.SendBuffer,
		PublishChannel: cfg.WSConfig.PublishChannel,
	})

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.jwtMgr == nil {
		return errors.New("JWT manager is required")
	}
	if srv.db == nil {
		return errors.New("PostgreSQL connection is required")
	}
	if srv.redis == nil {
		return errors.New("Redis client is required")
	}
	if srv.minio == nil {
		return errors.New("MinIO client is required")
	}

	return nil
}
