package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Postgres PostgresConfig
	Redis    RedisConfig
	MinIO    MinIOConfig

	JWT       JWTConfig
	WebSocket WebSocketConfig
	Client    ClientConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// HTTPServerConfig is the configuration for the HTTP server.
type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PostgresConfig is the configuration for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig is the configuration for Redis.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// MinIOConfig is the configuration for MinIO object storage.
type MinIOConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	Region       string
	ReportBucket string
}

// JWTConfig is the configuration for access tokens.
type JWTConfig struct {
	SecretKey string
	Issuer    string
	TTL       time.Duration
}

// WebSocketConfig is the configuration for server-side WebSocket connections.
type WebSocketConfig struct {
	AuthWait        time.Duration
	PongWait        time.Duration
	PingPeriod      time.Duration
	WriteWait       time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	MaxConnections  int
	SendBuffer      int
	AllowedOrigins  []string
	PublishChannel  string
}

// ClientConfig is the configuration for the terminal client and its
// reconnection behavior.
type ClientConfig struct {
	URL                  string
	HeartbeatInterval    time.Duration
	ReconnectBaseDelay   time.Duration
	ReconnectMaxDelay    time.Duration
	MaxReconnectAttempts int
}

// Load loads configuration using Viper.
func Load() (*Config, error) {
	viper.SetConfigName("tasktrack-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/tasktrack/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; environment variables cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")

	cfg.HTTPServer.Host = viper.GetString("server.host")
	cfg.HTTPServer.Port = viper.GetInt("server.port")
	cfg.HTTPServer.Mode = viper.GetString("server.mode")

	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")

	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	cfg.MinIO.Endpoint = viper.GetString("minio.endpoint")
	cfg.MinIO.AccessKey = viper.GetString("minio.access_key")
	cfg.MinIO.SecretKey = viper.GetString("minio.secret_key")
	cfg.MinIO.UseSSL = viper.GetBool("minio.use_ssl")
	cfg.MinIO.Region = viper.GetString("minio.region")
	cfg.MinIO.ReportBucket = viper.GetString("minio.report_bucket")

	cfg.JWT.SecretKey = viper.GetString("jwt.secret_key")
	cfg.JWT.Issuer = viper.GetString("jwt.issuer")
	cfg.JWT.TTL = viper.GetDuration("jwt.ttl")

	cfg.WebSocket.AuthWait = viper.GetDuration("websocket.auth_wait")
	cfg.WebSocket.PongWait = viper.GetDuration("websocket.pong_wait")
	cfg.WebSocket.PingPeriod = viper.GetDuration("websocket.ping_period")
	cfg.WebSocket.WriteWait = viper.GetDuration("websocket.write_wait")
	cfg.WebSocket.MaxMessageSize = viper.GetInt64("websocket.max_message_size")
	cfg.WebSocket.ReadBufferSize = viper.GetInt("websocket.read_buffer_size")
	cfg.WebSocket.WriteBufferSize = viper.GetInt("websocket.write_buffer_size")
	cfg.WebSocket.MaxConnections = viper.GetInt("websocket.max_connections")
	cfg.WebSocket.SendBuffer = viper.GetInt("websocket.send_buffer")
	cfg.WebSocket.AllowedOrigins = viper.GetStringSlice("websocket.allowed_origins")
	cfg.WebSocket.PublishChannel = viper.GetString("websocket.publish_channel")

	cfg.Client.URL = viper.GetString("client.url")
	cfg.Client.HeartbeatInterval = viper.GetDuration("client.heartbeat_interval")
	cfg.Client.ReconnectBaseDelay = viper.GetDuration("client.reconnect_base_delay")
	cfg.Client.ReconnectMaxDelay = viper.GetDuration("client.reconnect_max_delay")
	cfg.Client.MaxReconnectAttempts = viper.GetInt("client.max_reconnect_attempts")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "production")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("logger.color_enabled", false)

	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.dbname", "tasktrack")
	viper.SetDefault("postgres.sslmode", "disable")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("minio.endpoint", "localhost:9000")
	viper.SetDefault("minio.access_key", "")
	viper.SetDefault("minio.secret_key", "")
	viper.SetDefault("minio.use_ssl", false)
	viper.SetDefault("minio.region", "")
	viper.SetDefault("minio.report_bucket", "task-reports")

	viper.SetDefault("jwt.issuer", "tasktrack-api")
	viper.SetDefault("jwt.ttl", 24*time.Hour)

	viper.SetDefault("websocket.auth_wait", 10*time.Second)
	viper.SetDefault("websocket.pong_wait", 60*time.Second)
	viper.SetDefault("websocket.ping_period", 54*time.Second)
	viper.SetDefault("websocket.write_wait", 10*time.Second)
	viper.SetDefault("websocket.max_message_size", 4096)
	viper.SetDefault("websocket.read_buffer_size", 1024)
	viper.SetDefault("websocket.write_buffer_size", 1024)
	viper.SetDefault("websocket.max_connections", 10000)
	viper.SetDefault("websocket.send_buffer", 256)
	viper.SetDefault("websocket.allowed_origins", []string{})
	viper.SetDefault("websocket.publish_channel", "tasks:events")

	viper.SetDefault("client.url", "ws://localhost:8080/api/v1/ws")
	viper.SetDefault("client.heartbeat_interval", 30*time.Second)
	viper.SetDefault("client.reconnect_base_delay", time.Second)
	viper.SetDefault("client.reconnect_max_delay", 30*time.Second)
	viper.SetDefault("client.max_reconnect_attempts", 10)
}

func validate(cfg *Config) error {
	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key is required")
	}
	if cfg.HTTPServer.Port <= 0 || cfg.HTTPServer.Port > 65535 {
		return fmt.Errorf("server.port is invalid: %d", cfg.HTTPServer.Port)
	}
	return nil
}
