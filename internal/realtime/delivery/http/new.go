package http

import (
	"net/http"

	"github.com/gorilla/websocket"

	"tasktrack-api/internal/realtime"
	"tasktrack-api/pkg/log"
)

// WSConfig holds the upgrade settings.
type WSConfig struct {
	ReadBufferSize  int
	WriteBufferSize int

	// AllowedOrigins is the origin allowlist. Empty means allow all,
	// which is only acceptable in dev.
	AllowedOrigins []string
}

type Handler struct {
	uc       realtime.UseCase
	logger   log.Logger
	upgrader websocket.Upgrader
}

func New(uc realtime.UseCase, logger log.Logger, cfg WSConfig) *Handler {
	return &Handler{
		uc:       uc,
		logger:   logger,
		upgrader: newUpgrader(cfg),
	}
}

func newUpgrader(cfg WSConfig) websocket.Upgrader {
	readBuf := cfg.ReadBufferSize
	if readBuf <= 0 {
		readBuf = 1024
	}
	writeBuf := cfg.WriteBufferSize
	if writeBuf <= 0 {
		writeBuf = 1024
	}

	return websocket.Upgrader{
		ReadBufferSize:  readBuf,
		WriteBufferSize: writeBuf,
		CheckOrigin: func(r *http.Request) bool {
			if len(cfg.AllowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range cfg.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
}
