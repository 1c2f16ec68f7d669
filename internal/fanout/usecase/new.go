package usecase

import (
	"net/http"
	"sync"

	"fanout-srv/config"
	"fanout-srv/internal/fanout"
	"fanout-srv/internal/fanout/repository"
	"fanout-srv/pkg/log"

	"github.com/gorilla/websocket"
)

// implUseCase implements fanout.UseCase.
type implUseCase struct {
	hub    *Hub
	store  repository.ChannelStore
	logger log.Logger

	wsCfg     config.WebSocketConfig
	fanoutCfg config.FanoutConfig
	upgrader  websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// New creates the fan-out orchestrator.
func New(logger log.Logger, store repository.ChannelStore, wsCfg config.WebSocketConfig, fanoutCfg config.FanoutConfig) fanout.UseCase {
	return &implUseCase{
		hub:       newHub(logger),
		store:     store,
		logger:    logger,
		wsCfg:     wsCfg,
		fanoutCfg: fanoutCfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  wsCfg.ReadBufferSize,
			WriteBufferSize: wsCfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				// Admission is authenticated by token, not origin.
				return true
			},
		},
		sessions: make(map[string]*Session),
	}
}
