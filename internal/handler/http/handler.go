package http

import (
	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/internal/service"
	"github.com/MKhiriev/go-doc-sync/internal/utils"
)

type Handler struct {
	services *service.Services
	authCfg  config.Auth
	uuid     *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, authCfg config.Auth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		authCfg:  authCfg,
		uuid:     utils.NewUUIDGenerator(),
		logger:   logger,
	}
}
