// Package http implements the HTTP transport layer of the favorites service.
// It provides middleware, route handlers, and the websocket watch endpoint
// through which clients mirror their remote favorites document. Tracing,
// logging, and authentication concerns are all handled at this layer before
// requests reach the record repository.
package http

import (
	"github.com/bunpo-app/bunpo/internal/config"
	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/internal/store"
)

type Handler struct {
	records store.UserRecordRepository
	hub     *watchHub

	app config.App

	logger *logger.Logger
}

func NewHandler(records store.UserRecordRepository, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		records: records,
		hub:     newWatchHub(),
		app:     app,
		logger:  logger,
	}
}
