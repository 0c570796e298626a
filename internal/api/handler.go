package api

import (
	"github.com/mariposahq/anchor/internal/checkin"
	"github.com/mariposahq/anchor/internal/db"
	"go.uber.org/zap"
)

type Handler struct {
	repos        *db.Repositories
	orchestrator *checkin.Orchestrator
	tracker      *checkin.Tracker
	cronSecret   string
	appSecret    string
	verifyToken  string
	logger       *zap.Logger
}

func NewHandler(
	repos *db.Repositories,
	orchestrator *checkin.Orchestrator,
	tracker *checkin.Tracker,
	cronSecret string,
	appSecret string,
	verifyToken string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		repos:        repos,
		orchestrator: orchestrator,
		tracker:      tracker,
		cronSecret:   cronSecret,
		appSecret:    appSecret,
		verifyToken:  verifyToken,
		logger:       logger,
	}
}
