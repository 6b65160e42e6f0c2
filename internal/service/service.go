// Package service implements the assignment, ingest and aggregation engines.
package service

import (
	"github.com/insightdrift/insightdrift/internal/config"
	store "github.com/insightdrift/insightdrift/internal/repository"
)

type Service struct {
	store  store.Store
	config *config.Config
}

func New(store store.Store, cfg *config.Config) *Service {
	return &Service{
		store:  store,
		config: cfg,
	}
}
