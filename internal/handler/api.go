package handler

import (
	"github.com/urgelog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	habits    *service.HabitService
	lookups   *service.LookupService
	actions   *service.ReplacementActionService
	logs      *service.UrgeLogService
	analytics *service.AnalyticsService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB) *API {
	return &API{
		db:        db,
		habits:    service.NewHabitService(db),
		lookups:   service.NewLookupService(db),
		actions:   service.NewReplacementActionService(db),
		logs:      service.NewUrgeLogService(db),
		analytics: service.NewAnalyticsService(db),
	}
}

// Analytics exposes the analytics service so tests can inject a fixed clock.
func (a *API) Analytics() *service.AnalyticsService {
	return a.analytics
}
