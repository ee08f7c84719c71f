package services

import (
	"context"
	"sync"
	"time"

	"commuteai/internal/domain"
	"commuteai/internal/utils"
)

// HealthChecker probes one external dependency.
type HealthChecker interface {
	HealthCheck(ctx context.Context) domain.ServiceHealth
}

// HealthReport is the body of GET /health.
type HealthReport struct {
	Service        string               `json:"service"`
	Version        string               `json:"version"`
	Timestamp      time.Time            `json:"timestamp"`
	Healthy        bool                 `json:"healthy"`
	Database       domain.ServiceHealth `json:"database"`
	RoutingService domain.ServiceHealth `json:"routing_service"`
	AIAgents       domain.ServiceHealth `json:"ai_agents_service"`
}

type HealthService struct {
	Service string
	Version string
	PingDB  func(ctx context.Context) error
	Routing HealthChecker
	AI      HealthChecker
}

// Check runs the three probes in parallel.
func (s HealthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Service:   s.Service,
		Version:   s.Version,
		Timestamp: utils.NowUTC(),
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		report.Database = s.checkDB(ctx)
	}()
	go func() {
		defer wg.Done()
		report.RoutingService = probe(ctx, s.Routing, "routing client not configured")
	}()
	go func() {
		defer wg.Done()
		report.AIAgents = probe(ctx, s.AI, "AI-agents client not configured")
	}()
	wg.Wait()

	report.Healthy = report.Database.Healthy && report.RoutingService.Healthy && report.AIAgents.Healthy
	return report
}

func (s HealthService) checkDB(ctx context.Context) domain.ServiceHealth {
	if s.PingDB == nil {
		return domain.ServiceHealth{Healthy: false, Message: "database not configured"}
	}
	if err := s.PingDB(ctx); err != nil {
		return domain.ServiceHealth{Healthy: false, Message: "database check failed: " + err.Error()}
	}
	return domain.ServiceHealth{Healthy: true, Message: "database connection is healthy"}
}

func probe(ctx context.Context, c HealthChecker, missing string) domain.ServiceHealth {
	if c == nil {
		return domain.ServiceHealth{Healthy: false, Message: missing}
	}
	return c.HealthCheck(ctx)
}
