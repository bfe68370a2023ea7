package worker

import (
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/service"
	"context"
	"sync"

	"go.uber.org/zap"
)

type Server runtime.Resource

func (s *Server) Start(ctx context.Context) {
	res := runtime.Resource(*s)

	workerConfig := res.Config.WorkerConfig

	services := service.NewServices(res, workerConfig)

	s.Logger.Info("Starting dedicated worker server")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := services.MaintenanceService.Start(ctx); err != nil {
			s.Logger.Error("Maintenance service failed", zap.Error(err))
		}
	}()

	// Worker service blocks until context is cancelled
	if err := services.WorkerService.Start(ctx); err != nil {
		s.Logger.Error("Worker service failed", zap.Error(err))
	}

	wg.Wait()
}
