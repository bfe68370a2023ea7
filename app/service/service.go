package service

import (
	"backend/identity-platform/app/internal/config"
	"backend/identity-platform/app/internal/runtime"

	"go.uber.org/zap"
)

type Services struct {
	WorkerService      *WorkerService
	MaintenanceService *MaintenanceService
}

func NewServices(res runtime.Resource, workerConfig config.WorkerConfig) *Services {
	workerService := NewWorkerService(res, workerConfig)

	maintenanceService, err := NewMaintenanceService(res, workerConfig)
	if err != nil {
		res.Logger.Error("Failed to create maintenance service", zap.Error(err))
		panic(err)
	}

	return &Services{
		WorkerService:      workerService,
		MaintenanceService: maintenanceService,
	}
}
