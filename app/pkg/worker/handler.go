package worker

import (
	"backend/identity-platform/app/database/constant/delivery"
	"backend/identity-platform/app/database/entity"
	"context"

	"go.uber.org/zap"
)

type DeliveryHandler interface {
	Handle(ctx context.Context, job *entity.DeliveryJob) error
	GetChannel() delivery.Channel
}

type DeliveryHandlerRegistry interface {
	Register(handler DeliveryHandler)
	Get(channel delivery.Channel) (DeliveryHandler, bool)
	GetAll() map[delivery.Channel]DeliveryHandler
}

type deliveryHandlerRegistry struct {
	handlers map[delivery.Channel]DeliveryHandler
	logger   *zap.Logger
}

func NewDeliveryHandlerRegistry(logger *zap.Logger) DeliveryHandlerRegistry {
	return &deliveryHandlerRegistry{
		handlers: make(map[delivery.Channel]DeliveryHandler),
		logger:   logger,
	}
}

func (r *deliveryHandlerRegistry) Register(handler DeliveryHandler) {
	channel := handler.GetChannel()
	r.handlers[channel] = handler
	r.logger.Debug("Registered delivery handler", zap.String("channel", string(channel)))
}

func (r *deliveryHandlerRegistry) Get(channel delivery.Channel) (DeliveryHandler, bool) {
	handler, exists := r.handlers[channel]
	return handler, exists
}

func (r *deliveryHandlerRegistry) GetAll() map[delivery.Channel]DeliveryHandler {
	return r.handlers
}
