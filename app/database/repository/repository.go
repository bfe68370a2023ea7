package repository

import (
	"backend/identity-platform/app/internal/runtime"
)

type Repositories struct {
	UserRepository     UserRepository
	ProfileRepository  ProfileRepository
	SessionRepository  SessionRepository
	DeliveryRepository DeliveryRepository
}

func NewRepositories(res runtime.Resource) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(res),
		ProfileRepository:  NewProfileRepository(res),
		SessionRepository:  NewSessionRepository(res),
		DeliveryRepository: NewDeliveryRepository(res),
	}
}
