package manager

import (
	"backend/identity-platform/app/database/repository"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/pkg/bcrypt"
	"backend/identity-platform/app/pkg/jwt"
	"backend/identity-platform/app/pkg/queue"
	"backend/identity-platform/app/pkg/sqs"
	"backend/identity-platform/app/pkg/verification"
)

type Managers struct {
	AuthManager AuthManager
	UserManager UserManager
}

func NewManagers(
	res runtime.Resource,
	repositories *repository.Repositories,
) *Managers {
	bcryptHasher := bcrypt.NewBcrypt(res.Config.BcryptConfig.Cost)
	hasher := &bcryptHasher

	jwtManager := jwt.NewJwt(res.Config.JwtConfig)

	verifier := verification.NewVerifier(res.Config.VerificationConfig, res.Redis)
	deliveryQueue := queue.NewRedisQueue(res.Redis.GetUniversalClient(), res.Logger)

	publisher := sqs.NewPublisherWithClient(res.SqsClient, res.Logger)

	return &Managers{
		AuthManager: NewAuthManager(res, hasher, jwtManager, publisher, repositories),
		UserManager: NewUserManager(res, hasher, verifier, deliveryQueue, publisher, repositories),
	}
}
