package runtime

import (
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"backend/identity-platform/app/internal/config"
	"backend/identity-platform/app/pkg/db"
	"backend/identity-platform/app/pkg/redis"
	"backend/identity-platform/app/pkg/sqs"
)

type Clients struct {
}

type Resource struct {
	Config     config.ApplicationConfig
	Logger     *zap.Logger
	DB         *db.DB
	Redis      redis.Redis
	HttpClient *resty.Client
	SqsClient  *sqs.Client
	Clients    Clients
}
