package config

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	ctxutil "backend/identity-platform/app/pkg/util/context"
)

// bindEnv binds an environment variable with an optional default value
func bindEnv(configKey, envKey string, defaultValue ...interface{}) {
	if len(defaultValue) > 0 {
		viper.SetDefault(configKey, defaultValue[0])
	}
	viper.BindEnv(configKey, envKey)
}

type ApplicationConfig struct {
	ServerConfig       ServerConfig       `mapstructure:"server"`
	DatabaseConfig     DatabaseConfig     `mapstructure:"database"`
	RedisConfig        RedisConfig        `mapstructure:"redis"`
	RouterConfig       RouterConfig       `mapstructure:"router"`
	WorkerConfig       WorkerConfig       `mapstructure:"worker"`
	AwsConfig          AwsConfig          `mapstructure:"aws"`
	SmsConfig          SmsConfig          `mapstructure:"sms"`
	MailConfig         MailConfig         `mapstructure:"mail"`
	VerificationConfig VerificationConfig `mapstructure:"verification"`
	AdminConfig        AdminConfig        `mapstructure:"admin"`
	BcryptConfig       BcryptConfig       `mapstructure:"bcrypt"`
	JwtConfig          JwtConfig          `mapstructure:"jwt"`
}

func ReadApplicationConfig(env ctxutil.AppMode, logger *zap.Logger) (cfg ApplicationConfig, err error) {
	if env == "" {
		env = ctxutil.AppModeLocal
	}
	confFileName := fmt.Sprintf("config-%s", env)

	viper.SetConfigName(confFileName)
	viper.SetConfigType("yaml")

	configPath := "./config"
	if env == ctxutil.AppModeTest {
		configPath = "../../../config"
	}
	viper.AddConfigPath(configPath)
	// For unit tests
	viper.AddConfigPath("../../../../config")

	if err := viper.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("error reading config file: %v", err)
	} else {
		logger.Info(
			"using config",
			zap.String("file", confFileName), // viper.ConfigFileUsed()
		)
	}
	viper.AutomaticEnv()

	// Server
	bindEnv("server.port", "SERVER_PORT")

	// Database
	bindEnv("database.protocol", "DB_PROTOCOL")
	bindEnv("database.url", "DB_URL")
	bindEnv("database.replica_url", "DB_REPLICA_URL")
	bindEnv("database.name", "DB_NAME")
	bindEnv("database.port", "DB_PORT")
	bindEnv("database.username", "DB_USERNAME")
	bindEnv("database.password", "DB_PASSWORD")
	bindEnv("database.ssl_mode", "SSL_MODE")
	bindEnv("database.max_db_conns", "DB_MAX_DB_CONNS")
	bindEnv("database.max_idle_db_conns", "DB_MAX_IDLE_DB_CONNS")
	bindEnv("database.max_conn_lifetime", "DB_MAX_CONN_LIFETIME")
	bindEnv("database.max_conn_idle_time", "DB_MAX_CONN_IDLE_TIME")

	// Redis
	bindEnv("redis.hosts", "REDIS_HOSTS")
	bindEnv("redis.pool_size", "REDIS_POOL_SIZE")
	bindEnv("redis.min_idle_conns", "REDIS_MIN_IDLE_CONNS")
	bindEnv("redis.max_idle_conns", "REDIS_MAX_IDLE_CONNS")
	bindEnv("redis.write_timeout", "REDIS_WRITE_TIMEOUT")
	bindEnv("redis.read_timeout", "REDIS_READ_TIMEOUT")
	bindEnv("redis.conn_max_lifetime", "REDIS_CONN_MAX_LIFETIME")

	// AWS
	bindEnv("aws.region", "AWS_REGION")
	bindEnv("aws.endpoint", "AWS_ENDPOINT")
	bindEnv("aws.sqs.queue_urls.sqs_audit_event_queue", "AWS_SQS_AUDIT_EVENT_QUEUE_URL")
	bindEnv("aws.sqs.message.max_retries", "AWS_SQS_MAX_RETRIES")
	bindEnv("aws.sqs.message.base_retry_delay", "AWS_SQS_BASE_RETRY_DELAY")
	bindEnv("aws.sqs.message.max_retry_delay", "AWS_SQS_MAX_RETRY_DELAY")

	// Worker
	bindEnv("worker.pool_size", "WORKER_POLL_SIZE", 2)
	bindEnv("worker.health_monitor_interval", "WORKER_HEALTH_MONITOR_INTERVAL", "2m")

	// Router
	bindEnv("router.allowed_origins", "ROUTER_ALLOWED_ORIGINS")
	bindEnv("router.allowed_headers", "ROUTER_ALLOWED_HEADERS")

	// SMS gateway
	bindEnv("sms.base_api", "SMS_BASE_API")
	bindEnv("sms.api_key", "SMS_API_KEY")
	bindEnv("sms.sender", "SMS_SENDER")
	bindEnv("sms.timeout", "SMS_TIMEOUT", "10s")
	bindEnv("sms.use_mock", "SMS_USE_MOCK")

	// Mail provider
	bindEnv("mail.base_api", "MAIL_BASE_API")
	bindEnv("mail.api_key", "MAIL_API_KEY")
	bindEnv("mail.sender", "MAIL_SENDER")
	bindEnv("mail.timeout", "MAIL_TIMEOUT", "10s")
	bindEnv("mail.use_mock", "MAIL_USE_MOCK")

	// Verification codes
	bindEnv("verification.code_length", "VERIFICATION_CODE_LENGTH", 6)
	bindEnv("verification.code_ttl", "VERIFICATION_CODE_TTL", "5m")
	bindEnv("verification.send_per_minute", "VERIFICATION_SEND_PER_MINUTE", 1)
	bindEnv("verification.max_attempts", "VERIFICATION_MAX_ATTEMPTS", 5)

	// Bcrypt
	bindEnv("bcrypt.cost", "BCRYPT_COST")

	// JWT
	bindEnv("jwt.issuer", "JWT_ISSUER")
	bindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	bindEnv("jwt.access_expiration", "JWT_ACCESS_EXPIRATION", "60m")
	bindEnv("jwt.refresh_expiration", "JWT_REFRESH_EXPIRATION", "168h")
	bindEnv("jwt.rotate_refresh", "JWT_ROTATE_REFRESH", true)

	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %s", err.Error())
	}

	return cfg, err
}
