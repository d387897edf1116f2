package config

import (
	"github.com/spf13/viper"
)

// The service runs in EKS; DB, AWS and queue settings arrive as pod
// environment variables. Locally they point at docker-compose and LocalStack.

type Config struct {
	DBHost            string `mapstructure:"DB_HOST"`
	DBPort            string `mapstructure:"DB_PORT"`
	DBUser            string `mapstructure:"DB_USER"`
	DBPassword        string `mapstructure:"DB_PASSWORD"`
	DBName            string `mapstructure:"DB_NAME"`
	ServerPort        string `mapstructure:"SERVER_PORT"`
	AWSRegion         string `mapstructure:"AWS_REGION"`
	AWSEndpoint       string `mapstructure:"AWS_ENDPOINT"`
	ReportSQSQueueURL string `mapstructure:"REPORT_SQS_QUEUE_URL"`
	EmailSender       string `mapstructure:"EMAIL_SENDER"`
	RecordSourceURL   string `mapstructure:"RECORD_SOURCE_URL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	IsLocalDev        bool   `mapstructure:"IS_LOCAL_DEV"`
	OtelExporter      string `mapstructure:"OTEL_EXPORTER"`
	OtelEndpoint      string `mapstructure:"OTEL_ENDPOINT"`
	WorkerConcurrency int    `mapstructure:"WORKER_CONCURRENCY"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	v := viper.New()
	v.SetDefault("DB_HOST", "db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "sla_db")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ENDPOINT", "http://localstack:4566")
	v.SetDefault("REPORT_SQS_QUEUE_URL", "http://localstack:4566/000000000000/sla-report-queue")
	v.SetDefault("EMAIL_SENDER", "reports@worklyhub.com")
	v.SetDefault("RECORD_SOURCE_URL", "http://localhost:8080")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("IS_LOCAL_DEV", false)
	v.SetDefault("OTEL_EXPORTER", "otlp")
	v.SetDefault("OTEL_ENDPOINT", "jaeger:4317")
	v.SetDefault("WORKER_CONCURRENCY", 10)

	// Read in environment variables that match the keys.
	v.AutomaticEnv()

	err = v.Unmarshal(&config)
	return
}

// DatabaseURL builds the postgres URL used by the pgx driver and migrations.
func (c Config) DatabaseURL() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=disable"
}
