package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST,notEmpty"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,required"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// StaffRoster is the comma-separated list of staff ids allowed to act.
	StaffRoster []string `env:"STAFF_ROSTER,notEmpty" envSeparator:","`
	JWTSecret   string   `env:"JWT_SECRET,notEmpty"`
	JWTIssuer   string   `env:"JWT_ISSUER"`

	UnclaimedThreshold time.Duration `env:"UNCLAIMED_THRESHOLD" envDefault:"30m"`
	WatchdogSchedule   string        `env:"WATCHDOG_SCHEDULE" envDefault:"0 * * * * *"`
	HeartbeatSchedule  string        `env:"HEARTBEAT_SCHEDULE" envDefault:"*/10 * * * * *"`
	ViewerStaleAfter   time.Duration `env:"VIEWER_STALE_AFTER" envDefault:"45s"`
	ViewerQueueSize    int           `env:"VIEWER_QUEUE_SIZE" envDefault:"64"`

	VAPIDPublicKey  string        `env:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string        `env:"VAPID_PRIVATE_KEY"`
	VAPIDSubject    string        `env:"VAPID_SUBJECT" envDefault:"mailto:printdesk@localhost"`
	PushTimeout     time.Duration `env:"PUSH_TIMEOUT" envDefault:"10s"`
	PushQueueSize   int           `env:"PUSH_QUEUE_SIZE" envDefault:"256"`
	// OrderURL formats the link in push notifications; %s is the order id.
	OrderURL string `env:"ORDER_URL" envDefault:"/orders/%s"`

	KafkaHost                []string `env:"KAFKA_HOST" envSeparator:","`
	KafkaConsumerGroup       string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"printdesk"`
	KafkaOrderSubmittedTopic string   `env:"KAFKA_ORDER_SUBMITTED_TOPIC" envDefault:"orders.submitted"`
	KafkaOrderChangedTopic   string   `env:"KAFKA_ORDER_CHANGED_TOPIC" envDefault:"orders.changed"`

	OTLPEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1"`
	Environment     string  `env:"ENVIRONMENT" envDefault:"development"`
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return u.String()
}

// PushEnabled reports whether VAPID keys are configured.
func (c Config) PushEnabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

// KafkaEnabled reports whether brokers are configured.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaHost) > 0
}
