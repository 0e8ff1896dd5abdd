package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	WebhookModeSync  = "sync"
	WebhookModeKafka = "kafka"

	EventSinkPostgres   = "postgres"
	EventSinkOpenSearch = "opensearch"
	EventSinkMemory     = "memory"
	EventSinkNone       = "none"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Storage: "postgres" or "memory" (local runs and demos only)
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	PgURL         string `env:"PG_URL"`
	PgPoolMax     int    `env:"PG_POOL_MAX" envDefault:"10"`

	PayPal PayPal `envPrefix:"PAYPAL_"`

	// Webhook processing mode: "sync" (dispatch in the request) or "kafka" (buffer via Kafka)
	WebhookMode string `env:"WEBHOOK_MODE" envDefault:"sync"`

	KafkaBrokers       []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaWebhooksTopic string   `env:"KAFKA_WEBHOOKS_TOPIC" envDefault:"webhooks.paypal"`
	KafkaWebhooksDLQ   string   `env:"KAFKA_WEBHOOKS_DLQ_TOPIC" envDefault:"webhooks.paypal.dlq"`
	KafkaConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"paypal-reconciler"`

	// Audit sink for order events: "postgres", "opensearch", "memory" or "none"
	EventSink             string   `env:"EVENT_SINK" envDefault:"postgres"`
	OpensearchUrls        []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexOrders string   `env:"OPENSEARCH_INDEX_ORDERS" envDefault:"paypal-order-events"`

	// Delivery de-duplication is enabled when RedisURL is set.
	RedisURL      string        `env:"REDIS_URL"`
	DeliveryTTL   time.Duration `env:"DELIVERY_TTL" envDefault:"72h"`
	DeliveryLease time.Duration `env:"DELIVERY_LEASE" envDefault:"2m"`
}

type PayPal struct {
	BaseURL        string        `env:"BASE_URL" envDefault:"https://api-m.sandbox.paypal.com"`
	ClientID       string        `env:"CLIENT_ID"`
	ClientSecret   string        `env:"CLIENT_SECRET"`
	Timeout        time.Duration `env:"TIMEOUT" envDefault:"20s"`
	RetryAttempts  int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY" envDefault:"200ms"`
	RetryMaxDelay  time.Duration `env:"RETRY_MAX_DELAY" envDefault:"5s"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks the cross-field rules env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.PgURL == "" {
			errs = append(errs, errors.New("PG_URL is required when STORAGE_DRIVER=postgres"))
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	switch c.WebhookMode {
	case WebhookModeSync:
	case WebhookModeKafka:
		if len(c.KafkaBrokers) == 0 {
			errs = append(errs, errors.New("KAFKA_BROKERS is required when WEBHOOK_MODE=kafka"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown WEBHOOK_MODE %q", c.WebhookMode))
	}

	switch c.EventSink {
	case EventSinkNone, EventSinkMemory:
	case EventSinkPostgres:
		if c.StorageDriver != StorageDriverPostgres {
			errs = append(errs, errors.New("EVENT_SINK=postgres requires STORAGE_DRIVER=postgres"))
		}
	case EventSinkOpenSearch:
		if len(c.OpensearchUrls) == 0 {
			errs = append(errs, errors.New("OPENSEARCH_URLS is required when EVENT_SINK=opensearch"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown EVENT_SINK %q", c.EventSink))
	}

	if c.PayPal.ClientID == "" || c.PayPal.ClientSecret == "" {
		errs = append(errs, errors.New("PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET are required"))
	}

	return errors.Join(errs...)
}
