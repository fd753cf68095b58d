package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// StoreTypeFile persists the document as a single JSON file on disk.
	StoreTypeFile = "file"

	// StoreTypeMongo persists the document in a MongoDB collection.
	StoreTypeMongo = "mongo"
)

// Config holds the global settings for the treasury engine. Guilds may
// override the cooldown and reward values through their `settings` key
// in the stored document.
type Config struct {
	StoragePath string `envconfig:"TREASURY_STORAGE_PATH" default:"./storage.json"`
	StoreType   string `envconfig:"TREASURY_STORE" default:"file" validate:"oneof=file mongo"`
	MongoURI    string `envconfig:"TREASURY_MONGODB_URI"`

	DailyCooldown  time.Duration `envconfig:"TREASURY_DAILY_COOLDOWN" default:"24h"`
	WorkCooldown   time.Duration `envconfig:"TREASURY_WORK_COOLDOWN" default:"1h"`
	WeeklyCooldown time.Duration `envconfig:"TREASURY_WEEKLY_COOLDOWN" default:"168h"`

	DailyAmount  Reward `envconfig:"TREASURY_DAILY_AMOUNT" default:"100"`
	WorkAmount   Reward `envconfig:"TREASURY_WORK_AMOUNT" default:"[10,50]"`
	WeeklyAmount Reward `envconfig:"TREASURY_WEEKLY_AMOUNT" default:"1000"`

	// UpdateCountdown is the interval at which the storage health check runs.
	UpdateCountdown time.Duration `envconfig:"TREASURY_UPDATE_COUNTDOWN" default:"1s"`

	DateLocale string `envconfig:"TREASURY_DATE_LOCALE" default:"en"`

	// RetryAttempts bounds the startup retries when the storage file fails
	// to parse. Zero retries forever.
	RetryAttempts int           `envconfig:"TREASURY_RETRY_ATTEMPTS" default:"5" validate:"gte=0"`
	RetryDelay    time.Duration `envconfig:"TREASURY_RETRY_DELAY" default:"3s"`
}

// Load reads the configuration from the environment, after loading any
// `.env` file in the working directory.
func Load() (*Config, error) {
	godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
