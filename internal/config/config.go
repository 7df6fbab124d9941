package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"PG_MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"PG_MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"PG_CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"PG_CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@giftscape.studio"`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"GiftScape Studio"`
}

type Gemini struct {
	APIKey     string `yaml:"GEMINI_API_KEY" env:"GEMINI_API_KEY" env-default:""`
	BaseURL    string `yaml:"GEMINI_BASE_URL" env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com"`
	TextModel  string `yaml:"GEMINI_TEXT_MODEL" env:"GEMINI_TEXT_MODEL" env-default:"gemini-2.5-flash"`
	ImageModel string `yaml:"GEMINI_IMAGE_MODEL" env:"GEMINI_IMAGE_MODEL" env-default:"gemini-2.5-flash-image-preview"`
	MaxRetries uint64 `yaml:"GEMINI_MAX_RETRIES" env:"GEMINI_MAX_RETRIES" env-default:"3"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type Checkout struct {
	ShippingFee    float64       `yaml:"SHIPPING_FEE" env:"SHIPPING_FEE" env-default:"50"`
	DiscountRate   float64       `yaml:"DISCOUNT_RATE" env:"DISCOUNT_RATE" env-default:"0.10"`
	ReferralBonus  int           `yaml:"REFERRAL_BONUS" env:"REFERRAL_BONUS" env-default:"50"`
	OTPTTL         time.Duration `yaml:"OTP_TTL" env:"OTP_TTL" env-default:"10m"`
	OTPMaxAttempts int           `yaml:"OTP_MAX_ATTEMPTS" env:"OTP_MAX_ATTEMPTS" env-default:"5"`
}

type Reward struct {
	PollInterval time.Duration `yaml:"REWARD_POLL_INTERVAL" env:"REWARD_POLL_INTERVAL" env-default:"1s"`
}

type Telemetry struct {
	Enabled          bool   `yaml:"TRACING_ENABLED" env:"TRACING_ENABLED" env-default:"false"`
	ExporterEndpoint string `yaml:"EXPORTER_ENDPOINT" env:"EXPORTER_ENDPOINT" env-default:"http://localhost:4318/v1/traces"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Gemini       Gemini       `yaml:"gemini"`
	Security     Security     `yaml:"security"`
	Checkout     Checkout     `yaml:"checkout"`
	Reward       Reward       `yaml:"reward"`
	Telemetry    Telemetry    `yaml:"telemetry"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {

			log.Fatal("Config path is not set")

		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {

		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}
