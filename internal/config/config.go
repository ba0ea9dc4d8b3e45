package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	JWTTTLHours int    `envconfig:"JWT_TTL_HOURS" default:"24"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	// Twilio WhatsApp credentials for the notification dispatcher.
	// All three empty means notifications are logged instead of sent.
	TwilioAccountSID     string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppNumber string `envconfig:"TWILIO_WHATSAPP_NUMBER"`
}

func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
