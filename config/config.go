package config

import (
	"log"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	DBURL     string `env:"DB_URL,required"`
	JWTSecret string `env:"JWT_SECRET,required"`
	AppURL    string `env:"APP_URL" envDefault:"http://localhost:5173"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`

	Stripe   Stripe   `envPrefix:"STRIPE_"`
	Commerce Commerce `envPrefix:"COMMERCE_"`
	Google   Google   `envPrefix:"GOOGLE_"`
}

type Stripe struct {
	SecretKey string `env:"SECRET_KEY,required"`
	// Confirmation can take longer than a plain API call when the
	// gateway runs risk checks, so it gets its own bound.
	ConfirmTimeoutSec int `env:"CONFIRM_TIMEOUT_SEC" envDefault:"60"`
}

type Commerce struct {
	OrderServiceURL  string `env:"ORDER_SERVICE_URL,required"`
	VerifyServiceURL string `env:"VERIFY_SERVICE_URL,required"`
	TimeoutSec       int    `env:"TIMEOUT_SEC" envDefault:"30"`
}

type Google struct {
	ClientID         string `env:"CLIENT_ID"`
	ClientSecret     string `env:"CLIENT_SECRET"`
	RedirectURL      string `env:"REDIRECT_URL"`
	FrontendRedirect string `env:"FRONTEND_REDIRECT"`
}

var C Config

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	if err := env.Parse(&C); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
}
