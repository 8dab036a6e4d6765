package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config regroupe toute la configuration de l'application, chargée depuis
// les variables d'environnement (et un fichier .env en développement)
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	URL  string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"hanzilaoshi"`

	// Secret utilisé pour signer les tokens de vérification email / reset password
	TokenSecret string `env:"TOKEN_SECRET" envDefault:"dev-secret-change-me"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
}

// LoadConfig charge la configuration depuis l'environnement.
// Le fichier .env est optionnel (absent en production)
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}

	return &cfg, nil
}
