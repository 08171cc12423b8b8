package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Storage StorageConfig
	OAuth   OAuthConfig
	AI      AIConfig
	Session SessionConfig
}

type AppConfig struct {
	Port        string
	Env         string
	FrontendURL string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type StorageConfig struct {
	UploadDir string
}

type OAuthConfig struct {
	GitHubClientID     string
	GitHubClientSecret string
	GitHubRedirectURL  string
}

type AIConfig struct {
	GeminiAPIKey string
	Model        string
}

type SessionConfig struct {
	Secret string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 60 * time.Minute
	}

	uploadDir := viper.GetString("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	model := viper.GetString("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	frontendURL := viper.GetString("FRONTEND_REDIRECT_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	config := &Config{
		App: AppConfig{
			Port:        viper.GetString("APP_PORT"),
			Env:         viper.GetString("APP_ENV"),
			FrontendURL: frontendURL,
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Storage: StorageConfig{
			UploadDir: uploadDir,
		},
		OAuth: OAuthConfig{
			GitHubClientID:     viper.GetString("GITHUB_CLIENT_ID"),
			GitHubClientSecret: viper.GetString("GITHUB_CLIENT_SECRET"),
			GitHubRedirectURL:  viper.GetString("GITHUB_REDIRECT_URI"),
		},
		AI: AIConfig{
			GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
			Model:        model,
		},
		Session: SessionConfig{
			Secret: viper.GetString("SESSION_SECRET_KEY"),
		},
	}

	return config, nil
}
