package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MediaStoreConfig holds credentials for the S3-compatible media host.
type MediaStoreConfig struct {
	Region        string `mapstructure:"MEDIA_S3_REGION"`
	Bucket        string `mapstructure:"MEDIA_S3_BUCKET"`
	Endpoint      string `mapstructure:"MEDIA_S3_ENDPOINT"`
	PublicBaseURL string `mapstructure:"MEDIA_PUBLIC_BASE_URL"`
}

// Config holds application configuration.
// It is constructed once at process start and injected into the services that
// need it; business logic never reads the environment directly.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Access Token Config
	AccessTokenSecret     string
	AccessTokenExpiry     time.Duration
	AccessTokenCookieName string
	JWTIssuer             string

	// Refresh Token Config
	RefreshTokenSecret     string
	RefreshTokenExpiry     time.Duration
	RefreshTokenCookieName string

	// Media host
	Media MediaStoreConfig

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ACCESS_TOKEN_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY", "1h")
	viper.SetDefault("ACCESS_TOKEN_COOKIE_NAME", "accessToken")
	viper.SetDefault("JWT_ISSUER", "vidtube-backend")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "default_insecure_refresh_secret_please_change_this_!@#$")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY", "240h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "refreshToken")
	viper.SetDefault("MEDIA_S3_REGION", "us-east-1")
	viper.SetDefault("MEDIA_S3_BUCKET", "")
	viper.SetDefault("MEDIA_S3_ENDPOINT", "")
	viper.SetDefault("MEDIA_PUBLIC_BASE_URL", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.AccessTokenSecret = viper.GetString("ACCESS_TOKEN_SECRET")
	if cfg.AccessTokenSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: ACCESS_TOKEN_SECRET environment variable not set. Using default insecure key.")
	}

	accessExpiryStr := viper.GetString("ACCESS_TOKEN_EXPIRY")
	accessExpiry, err := time.ParseDuration(accessExpiryStr)
	if err != nil {
		accessExpiry = time.Hour
		log.Printf("Warning: Invalid value for ACCESS_TOKEN_EXPIRY ('%s'). Defaulting to %s.\n", accessExpiryStr, accessExpiry.String())
	}
	cfg.AccessTokenExpiry = accessExpiry
	cfg.AccessTokenCookieName = viper.GetString("ACCESS_TOKEN_COOKIE_NAME")

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "default_insecure_refresh_secret_please_change_this_!@#$" {
		log.Println("Warning: REFRESH_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY")
	refreshExpiry, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiry = time.Hour * 24 * 10
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiry.String())
	}
	cfg.RefreshTokenExpiry = refreshExpiry
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")

	cfg.Media = MediaStoreConfig{
		Region:        viper.GetString("MEDIA_S3_REGION"),
		Bucket:        viper.GetString("MEDIA_S3_BUCKET"),
		Endpoint:      viper.GetString("MEDIA_S3_ENDPOINT"),
		PublicBaseURL: viper.GetString("MEDIA_PUBLIC_BASE_URL"),
	}
	if cfg.Media.Bucket == "" {
		log.Println("Warning: MEDIA_S3_BUCKET not set. Media uploads will not function.")
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}

	return cfg, nil
}
