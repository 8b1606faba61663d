package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Config is loaded once at startup and passed down explicitly
type Config struct {
	DB DBConfig

	JWTSecret          string
	JWTExpirationHours int64

	ServerPort         string
	StaticDir          string
	ExposeErrorDetails bool

	// Optional moderator account created at startup if missing
	InitialAdminLogin    string
	InitialAdminPassword string
}

// Load reads the configuration from environment variables
func Load(logger *zap.Logger) (*Config, error) {
	dbCfg, err := LoadDBConfig()
	if err != nil {
		return nil, err
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	jwtExpHours := int64(1)
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			logger.Warn("invalid JWT_EXPIRATION_HOURS, defaulting to 1", zap.String("value", raw))
		} else {
			jwtExpHours = parsed
		}
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	cfg := &Config{
		DB:                   *dbCfg,
		JWTSecret:            jwtSecret,
		JWTExpirationHours:   jwtExpHours,
		ServerPort:           serverPort,
		StaticDir:            os.Getenv("STATIC_DIR"),
		ExposeErrorDetails:   parseBool(os.Getenv("EXPOSE_ERROR_DETAILS")),
		InitialAdminLogin:    strings.TrimSpace(os.Getenv("INITIAL_ADMIN_LOGIN")),
		InitialAdminPassword: os.Getenv("INITIAL_ADMIN_PASSWORD"),
	}
	if (cfg.InitialAdminLogin == "") != (cfg.InitialAdminPassword == "") {
		return nil, fmt.Errorf("INITIAL_ADMIN_LOGIN and INITIAL_ADMIN_PASSWORD must be set together")
	}
	return cfg, nil
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}
