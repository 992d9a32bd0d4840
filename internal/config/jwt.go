package config

import (
	"time"
)

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

func LoadJWT() JWTConfig {
	expiresIn, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		expiresIn = 24 * time.Hour
	}

	return JWTConfig{
		Secret:    getEnv("JWT_SECRET", "secret"),
		ExpiresIn: expiresIn,
	}
}
