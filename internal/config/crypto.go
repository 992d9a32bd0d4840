package config

import (
	"github.com/sirupsen/logrus"
)

type CryptoConfig struct {
	// EncryptionKey — ключ AES для обратимого шифрования номеров карт,
	// строго 16 байт.
	EncryptionKey string
}

func LoadCrypto() CryptoConfig {
	cfg := CryptoConfig{
		EncryptionKey: getEnv("CARD_ENCRYPTION_KEY", "defaultCardKey16"),
	}

	logrus.Info("Конфигурация криптографических ключей загружена")

	return cfg
}
