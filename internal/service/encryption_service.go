package service

import (
	"crypto/aes"
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrCryptoFailure = errors.New("ошибка шифрования данных")

// EncryptionService обратимо шифрует номера карт (AES, Base64).
// Шифрование детерминированное: уникальность номера карты проверяется
// по зашифрованной форме, поэтому один и тот же номер обязан давать
// один и тот же шифротекст.
type EncryptionService struct {
	key []byte
}

func NewEncryptionService(key string) (*EncryptionService, error) {
	if len(key) != 16 {
		return nil, fmt.Errorf("ключ шифрования должен быть длиной 16 байт, получено %d", len(key))
	}
	return &EncryptionService{key: []byte(key)}, nil
}

func (s *EncryptionService) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCryptoFailure, err)
	}

	// Дополнение PKCS#7 до границы блока.
	data := []byte(plaintext)
	padding := aes.BlockSize - len(data)%aes.BlockSize
	for i := 0; i < padding; i++ {
		data = append(data, byte(padding))
	}

	ciphertext := make([]byte, len(data))
	for i := 0; i < len(data); i += aes.BlockSize {
		block.Encrypt(ciphertext[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (s *EncryptionService) Decrypt(encrypted string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCryptoFailure, err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: некорректная длина шифротекста %d", ErrCryptoFailure, len(ciphertext))
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCryptoFailure, err)
	}

	plaintext := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += aes.BlockSize {
		block.Decrypt(plaintext[i:i+aes.BlockSize], ciphertext[i:i+aes.BlockSize])
	}

	padding := int(plaintext[len(plaintext)-1])
	if padding == 0 || padding > aes.BlockSize || padding > len(plaintext) {
		return "", fmt.Errorf("%w: некорректное дополнение", ErrCryptoFailure)
	}
	for i := len(plaintext) - padding; i < len(plaintext); i++ {
		if int(plaintext[i]) != padding {
			return "", fmt.Errorf("%w: некорректное дополнение", ErrCryptoFailure)
		}
	}

	return string(plaintext[:len(plaintext)-padding]), nil
}
