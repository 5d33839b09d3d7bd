package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/filex"
)

const pemBlockType = "PRIVATE KEY"

// loadOrCreateKey returns the process signing key. On first run it generates
// a fresh RSA keypair of keySize bits and persists it to keyFile as
// unencrypted PKCS#8 PEM; afterwards it loads the stored key. An inaccessible
// key directory or a corrupt key file is a fatal startup condition.
func loadOrCreateKey(keyFile string, keySize int) (*rsa.PrivateKey, error) {
	if err := filex.EnsureDirAccessible(keyFile); err != nil {
		return nil, fmt.Errorf("key directory is unavailable: %w", err)
	}

	data, err := os.ReadFile(keyFile)
	if errors.Is(err, os.ErrNotExist) {
		return generateAndSaveKey(keyFile, keySize)
	}
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	return parseKey(data)
}

func generateAndSaveKey(keyFile string, keySize int) (*rsa.PrivateKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, keySize)
	if err != nil {
		return nil, fmt.Errorf("generating keypair: %w", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("encoding key: %w", err)
	}

	block := &pem.Block{Type: pemBlockType, Bytes: der}
	if err := os.WriteFile(keyFile, pem.EncodeToMemory(block), 0o600); err != nil {
		return nil, fmt.Errorf("saving key file: %w", err)
	}

	return key, nil
}

func parseKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemBlockType {
		return nil, common.ErrCorruptKeyFile
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptKeyFile, err)
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, common.ErrCorruptKeyFile
	}
	return key, nil
}
