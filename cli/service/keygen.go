package service

import (
	"github.com/NilFoundation/energyctl/internal/wallet"
)

// GenerateNewKey replaces the service identity with a freshly generated key
func (s *Service) GenerateNewKey() error {
	w, err := wallet.Generate()
	if err != nil {
		return err
	}

	s.wallet = w
	return nil
}

// GenerateKeyFromHex sets the service identity from a hexadecimal secret key
func (s *Service) GenerateKeyFromHex(hexKey string) error {
	w, err := wallet.FromHex(hexKey)
	if err != nil {
		return err
	}

	s.wallet = w
	return nil
}

// GetPrivateKey returns the secret key in hexadecimal format
func (s *Service) GetPrivateKey() string {
	return s.wallet.PrivateKeyHex()
}

// GetKeyPEM returns the identity in the wallet key file format
func (s *Service) GetKeyPEM() []byte {
	return s.wallet.PEM()
}

// LoadKeyPEM sets the service identity from a wallet key file
func (s *Service) LoadKeyPEM(path string) error {
	w, err := wallet.LoadPEM(path)
	if err != nil {
		return err
	}

	s.wallet = w
	return nil
}
