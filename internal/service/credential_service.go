package service

import (
	"pagfx-engine/config"
	"pagfx-engine/internal/core/domain"
	"pagfx-engine/pkg/apperror"
)

// CredentialServiceImpl implements ports.CredentialService from static
// configuration. The engine never interprets these values; it only hands
// them to the admin surface.
type CredentialServiceImpl struct {
	cfg config.CredentialsConfig
}

// NewCredentialService creates a new CredentialServiceImpl.
func NewCredentialService(cfg config.CredentialsConfig) *CredentialServiceImpl {
	return &CredentialServiceImpl{cfg: cfg}
}

// Get resolves the credential set for one environment.
func (s *CredentialServiceImpl) Get(env domain.Environment) (*domain.Credentials, error) {
	switch env {
	case domain.EnvironmentDevelopment:
		return s.build(domain.EnvironmentDevelopment, s.cfg.Development), nil
	case domain.EnvironmentProduction:
		return s.build(domain.EnvironmentProduction, s.cfg.Production), nil
	default:
		return nil, apperror.Validation("Ambiente inválido")
	}
}

// All returns both environment credential sets.
func (s *CredentialServiceImpl) All() []domain.Credentials {
	return []domain.Credentials{
		*s.build(domain.EnvironmentDevelopment, s.cfg.Development),
		*s.build(domain.EnvironmentProduction, s.cfg.Production),
	}
}

func (s *CredentialServiceImpl) build(env domain.Environment, pair config.CredentialPair) *domain.Credentials {
	return &domain.Credentials{
		Environment: env,
		APIKey:      pair.APIKey,
		APISecret:   pair.APISecret,
		MerchantID:  pair.MerchantID,
	}
}
