package reservations

import (
	"context"
	"crypto/rand"

	"staybook/internal/app/uow"
	"staybook/internal/domain/reservation"
)

const (
	codePrefix   = "RES-"
	codeLength   = 8
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateCode produces a fresh booking code, re-drawing until the
// candidate is unused. The alphabet gives 36^8 combinations, so retries
// are all but theoretical; the loop is still unbounded rather than capped.
func (s *Service) GenerateCode(ctx context.Context) (string, error) {
	var code string
	err := s.withUnit(ctx, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		var err error
		code, err = generateCode(ctx, unit.Reservations())
		return err
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

func generateCode(ctx context.Context, repo reservation.Repository) (string, error) {
	for {
		candidate, err := randomCode()
		if err != nil {
			return "", err
		}
		existing, err := repo.FindByCode(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
}

func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return codePrefix + string(buf), nil
}
