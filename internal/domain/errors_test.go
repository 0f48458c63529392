package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-intake/internal/domain"
)

func TestErroresDeDominio_DistinguiblesTrasEnvolver(t *testing.T) {
	sentinels := []error{domain.ErrInvalidInput, domain.ErrStorage, domain.ErrPersistence}
	cause := errors.New("causa")

	for i, s := range sentinels {
		wrapped := fmt.Errorf("%w: %w", s, cause)
		assert.ErrorIs(t, wrapped, s)
		assert.ErrorIs(t, wrapped, cause)
		for j, other := range sentinels {
			if i != j {
				assert.NotErrorIs(t, wrapped, other, "%v no debe coincidir con %v", s, other)
			}
		}
	}
}
