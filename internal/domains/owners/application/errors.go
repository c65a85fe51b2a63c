package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-vet-office/internal/domains/owners/domain"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid owner input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrFutureBirthdate) ||
		errors.Is(err, domain.ErrInvalidOwnerID) ||
		errors.Is(err, age.ErrUnparsable) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
