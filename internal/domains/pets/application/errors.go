package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-vet-office/internal/domains/pets/domain"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid pet input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyOwner) ||
		errors.Is(err, domain.ErrFutureBirthDate) ||
		errors.Is(err, domain.ErrInvalidPetID) ||
		errors.Is(err, age.ErrUnparsable) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
