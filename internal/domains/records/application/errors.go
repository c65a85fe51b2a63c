package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-vet-office/internal/domains/records/domain"
)

// ErrInvalidInput signals the submission violated a domain invariant.
var ErrInvalidInput = errors.New("invalid record input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnknownKind) ||
		errors.Is(err, domain.ErrMissingOwner) ||
		errors.Is(err, domain.ErrMissingPet) ||
		errors.Is(err, domain.ErrMissingDate) ||
		errors.Is(err, domain.ErrMissingDestination) ||
		errors.Is(err, domain.ErrMissingVaccine) ||
		errors.Is(err, domain.ErrMissingDiagnosis) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
