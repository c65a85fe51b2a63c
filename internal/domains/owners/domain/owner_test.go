package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewOwner(t *testing.T) {
	o, err := NewOwner(0, "  Ann Bell ", " 0917 000 1111 ")
	require.NoError(t, err)
	require.Equal(t, "Ann Bell", o.Name)
	require.Equal(t, "0917 000 1111", o.ContactNumber)

	_, err = NewOwner(0, " ", "")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewOwner(-1, "Ann", "")
	require.ErrorIs(t, err, ErrInvalidOwnerID)
}

func TestUpdateBirthdate(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	o, err := NewOwner(1, "Ann Bell", "")
	require.NoError(t, err)

	future := now.AddDate(0, 0, 1)
	require.ErrorIs(t, o.UpdateBirthdate(&future, now), ErrFutureBirthdate)

	born := time.Date(1980, 5, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, o.UpdateBirthdate(&born, now))
	require.Equal(t, "1980-05-02", o.BirthdateString())

	clone := o.Clone()
	require.NoError(t, o.UpdateBirthdate(nil, now))
	require.Empty(t, o.BirthdateString())
	require.Equal(t, "1980-05-02", clone.BirthdateString())
}
