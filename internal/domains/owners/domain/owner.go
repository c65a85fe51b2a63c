package domain

import (
	"errors"
	"strings"
	"time"
)

// Owner is a client of the office. Names are not unique; the pair of
// name and contact number is what the front desk uses to tell owners apart.
type Owner struct {
	ID            int64
	Name          string
	ContactNumber string
	Birthdate     *time.Time
}

var (
	ErrEmptyName       = errors.New("owner name is required")
	ErrFutureBirthdate = errors.New("owner birthdate cannot be in the future")
	ErrInvalidOwnerID  = errors.New("owner id must not be negative")
)

// NewOwner validates the invariants and builds a new Owner.
func NewOwner(id int64, name, contactNumber string) (*Owner, error) {
	if id < 0 {
		return nil, ErrInvalidOwnerID
	}
	o := &Owner{ID: id, ContactNumber: strings.TrimSpace(contactNumber)}
	if err := o.Rename(name); err != nil {
		return nil, err
	}
	return o, nil
}

// Rename replaces the display name.
func (o *Owner) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	o.Name = name
	return nil
}

// UpdateBirthdate records the owner's birthdate; nil clears it.
func (o *Owner) UpdateBirthdate(birthdate *time.Time, now time.Time) error {
	if birthdate == nil {
		o.Birthdate = nil
		return nil
	}
	if birthdate.After(now) {
		return ErrFutureBirthdate
	}
	b := *birthdate
	o.Birthdate = &b
	return nil
}

// BirthdateString renders the birthdate as YYYY-MM-DD, or "" when unknown.
func (o *Owner) BirthdateString() string {
	if o == nil || o.Birthdate == nil {
		return ""
	}
	return o.Birthdate.Format(time.DateOnly)
}

// Clone returns a deep copy.
func (o *Owner) Clone() *Owner {
	if o == nil {
		return nil
	}
	c := *o
	if o.Birthdate != nil {
		b := *o.Birthdate
		c.Birthdate = &b
	}
	return &c
}
