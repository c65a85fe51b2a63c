package forms

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	petdomain "github.com/Apurer/go-vet-office/internal/domains/pets/domain"
	recorddomain "github.com/Apurer/go-vet-office/internal/domains/records/domain"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

// PatientFields is the owner and pet block of a hosting form.
type PatientFields struct {
	OwnerName          string
	ContactNumber      string
	OwnerBirthdate     string
	PetName            string
	PetBirthday        string
	Breed              string
	Age                string
	Sex                string
	Species            string
	ReproductiveStatus string
}

// Patient converts the fields to the record patient block.
func (f PatientFields) Patient() recorddomain.Patient {
	return recorddomain.Patient{
		OwnerName:          strings.TrimSpace(f.OwnerName),
		ContactNumber:      strings.TrimSpace(f.ContactNumber),
		OwnerBirthdate:     f.OwnerBirthdate,
		PetName:            strings.TrimSpace(f.PetName),
		PetBirthday:        f.PetBirthday,
		Species:            f.Species,
		Breed:              f.Breed,
		Age:                f.Age,
		Sex:                f.Sex,
		ReproductiveStatus: f.ReproductiveStatus,
	}
}

func (f *PatientFields) clearPet() {
	f.PetName = ""
	f.PetBirthday = ""
	f.Breed = ""
	f.Age = ""
	f.Sex = ""
	f.Species = ""
	f.ReproductiveStatus = ""
}

// resetter is the part of the sibling pet selector the cascade drives.
type resetter interface {
	Reset()
}

// CascadeOption configures a Cascade.
type CascadeOption func(*Cascade)

// WithPetSelector resets sel whenever the owner changes.
func WithPetSelector(sel resetter) CascadeOption {
	return func(c *Cascade) { c.petSelector = sel }
}

// WithPetScope re-scopes src to the selected owner.
func WithPetScope(src *PetSource) CascadeOption {
	return func(c *Cascade) { c.pets = src }
}

// WithDeriver replaces the age deriver, mostly to pin "now" in tests.
func WithDeriver(d age.Deriver) CascadeOption {
	return func(c *Cascade) { c.deriver = d }
}

// WithCascadeLogger injects a structured logger.
func WithCascadeLogger(logger *slog.Logger) CascadeOption {
	return func(c *Cascade) { c.logger = logger }
}

// Cascade turns selector events into patient field writes.
type Cascade struct {
	petSelector resetter
	pets        *PetSource
	deriver     age.Deriver
	logger      *slog.Logger

	mu        sync.Mutex
	fields    PatientFields
	reference string
	owner     *OwnerCandidate
	pet       *PetCandidate
	lastOwner string
}

// NewCascade builds a cascade deriving ages against reference; an empty
// reference means the current date.
func NewCascade(reference string, opts ...CascadeOption) *Cascade {
	c := &Cascade{reference: reference}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// SelectOwner writes the owner fields. A different owner than the last one
// selected invalidates every pet field and the pet selector.
func (c *Cascade) SelectOwner(o OwnerCandidate) {
	c.mu.Lock()
	changed := c.ownerChangedLocked(o.OwnerName)
	c.fields.OwnerName = o.OwnerName
	if strings.TrimSpace(o.ContactNumber) != "" {
		c.fields.ContactNumber = o.ContactNumber
	}
	c.fields.OwnerBirthdate = o.Birthdate
	selected := o
	c.owner = &selected
	c.lastOwner = o.OwnerName
	if changed {
		c.fields.clearPet()
		c.pet = nil
	}
	c.mu.Unlock()

	if changed {
		c.logger.Debug("owner changed, pet fields cleared", slog.String("owner", o.OwnerName))
		c.resetPets(o.OwnerName)
	}
}

// TypeOwner records raw owner text. Non-empty text detaches the selected
// owner; blank text leaves the form untouched. Text naming someone else than
// the owner of the pet fields clears them and scopes the pets to that name.
func (c *Cascade) TypeOwner(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	c.mu.Lock()
	c.fields.OwnerName = text
	c.owner = nil
	changed := c.ownerChangedLocked(text)
	if changed {
		c.lastOwner = strings.TrimSpace(text)
		c.fields.clearPet()
		c.pet = nil
	}
	c.mu.Unlock()

	if changed {
		c.resetPets(text)
	}
}

// ClearOwner is the explicit removal of the owner. The pet belonged to that
// owner, so its fields go too.
func (c *Cascade) ClearOwner() {
	c.mu.Lock()
	c.fields.OwnerName = ""
	c.fields.OwnerBirthdate = ""
	c.owner = nil
	c.lastOwner = ""
	c.fields.clearPet()
	c.pet = nil
	c.mu.Unlock()

	c.resetPets("")
}

// SelectPet replaces every pet field with the candidate's values.
func (c *Cascade) SelectPet(p PetCandidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields.PetName = p.Name
	c.fields.PetBirthday = p.DateOfBirth
	c.fields.Breed = p.Breed
	c.fields.Species = p.Species
	c.fields.Sex = petdomain.NormalizeSex(p.Gender)
	c.fields.ReproductiveStatus = petdomain.NormalizeReproductiveStatus(p.ReproductiveStatus)
	c.fields.Age = c.deriveLocked(p.DateOfBirth)
	selected := p
	c.pet = &selected
}

// TypePet records raw pet text and detaches the selected pet.
func (c *Cascade) TypePet(text string) {
	if text == "" {
		return
	}
	c.mu.Lock()
	c.fields.PetName = text
	c.pet = nil
	c.mu.Unlock()
}

// ClearPet is the explicit removal of the pet.
func (c *Cascade) ClearPet() {
	c.mu.Lock()
	c.fields.clearPet()
	c.pet = nil
	c.mu.Unlock()
}

// SetReferenceDate changes the age reference and re-derives the age.
func (c *Cascade) SetReferenceDate(reference string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reference = reference
	if c.fields.PetBirthday != "" {
		c.fields.Age = c.deriveLocked(c.fields.PetBirthday)
	}
}

// Fields returns a copy of the patient fields.
func (c *Cascade) Fields() PatientFields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// SetFields overwrites fields typed by hand, such as the contact number.
func (c *Cascade) SetFields(update func(*PatientFields)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	update(&c.fields)
}

// Owner returns a copy of the attached owner candidate, nil when detached.
func (c *Cascade) Owner() *OwnerCandidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner == nil {
		return nil
	}
	o := *c.owner
	return &o
}

// Pet returns a copy of the attached pet candidate, nil when detached.
func (c *Cascade) Pet() *PetCandidate {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pet == nil {
		return nil
	}
	p := *c.pet
	return &p
}

// Reset empties every field and detaches both candidates.
func (c *Cascade) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = PatientFields{}
	c.owner = nil
	c.pet = nil
	c.lastOwner = ""
}

func (c *Cascade) deriveLocked(birth string) string {
	if strings.TrimSpace(birth) == "" {
		return ""
	}
	return c.deriver.Derive(birth, c.reference)
}

// ownerChangedLocked reports whether name differs from the owner the pet
// fields belong to. Before any owner is known, a selected pet's own owner
// is the reference.
func (c *Cascade) ownerChangedLocked(name string) bool {
	if c.lastOwner == "" && c.pet != nil {
		return !sameOwner(c.pet.OwnerName, name)
	}
	return !sameOwner(c.lastOwner, name)
}

func (c *Cascade) resetPets(owner string) {
	if c.pets != nil {
		c.pets.Scope(owner)
	}
	if c.petSelector != nil {
		c.petSelector.Reset()
	}
}
