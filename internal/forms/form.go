package forms

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	recorddomain "github.com/Apurer/go-vet-office/internal/domains/records/domain"
	"github.com/Apurer/go-vet-office/internal/selector"
	"github.com/Apurer/go-vet-office/internal/selector/dom"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

// ErrInvalidDate is returned when a form date cannot be parsed.
var ErrInvalidDate = errors.New("invalid form date")

// Details is the kind-specific block of a form.
type Details interface {
	Kind() recorddomain.Kind
	record(date time.Time, patient recorddomain.Patient) recorddomain.Record
}

// AppointmentDetails is the appointment-only part of the form.
type AppointmentDetails struct {
	Reason       string
	Veterinarian string
	WalkIn       bool
}

func (AppointmentDetails) Kind() recorddomain.Kind { return recorddomain.KindAppointment }

func (d AppointmentDetails) record(date time.Time, p recorddomain.Patient) recorddomain.Record {
	return recorddomain.Appointment{Patient: p, ScheduledAt: date, Reason: d.Reason, Veterinarian: d.Veterinarian, WalkIn: d.WalkIn}
}

// MedicalDetails is the medical-record-only part of the form.
type MedicalDetails struct {
	Weight    string
	Diagnosis string
	Treatment string
	Remarks   string
}

func (MedicalDetails) Kind() recorddomain.Kind { return recorddomain.KindMedicalRecord }

func (d MedicalDetails) record(date time.Time, p recorddomain.Patient) recorddomain.Record {
	return recorddomain.MedicalRecord{Patient: p, VisitDate: date, Weight: d.Weight, Diagnosis: d.Diagnosis, Treatment: d.Treatment, Remarks: d.Remarks}
}

// ShippingDetails is the shipping-permit-only part of the form.
type ShippingDetails struct {
	Destination string
	Carrier     string
	Documents   []string
	Remarks     string
}

func (ShippingDetails) Kind() recorddomain.Kind { return recorddomain.KindShippingPermit }

func (d ShippingDetails) record(date time.Time, p recorddomain.Patient) recorddomain.Record {
	return recorddomain.ShippingPermit{
		Patient:     p,
		IssueDate:   date,
		Destination: d.Destination,
		Carrier:     d.Carrier,
		Documents:   append([]string(nil), d.Documents...),
		Remarks:     d.Remarks,
	}
}

// VaccinationDetails is the vaccination-only part of the form.
type VaccinationDetails struct {
	Vaccines    []string
	BatchNumber string
	Drive       string
	Remarks     string
}

func (VaccinationDetails) Kind() recorddomain.Kind { return recorddomain.KindVaccination }

func (d VaccinationDetails) record(date time.Time, p recorddomain.Patient) recorddomain.Record {
	return recorddomain.Vaccination{
		Patient:         p,
		VaccinationDate: date,
		Vaccines:        append([]string(nil), d.Vaccines...),
		BatchNumber:     d.BatchNumber,
		Drive:           d.Drive,
		Remarks:         d.Remarks,
	}
}

type formConfig struct {
	profiles selector.Profiles
	widget   []selector.Option
	owner    []selector.Option
	pet      []selector.Option
	deriver  age.Deriver
	logger   *slog.Logger
}

// Option configures a Form.
type Option func(*formConfig)

// WithProfiles sets the owner and pet selector options.
func WithProfiles(p selector.Profiles) Option {
	return func(c *formConfig) { c.profiles = p }
}

// WithSelectorOptions passes options to both selectors. Element bindings
// differ per selector and go through WithOwnerDOM and WithPetDOM.
func WithSelectorOptions(opts ...selector.Option) Option {
	return func(c *formConfig) { c.widget = append(c.widget, opts...) }
}

// WithOwnerDOM binds the owner selector to its own root and panel.
func WithOwnerDOM(doc *dom.Document, root, panel *dom.Element) Option {
	return func(c *formConfig) { c.owner = append(c.owner, selector.WithDOM(doc, root, panel)) }
}

// WithPetDOM binds the pet selector to its own root and panel.
func WithPetDOM(doc *dom.Document, root, panel *dom.Element) Option {
	return func(c *formConfig) { c.pet = append(c.pet, selector.WithDOM(doc, root, panel)) }
}

// WithAgeDeriver pins the age clock used when the form has no date.
func WithAgeDeriver(d age.Deriver) Option {
	return func(c *formConfig) { c.deriver = d }
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *formConfig) { c.logger = logger }
}

// Form hosts an owner selector, a pet selector and the cascade between them.
type Form struct {
	Owner *selector.Widget[OwnerCandidate]
	Pet   *selector.Widget[PetCandidate]

	cascade *Cascade
	pets    *PetSource
	details Details
	date    string
}

// NewAppointmentForm opens an appointment form dated date.
func NewAppointmentForm(dir Directory, date string, details AppointmentDetails, opts ...Option) (*Form, error) {
	return newForm(dir, date, details, opts...)
}

// NewMedicalRecordForm opens a medical record form for a visit on date.
func NewMedicalRecordForm(dir Directory, date string, details MedicalDetails, opts ...Option) (*Form, error) {
	return newForm(dir, date, details, opts...)
}

// NewShippingPermitForm opens a shipping permit form issued on date.
func NewShippingPermitForm(dir Directory, date string, details ShippingDetails, opts ...Option) (*Form, error) {
	return newForm(dir, date, details, opts...)
}

// NewVaccinationForm opens a vaccination form for a drive held on date.
func NewVaccinationForm(dir Directory, date string, details VaccinationDetails, opts ...Option) (*Form, error) {
	return newForm(dir, date, details, opts...)
}

// NewForm opens the form matching kind with empty details.
func NewForm(kind recorddomain.Kind, dir Directory, date string, opts ...Option) (*Form, error) {
	switch kind {
	case recorddomain.KindAppointment:
		return NewAppointmentForm(dir, date, AppointmentDetails{}, opts...)
	case recorddomain.KindMedicalRecord:
		return NewMedicalRecordForm(dir, date, MedicalDetails{}, opts...)
	case recorddomain.KindShippingPermit:
		return NewShippingPermitForm(dir, date, ShippingDetails{}, opts...)
	case recorddomain.KindVaccination:
		return NewVaccinationForm(dir, date, VaccinationDetails{}, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", recorddomain.ErrUnknownKind, kind)
	}
}

func newForm(dir Directory, date string, details Details, opts ...Option) (*Form, error) {
	if dir == nil {
		return nil, errors.New("forms: nil directory")
	}
	cfg := formConfig{profiles: selector.DefaultProfiles()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := cfg.profiles.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(date) != "" {
		if _, err := age.Parse(date); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDate, err)
		}
	}

	shared := append([]selector.Option{selector.WithLogger(cfg.logger)}, cfg.widget...)
	ownerOpts := append(append([]selector.Option(nil), shared...), cfg.owner...)
	petOpts := append(append([]selector.Option(nil), shared...), cfg.pet...)
	pets := NewPetSource(dir)
	f := &Form{
		Owner:   selector.New(dir.SearchOwners, cfg.profiles.Owner, ownerOpts...),
		Pet:     selector.New(pets.Search, cfg.profiles.Pet, petOpts...),
		pets:    pets,
		details: details,
		date:    date,
	}
	f.cascade = NewCascade(f.reference(cfg.profiles.Pet),
		WithPetSelector(f.Pet),
		WithPetScope(pets),
		WithDeriver(cfg.deriver),
		WithCascadeLogger(cfg.logger),
	)

	f.Owner.OnSelect(f.cascade.SelectOwner)
	f.Owner.OnInput(f.cascade.TypeOwner)
	f.Owner.OnClear(f.cascade.ClearOwner)
	f.Pet.OnSelect(f.cascade.SelectPet)
	f.Pet.OnInput(f.cascade.TypePet)
	f.Pet.OnClear(f.cascade.ClearPet)
	return f, nil
}

// reference is the form date, else the pet profile's reference date.
func (f *Form) reference(pet selector.Options) string {
	if strings.TrimSpace(f.date) != "" {
		return f.date
	}
	return pet.ReferenceDate
}

// Kind reports which record the form submits.
func (f *Form) Kind() recorddomain.Kind { return f.details.Kind() }

// Date returns the form date.
func (f *Form) Date() string { return f.date }

// SetDate changes the form date and re-derives the pet age against it.
func (f *Form) SetDate(date string) error {
	if _, err := age.Parse(date); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	f.date = date
	f.cascade.SetReferenceDate(date)
	return nil
}

// SetDetails replaces the kind-specific block. The kind cannot change.
func (f *Form) SetDetails(d Details) error {
	if d == nil || d.Kind() != f.details.Kind() {
		return fmt.Errorf("%w: form is %s", recorddomain.ErrUnknownKind, f.details.Kind())
	}
	f.details = d
	return nil
}

// Fields returns the patient fields.
func (f *Form) Fields() PatientFields { return f.cascade.Fields() }

// SetContactNumber writes the contact number typed by hand.
func (f *Form) SetContactNumber(number string) {
	f.cascade.SetFields(func(p *PatientFields) { p.ContactNumber = number })
}

// Cascade exposes the field cascade.
func (f *Form) Cascade() *Cascade { return f.cascade }

// Submission validates the form and builds its record.
func (f *Form) Submission() (recorddomain.Record, error) {
	when, err := age.Parse(f.date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", recorddomain.ErrMissingDate, err)
	}
	rec := f.details.record(when, f.cascade.Fields().Patient())
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Close resets both selectors and the fields. The pet list is loaded
// again the next time the form is used.
func (f *Form) Close() {
	f.Owner.Reset()
	f.Pet.Reset()
	f.cascade.Reset()
	f.pets.Scope("")
	f.pets.Invalidate()
}

// Unmount releases both selectors.
func (f *Form) Unmount() {
	f.Owner.Unmount()
	f.Pet.Unmount()
}
