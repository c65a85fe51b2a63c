package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the record variants submitted by the office forms.
type Kind string

const (
	KindAppointment    Kind = "appointment"
	KindMedicalRecord  Kind = "medical_record"
	KindShippingPermit Kind = "shipping_permit"
	KindVaccination    Kind = "vaccination"
)

// Kinds lists every supported record kind.
func Kinds() []Kind {
	return []Kind{KindAppointment, KindMedicalRecord, KindShippingPermit, KindVaccination}
}

// ParseKind resolves a kind name.
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

var (
	ErrUnknownKind        = errors.New("unknown record kind")
	ErrMissingOwner       = errors.New("owner name is required")
	ErrMissingPet         = errors.New("pet name is required")
	ErrMissingDate        = errors.New("record date is required")
	ErrMissingDestination = errors.New("shipping destination is required")
	ErrMissingVaccine     = errors.New("at least one vaccine is required")
	ErrMissingDiagnosis   = errors.New("diagnosis is required")
)

// Patient is the owner and pet block shared by every record. It is filled
// from the selection cascade of the hosting form.
type Patient struct {
	OwnerName          string `json:"ownerName"`
	ContactNumber      string `json:"contactNumber,omitempty"`
	OwnerBirthdate     string `json:"ownerBirthdate,omitempty"`
	PetName            string `json:"petName"`
	PetBirthday        string `json:"petBirthday,omitempty"`
	Species            string `json:"species,omitempty"`
	Breed              string `json:"breed,omitempty"`
	Age                string `json:"age,omitempty"`
	Sex                string `json:"sex,omitempty"`
	ReproductiveStatus string `json:"reproductiveStatus,omitempty"`
}

// Validate checks the fields every record needs.
func (p Patient) Validate() error {
	if strings.TrimSpace(p.OwnerName) == "" {
		return ErrMissingOwner
	}
	if strings.TrimSpace(p.PetName) == "" {
		return ErrMissingPet
	}
	return nil
}

// Record is one submitted form.
type Record interface {
	Kind() Kind
	PatientInfo() Patient
	// Date is the domain date of the record, also used as the age reference.
	Date() time.Time
	Validate() error
}

// Appointment books a visit.
type Appointment struct {
	Patient      Patient   `json:"patient"`
	ScheduledAt  time.Time `json:"scheduledAt"`
	Reason       string    `json:"reason,omitempty"`
	Veterinarian string    `json:"veterinarian,omitempty"`
	WalkIn       bool      `json:"walkIn,omitempty"`
}

func (a Appointment) Kind() Kind           { return KindAppointment }
func (a Appointment) PatientInfo() Patient { return a.Patient }
func (a Appointment) Date() time.Time      { return a.ScheduledAt }
func (a Appointment) Validate() error      { return validateBase(a) }

// MedicalRecord documents a consultation.
type MedicalRecord struct {
	Patient   Patient   `json:"patient"`
	VisitDate time.Time `json:"visitDate"`
	Weight    string    `json:"weight,omitempty"`
	Diagnosis string    `json:"diagnosis"`
	Treatment string    `json:"treatment,omitempty"`
	Remarks   string    `json:"remarks,omitempty"`
}

func (m MedicalRecord) Kind() Kind           { return KindMedicalRecord }
func (m MedicalRecord) PatientInfo() Patient { return m.Patient }
func (m MedicalRecord) Date() time.Time      { return m.VisitDate }

func (m MedicalRecord) Validate() error {
	if err := validateBase(m); err != nil {
		return err
	}
	if strings.TrimSpace(m.Diagnosis) == "" {
		return ErrMissingDiagnosis
	}
	return nil
}

// ShippingPermit authorises transporting a pet.
type ShippingPermit struct {
	Patient     Patient   `json:"patient"`
	IssueDate   time.Time `json:"issueDate"`
	Destination string    `json:"destination"`
	Carrier     string    `json:"carrier,omitempty"`
	Documents   []string  `json:"documents,omitempty"`
	Remarks     string    `json:"remarks,omitempty"`
}

func (s ShippingPermit) Kind() Kind           { return KindShippingPermit }
func (s ShippingPermit) PatientInfo() Patient { return s.Patient }
func (s ShippingPermit) Date() time.Time      { return s.IssueDate }

func (s ShippingPermit) Validate() error {
	if err := validateBase(s); err != nil {
		return err
	}
	if strings.TrimSpace(s.Destination) == "" {
		return ErrMissingDestination
	}
	return nil
}

// Vaccination records shots given during a vaccination drive.
type Vaccination struct {
	Patient         Patient   `json:"patient"`
	VaccinationDate time.Time `json:"vaccinationDate"`
	Vaccines        []string  `json:"vaccines"`
	BatchNumber     string    `json:"batchNumber,omitempty"`
	Drive           string    `json:"drive,omitempty"`
	Remarks         string    `json:"remarks,omitempty"`
}

func (v Vaccination) Kind() Kind           { return KindVaccination }
func (v Vaccination) PatientInfo() Patient { return v.Patient }
func (v Vaccination) Date() time.Time      { return v.VaccinationDate }

func (v Vaccination) Validate() error {
	if err := validateBase(v); err != nil {
		return err
	}
	for _, vaccine := range v.Vaccines {
		if strings.TrimSpace(vaccine) != "" {
			return nil
		}
	}
	return ErrMissingVaccine
}

func validateBase(r Record) error {
	if err := r.PatientInfo().Validate(); err != nil {
		return err
	}
	if r.Date().IsZero() {
		return ErrMissingDate
	}
	return nil
}

// Submission is a persisted record with its identity.
type Submission struct {
	ID          uuid.UUID
	SubmittedAt time.Time
	Record      Record
}

// NewSubmission validates r and assigns it a fresh identity.
func NewSubmission(r Record, now time.Time) (*Submission, error) {
	if r == nil {
		return nil, ErrUnknownKind
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &Submission{ID: uuid.New(), SubmittedAt: now.UTC(), Record: r}, nil
}

// Clone returns a copy that shares no slices with s.
func (s *Submission) Clone() *Submission {
	if s == nil {
		return nil
	}
	copy := *s
	switch r := s.Record.(type) {
	case ShippingPermit:
		r.Documents = append([]string(nil), r.Documents...)
		copy.Record = r
	case Vaccination:
		r.Vaccines = append([]string(nil), r.Vaccines...)
		copy.Record = r
	}
	return &copy
}
