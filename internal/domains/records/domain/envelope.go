package domain

import (
	"encoding/json"
	"fmt"
)

// Envelope is the tagged wire form of a Record: the kind plus exactly one
// populated variant.
type Envelope struct {
	Kind           Kind            `json:"kind"`
	Appointment    *Appointment    `json:"appointment,omitempty"`
	MedicalRecord  *MedicalRecord  `json:"medical_record,omitempty"`
	ShippingPermit *ShippingPermit `json:"shipping_permit,omitempty"`
	Vaccination    *Vaccination    `json:"vaccination,omitempty"`
}

// Wrap builds the envelope for r.
func Wrap(r Record) (Envelope, error) {
	switch v := r.(type) {
	case Appointment:
		return Envelope{Kind: KindAppointment, Appointment: &v}, nil
	case MedicalRecord:
		return Envelope{Kind: KindMedicalRecord, MedicalRecord: &v}, nil
	case ShippingPermit:
		return Envelope{Kind: KindShippingPermit, ShippingPermit: &v}, nil
	case Vaccination:
		return Envelope{Kind: KindVaccination, Vaccination: &v}, nil
	default:
		return Envelope{}, fmt.Errorf("%w: %T", ErrUnknownKind, r)
	}
}

// Record returns the variant selected by Kind.
func (e Envelope) Record() (Record, error) {
	var (
		r   Record
		set int
	)
	if e.Appointment != nil {
		r, set = *e.Appointment, set+1
	}
	if e.MedicalRecord != nil {
		r, set = *e.MedicalRecord, set+1
	}
	if e.ShippingPermit != nil {
		r, set = *e.ShippingPermit, set+1
	}
	if e.Vaccination != nil {
		r, set = *e.Vaccination, set+1
	}
	if set != 1 || r.Kind() != e.Kind {
		return nil, fmt.Errorf("%w: envelope kind %q does not match its payload", ErrUnknownKind, e.Kind)
	}
	return r, nil
}

// MarshalRecord encodes r as an envelope.
func MarshalRecord(r Record) ([]byte, error) {
	env, err := Wrap(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// UnmarshalRecord decodes an envelope produced by MarshalRecord.
func UnmarshalRecord(data []byte) (Record, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return env.Record()
}
