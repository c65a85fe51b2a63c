package domain

// MapText returns a copy of r with fn applied to every free-text field,
// patient block included.
func MapText(r Record, fn func(string) string) Record {
	switch v := r.(type) {
	case Appointment:
		v.Patient = v.Patient.mapText(fn)
		v.Reason = fn(v.Reason)
		v.Veterinarian = fn(v.Veterinarian)
		return v
	case MedicalRecord:
		v.Patient = v.Patient.mapText(fn)
		v.Weight = fn(v.Weight)
		v.Diagnosis = fn(v.Diagnosis)
		v.Treatment = fn(v.Treatment)
		v.Remarks = fn(v.Remarks)
		return v
	case ShippingPermit:
		v.Patient = v.Patient.mapText(fn)
		v.Destination = fn(v.Destination)
		v.Carrier = fn(v.Carrier)
		v.Documents = mapAll(v.Documents, fn)
		v.Remarks = fn(v.Remarks)
		return v
	case Vaccination:
		v.Patient = v.Patient.mapText(fn)
		v.Vaccines = mapAll(v.Vaccines, fn)
		v.BatchNumber = fn(v.BatchNumber)
		v.Drive = fn(v.Drive)
		v.Remarks = fn(v.Remarks)
		return v
	default:
		return r
	}
}

// WithPatient returns a copy of r carrying p.
func WithPatient(r Record, p Patient) Record {
	switch v := r.(type) {
	case Appointment:
		v.Patient = p
		return v
	case MedicalRecord:
		v.Patient = p
		return v
	case ShippingPermit:
		v.Patient = p
		return v
	case Vaccination:
		v.Patient = p
		return v
	default:
		return r
	}
}

func (p Patient) mapText(fn func(string) string) Patient {
	p.OwnerName = fn(p.OwnerName)
	p.ContactNumber = fn(p.ContactNumber)
	p.PetName = fn(p.PetName)
	p.Species = fn(p.Species)
	p.Breed = fn(p.Breed)
	p.Sex = fn(p.Sex)
	p.ReproductiveStatus = fn(p.ReproductiveStatus)
	return p
}

func mapAll(values []string, fn func(string) string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fn(v)
	}
	return out
}
