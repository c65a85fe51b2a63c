package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var patient = Patient{OwnerName: "Ann Bell", PetName: "Rex", Species: "Dog", Age: "3 years"}

func TestRecordValidation(t *testing.T) {
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		record Record
		err    error
	}{
		{"appointment ok", Appointment{Patient: patient, ScheduledAt: date}, nil},
		{"missing owner", Appointment{Patient: Patient{PetName: "Rex"}, ScheduledAt: date}, ErrMissingOwner},
		{"missing pet", Appointment{Patient: Patient{OwnerName: "Ann"}, ScheduledAt: date}, ErrMissingPet},
		{"missing date", Appointment{Patient: patient}, ErrMissingDate},
		{"medical needs diagnosis", MedicalRecord{Patient: patient, VisitDate: date}, ErrMissingDiagnosis},
		{"permit needs destination", ShippingPermit{Patient: patient, IssueDate: date}, ErrMissingDestination},
		{"vaccination needs vaccine", Vaccination{Patient: patient, VaccinationDate: date, Vaccines: []string{" "}}, ErrMissingVaccine},
		{"vaccination ok", Vaccination{Patient: patient, VaccinationDate: date, Vaccines: []string{"Rabies"}}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.record.Validate()
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestEnvelopeCarriesExactlyOneVariant(t *testing.T) {
	permit := ShippingPermit{
		Patient:     patient,
		IssueDate:   time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Destination: "Cebu",
		Documents:   []string{"health certificate"},
	}
	data, err := MarshalRecord(permit)
	require.NoError(t, err)
	require.Contains(t, string(data), `"kind":"shipping_permit"`)
	require.NotContains(t, string(data), `"appointment"`)

	decoded, err := UnmarshalRecord(data)
	require.NoError(t, err)
	require.Equal(t, permit, decoded)
}

func TestEnvelopeRejectsMismatchedKind(t *testing.T) {
	_, err := UnmarshalRecord([]byte(`{"kind":"vaccination","appointment":{"patient":{"ownerName":"a","petName":"b"}}}`))
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = UnmarshalRecord([]byte(`{"kind":"appointment"}`))
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Vaccination ")
	require.NoError(t, err)
	require.Equal(t, KindVaccination, k)

	_, err = ParseKind("grooming")
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestNewSubmissionAssignsIdentity(t *testing.T) {
	now := time.Date(2024, 5, 2, 9, 30, 0, 0, time.FixedZone("PST", 8*3600))
	rec := Vaccination{Patient: patient, VaccinationDate: now, Vaccines: []string{"Rabies"}}

	sub, err := NewSubmission(rec, now)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, sub.ID)
	require.Equal(t, time.UTC, sub.SubmittedAt.Location())

	clone := sub.Clone()
	clone.Record.(Vaccination).Vaccines[0] = "Distemper"
	require.Equal(t, "Rabies", sub.Record.(Vaccination).Vaccines[0])

	_, err = NewSubmission(Vaccination{Patient: patient}, now)
	require.ErrorIs(t, err, ErrMissingDate)
}
