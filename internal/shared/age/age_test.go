package age

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name      string
		birth     string
		reference string
		want      string
	}{
		{name: "under a year reports months", birth: "2023-01-15", reference: "2023-06-15", want: "5 months"},
		{name: "over a year reports years", birth: "2020-01-15", reference: "2023-06-15", want: "3 years"},
		{name: "future birth is rejected", birth: "2024-03-01", reference: "2023-06-15", want: ""},
		{name: "unparsable birth", birth: "not a date", reference: "2023-06-15", want: ""},
		{name: "empty birth", birth: "", reference: "2023-06-15", want: ""},
		{name: "unparsable reference", birth: "2023-01-15", reference: "soon", want: ""},
		{name: "same day", birth: "2023-06-15", reference: "2023-06-15", want: "0 months"},
		{name: "exactly one average year", birth: "2022-06-15T00:00:00Z", reference: "2023-06-15T06:00:00Z", want: "1 years"},
		{name: "timestamp reference", birth: "2021-02-01", reference: "2023-06-15T09:30:00Z", want: "2 years"},
		{name: "slash layout", birth: "01/15/2023", reference: "2023-03-16", want: "2 months"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Derive(tc.birth, tc.reference))
		})
	}
}

func TestDeriverUsesClockWhenReferenceMissing(t *testing.T) {
	d := Deriver{Now: func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }}
	require.Equal(t, "4 years", d.Derive("2020-05-20", ""))
	require.Equal(t, "4 years", d.Derive("2020-05-20", "   "))
}

func TestBetween(t *testing.T) {
	birth := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "", Between(birth, birth.Add(-time.Hour)))
	require.Equal(t, "1 months", Between(birth, birth.AddDate(0, 0, 31)))
	require.Equal(t, "11 months", Between(birth, birth.AddDate(0, 0, 334)))
	for _, days := range []int{350, 355, 360, 364, 365} {
		require.Equal(t, "11 months", Between(birth, birth.AddDate(0, 0, days)), days)
	}
	require.Equal(t, "1 years", Between(birth, birth.AddDate(0, 0, 366)))
}

func TestParse(t *testing.T) {
	_, err := Parse("2023-13-40")
	require.ErrorIs(t, err, ErrUnparsable)

	got, err := Parse(" 2023-02-03 ")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 2, 3, 0, 0, 0, 0, time.UTC), got)
}
