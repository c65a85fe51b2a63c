package domain

import "strings"

const (
	SexFemale = "Female"
	SexMale   = "Male"

	StatusIntact          = "Intact"
	StatusCastratedSpayed = "Castrated/Spayed"
)

// NormalizeSex maps f/female and m/male (any case) to Female/Male.
// Anything else is returned verbatim.
func NormalizeSex(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "f", "female":
		return SexFemale
	case "m", "male":
		return SexMale
	default:
		return raw
	}
}

// NormalizeReproductiveStatus folds the free-text values used across intake
// sheets into Intact or Castrated/Spayed. Unknown values are returned verbatim.
func NormalizeReproductiveStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "intact", "not neutered", "not spayed":
		return StatusIntact
	case "castrated", "spayed", "neutered", "castrated/spayed":
		return StatusCastratedSpayed
	default:
		return raw
	}
}
