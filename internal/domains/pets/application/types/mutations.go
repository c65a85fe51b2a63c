package types

// PetMutationInput carries the fields an intake clerk can set on a pet.
// Dates are strings in any layout the age package accepts.
type PetMutationInput struct {
	Name               string
	OwnerName          string
	Species            string
	Breed              string
	Color              string
	DateOfBirth        string
	Gender             string
	ReproductiveStatus string
}

// AddPetInput registers a new pet. A zero ID lets the repository assign one.
type AddPetInput struct {
	ID int64
	PetMutationInput
}

// UpdatePetInput replaces the state of an existing pet.
type UpdatePetInput struct {
	ID int64
	PetMutationInput
}
