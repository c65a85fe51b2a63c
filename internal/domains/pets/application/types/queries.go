package types

// ListPetsInput filters pets by exact owner display name; empty lists all.
type ListPetsInput struct {
	OwnerName string
}

// PetIdentifier references a pet by its aggregate ID.
type PetIdentifier struct {
	ID int64
}
