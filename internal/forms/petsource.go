package forms

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// PetSource loads the pets once per form opening and filters them locally
// by owner and query.
type PetSource struct {
	dir Directory

	mu     sync.Mutex
	owner  string
	loaded bool
	pets   []PetCandidate
	loads  int
}

// NewPetSource builds a source reading from dir.
func NewPetSource(dir Directory) *PetSource {
	return &PetSource{dir: dir}
}

// Scope restricts the source to owner's pets. Changing the owner drops the
// loaded list; an empty owner means every pet.
func (s *PetSource) Scope(owner string) {
	owner = strings.TrimSpace(owner)
	s.mu.Lock()
	defer s.mu.Unlock()
	if owner == s.owner && s.loaded {
		return
	}
	s.owner = owner
	s.loaded = false
	s.pets = nil
}

// Invalidate drops the loaded list so the next search loads again.
func (s *PetSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.pets = nil
}

// Owner returns the current owner scope.
func (s *PetSource) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// Loads reports how many times the backend list was fetched.
func (s *PetSource) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

// Search returns the scoped pets whose name, species or breed contains query,
// ignoring case. It is a selector.FetchFunc.
func (s *PetSource) Search(ctx context.Context, query string) ([]PetCandidate, error) {
	pets, owner, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))
	ownerKey := fold.String(owner)

	var matched []PetCandidate
	for _, pet := range pets {
		if owner != "" && fold.String(strings.TrimSpace(pet.OwnerName)) != ownerKey {
			continue
		}
		if needle == "" ||
			strings.Contains(fold.String(pet.Name), needle) ||
			strings.Contains(fold.String(pet.Species), needle) ||
			strings.Contains(fold.String(pet.Breed), needle) {
			matched = append(matched, pet)
		}
	}
	return matched, nil
}

func (s *PetSource) load(ctx context.Context) ([]PetCandidate, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.pets, s.owner, nil
	}
	pets, err := s.dir.ListPets(ctx, s.owner)
	if err != nil {
		return nil, "", err
	}
	s.pets = append([]PetCandidate(nil), pets...)
	s.loaded = true
	s.loads++
	return s.pets, s.owner, nil
}
