//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "vet-office-api"
	ConsumerName = "vet-office-frontend"

	StateOwnerWithPet  = "owner Ann Bell with pet Rex exists"
	StateNoRecords     = "no records are stored"
	StateRecordExists  = "a vaccination record exists"
	StateRecordMissing = "no record with the missing id"
)

// Stable fixture values shared by both sides of the contract.
const (
	OwnerName     = "Ann Bell"
	OwnerContact  = "0917 111 2222"
	PetName       = "Rex"
	PetSpecies    = "Dog"
	PetBreed      = "Aspin"
	PetBirthday   = "2023-01-15"
	PetGender     = "Male"
	Vaccine       = "rabies"
	RecordDate    = "2024-05-02T00:00:00Z"
	SearchQuery   = "ann"
	UUIDPattern   = `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`
	RecordIDShape = "5b0c7f7e-3f0a-4c55-9a49-3c8f2a1e8b10"
)

const (
	ExistingRecordID = "0d7c4a1e-8d0b-4f43-9d58-6a0e3f1a2b3c"
	MissingRecordID  = "9f1e2d3c-4b5a-4968-8776-5a4b3c2d1e0f"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the frontend consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
