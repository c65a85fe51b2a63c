//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"

	vetserver "github.com/Apurer/go-vet-office/go"
	ownermemory "github.com/Apurer/go-vet-office/internal/domains/owners/adapters/memory"
	ownersobs "github.com/Apurer/go-vet-office/internal/domains/owners/adapters/observability"
	"github.com/Apurer/go-vet-office/internal/domains/owners/adapters/petdirectory"
	ownersapp "github.com/Apurer/go-vet-office/internal/domains/owners/application"
	ownertypes "github.com/Apurer/go-vet-office/internal/domains/owners/application/types"
	ownersports "github.com/Apurer/go-vet-office/internal/domains/owners/ports"
	petmemory "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/memory"
	petsobs "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/observability"
	petsapp "github.com/Apurer/go-vet-office/internal/domains/pets/application"
	pettypes "github.com/Apurer/go-vet-office/internal/domains/pets/application/types"
	petsports "github.com/Apurer/go-vet-office/internal/domains/pets/ports"
	recordmemory "github.com/Apurer/go-vet-office/internal/domains/records/adapters/memory"
	recordsobs "github.com/Apurer/go-vet-office/internal/domains/records/adapters/observability"
	recordworkflows "github.com/Apurer/go-vet-office/internal/domains/records/adapters/workflows"
	recordsapp "github.com/Apurer/go-vet-office/internal/domains/records/application"
	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	recorddomain "github.com/Apurer/go-vet-office/internal/domains/records/domain"
	recordsports "github.com/Apurer/go-vet-office/internal/domains/records/ports"
	pacttest "github.com/Apurer/go-vet-office/test/pact"
)

func TestVetOfficeProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	stateHandlers := models.StateHandlers{
		pacttest.StateOwnerWithPet: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedOwnerWithPet(t)
			}
			return nil, nil
		},
		pacttest.StateNoRecords: func(bool, models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
		pacttest.StateRecordExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedRecord(t, uuid.MustParse(pacttest.ExistingRecordID))
			}
			return nil, nil
		},
		pacttest.StateRecordMissing: func(bool, models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractServices struct {
	owners  ownersports.Service
	pets    petsports.Service
	records recordsports.Service
	router  http.Handler
}

// contractProviderApp serves a fresh set of in-memory services per
// interaction.
type contractProviderApp struct {
	server *httptest.Server

	mu      sync.RWMutex
	current contractServices
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset()
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.current.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset() {
	pets := petsobs.New(petsapp.NewService(petmemory.NewRepository()))
	owners := ownersobs.New(ownersapp.NewService(ownermemory.NewRepository(), petdirectory.New(pets)))
	records := recordsobs.New(recordsapp.NewService(recordmemory.NewRepository()))

	router := gin.New()
	router.Use(gin.Recovery())
	router = vetserver.NewRouterWithGinEngine(router, vetserver.ApiHandleFunctions{
		OwnerAPI:  vetserver.NewOwnerAPI(owners),
		PetAPI:    vetserver.NewPetAPI(pets),
		RecordAPI: vetserver.NewRecordAPI(records, recordworkflows.NewInlineRecordWorkflows(records)),
	})

	a.mu.Lock()
	a.current = contractServices{owners: owners, pets: pets, records: records, router: router}
	a.mu.Unlock()
}

func (a *contractProviderApp) services() contractServices {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

func (a *contractProviderApp) seedOwnerWithPet(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	s := a.services()
	_, err := s.owners.CreateOwner(ctx, ownertypes.CreateOwnerInput{Name: pacttest.OwnerName, ContactNumber: pacttest.OwnerContact})
	require.NoError(t, err)
	_, err = s.pets.AddPet(ctx, pettypes.AddPetInput{PetMutationInput: pettypes.PetMutationInput{
		Name:        pacttest.PetName,
		OwnerName:   pacttest.OwnerName,
		Species:     pacttest.PetSpecies,
		Breed:       pacttest.PetBreed,
		DateOfBirth: pacttest.PetBirthday,
		Gender:      pacttest.PetGender,
	}})
	require.NoError(t, err)
}

func (a *contractProviderApp) seedRecord(t testing.TB, id uuid.UUID) {
	t.Helper()
	date, err := time.Parse(time.RFC3339, pacttest.RecordDate)
	require.NoError(t, err)
	env, err := recorddomain.Wrap(recorddomain.Vaccination{
		Patient:         recorddomain.Patient{OwnerName: pacttest.OwnerName, PetName: pacttest.PetName},
		VaccinationDate: date,
		Vaccines:        []string{pacttest.Vaccine},
	})
	require.NoError(t, err)
	_, err = a.services().records.Submit(context.Background(), recordtypes.SubmitRecordInput{ID: id, Envelope: env})
	require.NoError(t, err)
}
