package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vetserver "github.com/Apurer/go-vet-office/go"
	"github.com/Apurer/go-vet-office/internal/clients/http/vetapi"
	ownermemory "github.com/Apurer/go-vet-office/internal/domains/owners/adapters/memory"
	"github.com/Apurer/go-vet-office/internal/domains/owners/adapters/petdirectory"
	ownersapp "github.com/Apurer/go-vet-office/internal/domains/owners/application"
	ownertypes "github.com/Apurer/go-vet-office/internal/domains/owners/application/types"
	petmemory "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/memory"
	petsapp "github.com/Apurer/go-vet-office/internal/domains/pets/application"
	pettypes "github.com/Apurer/go-vet-office/internal/domains/pets/application/types"
	recordmemory "github.com/Apurer/go-vet-office/internal/domains/records/adapters/memory"
	recordsapp "github.com/Apurer/go-vet-office/internal/domains/records/application"
	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	"github.com/Apurer/go-vet-office/internal/platform/appstate"
	"github.com/Apurer/go-vet-office/internal/selector"
)

var testNow = time.Date(2020, 6, 15, 9, 0, 0, 0, time.UTC)

type scriptedPrompter struct {
	t       *testing.T
	answers []any
	asked   []string
}

func (s *scriptedPrompter) next(message string) any {
	s.t.Helper()
	s.asked = append(s.asked, message)
	require.NotEmpty(s.t, s.answers, "unexpected prompt %q", message)
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer
}

func (s *scriptedPrompter) Input(message, _ string) (string, error) {
	return s.next(message).(string), nil
}

func (s *scriptedPrompter) Select(message string, _ []string) (int, error) {
	return s.next(message).(int), nil
}

func (s *scriptedPrompter) Confirm(message string, _ bool) (bool, error) {
	return s.next(message).(bool), nil
}

type fixture struct {
	env     *Env
	records *recordsapp.Service
	store   *appstate.Store
}

func newFixture(t *testing.T, answers ...any) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	clock := func() time.Time { return testNow }

	pets := petsapp.NewService(petmemory.NewRepository()).WithClock(clock)
	owners := ownersapp.NewService(ownermemory.NewRepository(), petdirectory.New(pets)).WithClock(clock)
	records := recordsapp.NewService(recordmemory.NewRepository()).WithClock(clock)

	_, err := owners.CreateOwner(ctx, ownertypes.CreateOwnerInput{Name: "Ann Bell", ContactNumber: "0917 111"})
	require.NoError(t, err)
	_, err = pets.AddPet(ctx, pettypes.AddPetInput{PetMutationInput: pettypes.PetMutationInput{
		Name: "Rex", OwnerName: "Ann Bell", Species: "Dog", Breed: "Aspin", DateOfBirth: "2020-01-15", Gender: "m",
	}})
	require.NoError(t, err)

	router := vetserver.NewRouterWithGinEngine(gin.New(), vetserver.ApiHandleFunctions{
		OwnerAPI:  vetserver.NewOwnerAPI(owners),
		PetAPI:    vetserver.NewPetAPI(pets).WithClock(clock),
		RecordAPI: vetserver.NewRecordAPI(records, nil),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	client, err := vetapi.NewClient(srv.URL)
	require.NoError(t, err)

	profiles := selector.DefaultProfiles()
	store := appstate.New(appstate.NewMemoryPersister(appstate.State{}))
	return &fixture{
		env: &Env{
			Backend:  client,
			Store:    store,
			Prompter: &scriptedPrompter{t: t, answers: answers},
			Profiles: &profiles,
			Now:      clock,
		},
		records: records,
		store:   store,
	}
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(f.env)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOwnersSearchPrintsRows(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "owners", "search", "bell")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann Bell")
	assert.Contains(t, out, "Rex")

	out, err = f.run(t, "owners", "search", "zz")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found")

	out, err = f.run(t, "owners", "search", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "Type at least 2 characters")
}

func TestOwnersSearchReportsUnavailableBackend(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(nil)
	srv.Close()
	client, err := vetapi.NewClient(srv.URL)
	require.NoError(t, err)
	f.env.Backend = client

	out, err := f.run(t, "owners", "search", "bell")
	require.NoError(t, err)
	assert.Contains(t, out, "Search unavailable")
}

func TestPetsListDerivesAge(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "pets", "list", "--owner", "Ann Bell")
	require.NoError(t, err)
	assert.Contains(t, out, "Rex")
	assert.Contains(t, out, "Male")
	assert.Contains(t, out, "5 months")

	out, err = f.run(t, "pets", "list", "--owner", "Nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "No pets found")
}

func TestAgeCommand(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "age", "2020-01-15", "2023-06-15")
	require.NoError(t, err)
	assert.Equal(t, "3 years\n", out)

	out, err = f.run(t, "age", "2020-01-15")
	require.NoError(t, err)
	assert.Equal(t, "5 months\n", out)

	_, err = f.run(t, "age", "someday")
	require.ErrorIs(t, err, ErrNoAge)
}

func TestStateCommands(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "state", "set", "--clinician", "Dr. Reyes")
	require.NoError(t, err)
	out, err := f.run(t, "state", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Dr. Reyes")

	out, err = f.run(t, "state", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "State cleared")

	out, err = f.run(t, "state", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "Dr. Reyes")
}

func TestIntakeSubmitsCascadedVaccination(t *testing.T) {
	// owner query and row, contact, pet query and row, details, submit
	f := newFixture(t,
		"ann", 0,
		"0917 222",
		"rex", 0,
		"rabies, dhpp", "B-17", "Spring drive", "<b>calm</b>",
		true,
	)

	out, err := f.run(t, "intake", "--kind", "vaccination", "--date", "2020-06-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted vaccination")
	assert.Contains(t, out, "5 months")

	stored, err := f.records.List(context.Background(), recordtypes.ListRecordsInput{Vaccine: "dhpp"})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	vaccination := stored[0].Envelope.Vaccination
	require.NotNil(t, vaccination)
	assert.Equal(t, "Ann Bell", vaccination.Patient.OwnerName)
	assert.Equal(t, "0917 222", vaccination.Patient.ContactNumber)
	assert.Equal(t, "Rex", vaccination.Patient.PetName)
	assert.Equal(t, "Male", vaccination.Patient.Sex)
	assert.Equal(t, "5 months", vaccination.Patient.Age)
	assert.Equal(t, []string{"rabies", "dhpp"}, vaccination.Vaccines)
	assert.Equal(t, "calm", vaccination.Remarks)

	assert.Equal(t, []string{"Ann Bell"}, f.store.Snapshot().RecentOwners)
}

func TestIntakeAcceptsNewOwnerAndPet(t *testing.T) {
	// unknown owner confirmed, no contact, unknown pet confirmed, details, do not submit
	f := newFixture(t,
		"Carla Diaz", true,
		"",
		"Mochi", true,
		"Check-up", "Dr. Reyes", false,
		false,
	)

	out, err := f.run(t, "intake", "--kind", "appointment", "--date", "2020-06-16")
	require.NoError(t, err)
	assert.Contains(t, out, "Not submitted")
	assert.Contains(t, out, "Carla Diaz")

	stored, err := f.records.List(context.Background(), recordtypes.ListRecordsInput{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestIntakeRejectsUnknownKind(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "intake", "--kind", "grooming")
	require.Error(t, err)
}
