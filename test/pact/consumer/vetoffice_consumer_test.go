//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-vet-office/internal/clients/http/vetapi"
	recorddomain "github.com/Apurer/go-vet-office/internal/domains/records/domain"
	apierrors "github.com/Apurer/go-vet-office/internal/shared/errors"
	pacttest "github.com/Apurer/go-vet-office/test/pact"
)

func TestVetOfficeFrontendContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	submittedID := uuid.MustParse(pacttest.RecordIDShape)
	recordDate, err := time.Parse(time.RFC3339, pacttest.RecordDate)
	require.NoError(t, err)

	vaccinationBody := func(id matchers.Matcher) matchers.Map {
		return matchers.Map{
			"id":   id,
			"kind": matchers.S(string(recorddomain.KindVaccination)),
			"vaccination": matchers.Map{
				"patient": matchers.Map{
					"ownerName": matchers.Like(pacttest.OwnerName),
					"petName":   matchers.Like(pacttest.PetName),
				},
				"vaccinationDate": matchers.Like(pacttest.RecordDate),
				"vaccines":        matchers.EachLike(pacttest.Vaccine, 1),
			},
		}
	}

	pact.AddInteraction().
		Given(pacttest.StateOwnerWithPet).
		UponReceiving("an owner search").
		WithRequest("GET", "/v1/owners/search", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("q", matchers.S(pacttest.SearchQuery))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(matchers.Map{
				"ownerId":       matchers.Like(1),
				"ownerName":     matchers.Like(pacttest.OwnerName),
				"contactNumber": matchers.Like(pacttest.OwnerContact),
				"pet": matchers.Map{
					"name":    matchers.Like(pacttest.PetName),
					"species": matchers.Like(pacttest.PetSpecies),
				},
			}, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateOwnerWithPet).
		UponReceiving("a request for the pets of one owner").
		WithRequest("GET", "/v1/pets", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("owner", matchers.S(pacttest.OwnerName))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(matchers.Map{
				"id":          matchers.Like(1),
				"name":        matchers.Like(pacttest.PetName),
				"ownerName":   matchers.S(pacttest.OwnerName),
				"species":     matchers.Like(pacttest.PetSpecies),
				"dateOfBirth": matchers.Like(pacttest.PetBirthday),
				"gender":      matchers.Term(pacttest.PetGender, "Male|Female"),
			}, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateNoRecords).
		UponReceiving("a vaccination record submission").
		WithRequest("POST", "/v1/records", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(vaccinationBody(matchers.Regex(pacttest.RecordIDShape, pacttest.UUIDPattern)))
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(vaccinationBody(matchers.Regex(pacttest.RecordIDShape, pacttest.UUIDPattern)))
		})

	pact.AddInteraction().
		Given(pacttest.StateRecordExists).
		UponReceiving("a request for a stored record").
		WithRequest("GET", "/v1/records/"+pacttest.ExistingRecordID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(vaccinationBody(matchers.S(pacttest.ExistingRecordID)))
		})

	pact.AddInteraction().
		Given(pacttest.StateRecordMissing).
		UponReceiving("a request for a missing record").
		WithRequest("GET", "/v1/records/"+pacttest.MissingRecordID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S(apierrors.ContentTypeProblemJSON))
			b.JSONBody(matchers.Map{
				"type":   matchers.S(apierrors.TypeNotFound),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := vetapi.NewClient(fmt.Sprintf("http://%s:%d", host, config.Port))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		owners, err := client.SearchOwners(ctx, pacttest.SearchQuery)
		if err != nil {
			return fmt.Errorf("search owners: %w", err)
		}
		if len(owners) == 0 || owners[0].Pet.Name == "" {
			return fmt.Errorf("expected an owner row with a pet, got %+v", owners)
		}

		pets, err := client.ListPets(ctx, pacttest.OwnerName)
		if err != nil {
			return fmt.Errorf("list pets: %w", err)
		}
		if len(pets) == 0 || pets[0].OwnerName != pacttest.OwnerName {
			return fmt.Errorf("expected pets of %s, got %+v", pacttest.OwnerName, pets)
		}

		rec := recorddomain.Vaccination{
			Patient:         recorddomain.Patient{OwnerName: pacttest.OwnerName, PetName: pacttest.PetName},
			VaccinationDate: recordDate,
			Vaccines:        []string{pacttest.Vaccine},
		}
		saved, err := client.SubmitRecord(ctx, submittedID, rec)
		if err != nil {
			return fmt.Errorf("submit record: %w", err)
		}
		if saved.Vaccination == nil {
			return fmt.Errorf("expected a vaccination payload, got %+v", saved)
		}

		fetched, err := client.GetRecord(ctx, uuid.MustParse(pacttest.ExistingRecordID))
		if err != nil {
			return fmt.Errorf("get record: %w", err)
		}
		if fetched.ID != pacttest.ExistingRecordID {
			return fmt.Errorf("expected record %s, got %s", pacttest.ExistingRecordID, fetched.ID)
		}

		_, err = client.GetRecord(ctx, uuid.MustParse(pacttest.MissingRecordID))
		var problem apierrors.ProblemDetail
		if !errors.As(err, &problem) || problem.Status != http.StatusNotFound {
			return fmt.Errorf("expected a not-found problem, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}
