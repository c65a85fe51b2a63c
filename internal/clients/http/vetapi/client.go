// Package vetapi is the HTTP client of the vet office backend. It serves
// the selector forms as their Directory and submits the finished records.
package vetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	ownerhttpmapper "github.com/Apurer/go-vet-office/internal/domains/owners/adapters/http/mapper"
	pethttpmapper "github.com/Apurer/go-vet-office/internal/domains/pets/adapters/http/mapper"
	recordhttpmapper "github.com/Apurer/go-vet-office/internal/domains/records/adapters/http/mapper"
	recorddomain "github.com/Apurer/go-vet-office/internal/domains/records/domain"
	"github.com/Apurer/go-vet-office/internal/forms"
	apierrors "github.com/Apurer/go-vet-office/internal/shared/errors"
)

// ErrUnexpectedStatus is returned for non-2xx answers without a problem body.
var ErrUnexpectedStatus = errors.New("vetapi: unexpected status")

// HttpRequestDoer performs HTTP requests.
type HttpRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption allows setting custom parameters during construction.
type ClientOption func(*Client) error

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(doer HttpRequestDoer) ClientOption {
	return func(c *Client) error {
		c.client = doer
		return nil
	}
}

// Client talks to the vet office API.
type Client struct {
	server string
	client HttpRequestDoer
}

// NewClient creates a client for the API rooted at server.
func NewClient(server string, opts ...ClientOption) (*Client, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return nil, errors.New("vetapi base URL is required")
	}
	if !strings.HasSuffix(server, "/") {
		server += "/"
	}
	c := &Client{server: server}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 5 * time.Second}
	}
	return c, nil
}

// SearchOwners returns the owner and pet rows whose owner name contains
// query. It satisfies forms.Directory.
func (c *Client) SearchOwners(ctx context.Context, query string) ([]forms.OwnerCandidate, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "v1/owners/search", []queryParam{{"q", query}}, nil)
	if err != nil {
		return nil, err
	}
	var rows []ownerhttpmapper.OwnerSearchRow
	if err := c.do(req, http.StatusOK, &rows); err != nil {
		return nil, err
	}
	out := make([]forms.OwnerCandidate, 0, len(rows))
	for _, row := range rows {
		candidate := forms.OwnerCandidate{
			OwnerName:     row.OwnerName,
			ContactNumber: row.ContactNumber,
			Birthdate:     row.Birthdate,
		}
		if row.Pet != nil {
			candidate.Pet = forms.PetPreview{Name: row.Pet.Name, Species: row.Pet.Species, Breed: row.Pet.Breed}
		}
		out = append(out, candidate)
	}
	return out, nil
}

// ListPets returns the pets of owner, or every pet when owner is empty.
func (c *Client) ListPets(ctx context.Context, owner string) ([]forms.PetCandidate, error) {
	var params []queryParam
	if owner = strings.TrimSpace(owner); owner != "" {
		params = append(params, queryParam{"owner", owner})
	}
	req, err := c.newRequest(ctx, http.MethodGet, "v1/pets", params, nil)
	if err != nil {
		return nil, err
	}
	var pets []pethttpmapper.Pet
	if err := c.do(req, http.StatusOK, &pets); err != nil {
		return nil, err
	}
	out := make([]forms.PetCandidate, 0, len(pets))
	for _, p := range pets {
		out = append(out, forms.PetCandidate{
			ID:                 p.ID,
			Name:               p.Name,
			OwnerName:          p.OwnerName,
			Species:            p.Species,
			Breed:              p.Breed,
			Color:              p.Color,
			DateOfBirth:        p.DateOfBirth,
			Gender:             p.Gender,
			ReproductiveStatus: p.ReproductiveStatus,
		})
	}
	return out, nil
}

// SubmitRecord posts r. A non-nil id makes retries of the same submission
// land on the same record.
func (c *Client) SubmitRecord(ctx context.Context, id uuid.UUID, r recorddomain.Record) (*recordhttpmapper.Record, error) {
	env, err := recorddomain.Wrap(r)
	if err != nil {
		return nil, err
	}
	payload := recordhttpmapper.SubmitRecord{Envelope: env}
	if id != uuid.Nil {
		payload.ID = id.String()
	}
	req, err := c.newRequest(ctx, http.MethodPost, "v1/records", nil, payload)
	if err != nil {
		return nil, err
	}
	var out recordhttpmapper.Record
	if err := c.do(req, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecord loads a stored record.
func (c *Client) GetRecord(ctx context.Context, id uuid.UUID) (*recordhttpmapper.Record, error) {
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "recordId", runtime.ParamLocationPath, id.String())
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, "v1/records/"+pathParam, nil, nil)
	if err != nil {
		return nil, err
	}
	var out recordhttpmapper.Record
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type queryParam struct {
	name  string
	value string
}

func (c *Client) newRequest(ctx context.Context, method, path string, params []queryParam, body any) (*http.Request, error) {
	serverURL, err := url.Parse(c.server)
	if err != nil {
		return nil, err
	}
	queryURL, err := serverURL.Parse(path)
	if err != nil {
		return nil, err
	}

	if len(params) > 0 {
		queryValues := queryURL.Query()
		for _, param := range params {
			queryFrag, err := runtime.StyleParamWithLocation("form", true, param.name, runtime.ParamLocationQuery, param.value)
			if err != nil {
				return nil, err
			}
			parsed, err := url.ParseQuery(queryFrag)
			if err != nil {
				return nil, err
			}
			for k, v := range parsed {
				for _, v2 := range v {
					queryValues.Add(k, v2)
				}
			}
		}
		queryURL.RawQuery = queryValues.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, queryURL.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	rsp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call vet API: %w", err)
	}
	defer func() { _ = rsp.Body.Close() }()
	raw, err := io.ReadAll(rsp.Body)
	if err != nil {
		return fmt.Errorf("read vet API response: %w", err)
	}
	if rsp.StatusCode != want {
		return statusError(req, rsp, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode vet API response: %w", err)
	}
	return nil
}

func statusError(req *http.Request, rsp *http.Response, raw []byte) error {
	if strings.HasPrefix(rsp.Header.Get("Content-Type"), apierrors.ContentTypeProblemJSON) {
		var problem apierrors.ProblemDetail
		if err := json.Unmarshal(raw, &problem); err == nil && problem.Status != 0 {
			return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, problem)
		}
	}
	return fmt.Errorf("%w: %s %s: %s", ErrUnexpectedStatus, req.Method, req.URL.Path, rsp.Status)
}

var _ forms.Directory = (*Client)(nil)
