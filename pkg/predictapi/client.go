// Package predictapi provides a client for the sponsorship prediction
// service API.
package predictapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/nmdsi/sponsor-cli/internal/model"
)

// Client defines the prediction service operations.
type Client interface {
	// Companies fetches the full company directory.
	Companies(ctx context.Context) ([]model.Company, error)
	// SearchCompanies performs a free-text company search.
	SearchCompanies(ctx context.Context, query string) ([]model.Company, error)
	// FilterCompanies fetches companies whose field exactly matches value.
	FilterCompanies(ctx context.Context, field, value string) ([]model.Company, error)
	// Predict scores the given companies with the deployed model of the
	// requested variant and returns the server-ranked predictions.
	Predict(ctx context.Context, variant model.Variant, companies []model.Company) ([]model.RankedPrediction, error)
	// CurrentPerformance fetches performance snapshots keyed by variant.
	CurrentPerformance(ctx context.Context) (map[model.Variant]model.Snapshot, error)
	// ListDatasets fetches the uploaded training datasets.
	ListDatasets(ctx context.Context) ([]model.DatasetRecord, error)
	// ListModels fetches trained models, optionally filtered by model type
	// (empty string means all).
	ListModels(ctx context.Context, modelType string) ([]model.ModelRecord, error)
	// UploadDataset sends a training dataset as multipart form data.
	UploadDataset(ctx context.Context, filename string, file io.Reader, doneBy string) (*UploadResult, error)
	// TrainModel triggers training of the given variant on a dataset.
	TrainModel(ctx context.Context, variant model.Variant, datasetID, doneBy string) (*OpResult, error)
	// DeployModel deploys a previously trained model.
	DeployModel(ctx context.Context, variant model.Variant, modelID, doneBy string) (*OpResult, error)
	// Login authenticates and returns a bearer token with the user profile.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Signup registers a new user account.
	Signup(ctx context.Context, name, email, password string) error
}

// UploadResult is the response to a dataset upload.
type UploadResult struct {
	Status    string `json:"status"`
	DatasetID string `json:"dataset_id"`
	NumRows   int    `json:"num_rows"`
}

// OpResult is the response to a train or deploy trigger.
type OpResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AuthResult is the response to a successful login.
type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *httpClient) {
		c.token = token
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

type httpClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a prediction service client. Requests are not
// retried; transient failures surface to the caller, which decides
// between an empty-result fallback and a user notification.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiError is the structured error body the service returns on non-2xx
// responses.
type apiError struct {
	Error string `json:"error"`
}

// do executes one request and decodes the JSON response into out. Non-2xx
// statuses become a single uniform error carrying the server message when
// one is present.
func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return eris.Wrapf(err, "predictapi: create request %s", path)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "predictapi: %s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "predictapi: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		if json.Unmarshal(respBody, &ae) == nil && ae.Error != "" {
			return eris.Errorf("predictapi: %s: status %d: %s", path, resp.StatusCode, ae.Error)
		}
		return eris.Errorf("predictapi: %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrapf(err, "predictapi: unmarshal %s response", path)
	}
	return nil
}

func (c *httpClient) doJSON(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return eris.Wrapf(err, "predictapi: marshal %s request", path)
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, query, body, contentType, out)
}

func (c *httpClient) Companies(ctx context.Context) ([]model.Company, error) {
	var resp struct {
		Companies []model.Company `json:"companies"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/companies", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Companies, nil
}

func (c *httpClient) SearchCompanies(ctx context.Context, query string) ([]model.Company, error) {
	var resp struct {
		Companies []model.Company `json:"companies"`
	}
	q := url.Values{"q": {query}}
	if err := c.doJSON(ctx, http.MethodGet, "/api/search-companies", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Companies, nil
}

func (c *httpClient) FilterCompanies(ctx context.Context, field, value string) ([]model.Company, error) {
	var resp struct {
		Companies []model.Company `json:"companies"`
	}
	q := url.Values{"field": {field}, "value": {value}}
	if err := c.doJSON(ctx, http.MethodGet, "/api/filter-companies", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Companies, nil
}

func (c *httpClient) Predict(ctx context.Context, variant model.Variant, companies []model.Company) ([]model.RankedPrediction, error) {
	inputs := make([]map[string]any, len(companies))
	for i, company := range companies {
		inputs[i] = company.PredictionInput()
	}

	payload := map[string]any{"companies": inputs}
	q := url.Values{"model_type": {variant.APIName()}}

	var resp struct {
		RankedPredictions []model.RankedPrediction `json:"ranked_predictions"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/predict", q, payload, &resp); err != nil {
		return nil, err
	}
	return resp.RankedPredictions, nil
}

func (c *httpClient) CurrentPerformance(ctx context.Context) (map[model.Variant]model.Snapshot, error) {
	var probe struct {
		Status string                     `json:"status"`
		Models map[string]json.RawMessage `json:"models"`
	}

	raw := json.RawMessage{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/current-model-performance", nil, nil, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, eris.Wrap(err, "predictapi: decode performance payload")
	}

	snapshots := make(map[model.Variant]model.Snapshot)

	if probe.Models != nil {
		for name, msg := range probe.Models {
			if name == "timestamp" {
				continue
			}
			variant, ok := model.ParseVariant(name)
			if !ok {
				continue
			}
			var snap model.Snapshot
			if err := json.Unmarshal(msg, &snap); err != nil {
				return nil, eris.Wrapf(err, "predictapi: decode %s snapshot", name)
			}
			snapshots[variant] = snap
		}
		return snapshots, nil
	}

	// Older single-model payload: one flat snapshot, no variant keying.
	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, eris.Wrap(err, "predictapi: decode snapshot")
	}
	snapshots[model.VariantLogistic] = snap
	return snapshots, nil
}

func (c *httpClient) ListDatasets(ctx context.Context) ([]model.DatasetRecord, error) {
	var resp struct {
		Datasets []model.DatasetRecord `json:"datasets"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/list-training-data", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Datasets, nil
}

func (c *httpClient) ListModels(ctx context.Context, modelType string) ([]model.ModelRecord, error) {
	var q url.Values
	if modelType != "" {
		q = url.Values{"model_type": {modelType}}
	}
	var resp struct {
		Models []model.ModelRecord `json:"models"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/list-models", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

func (c *httpClient) UploadDataset(ctx context.Context, filename string, file io.Reader, doneBy string) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, eris.Wrap(err, "predictapi: create form file")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, eris.Wrap(err, "predictapi: copy upload body")
	}
	if err := w.WriteField("done_by", doneBy); err != nil {
		return nil, eris.Wrap(err, "predictapi: write done_by field")
	}
	if err := w.Close(); err != nil {
		return nil, eris.Wrap(err, "predictapi: close multipart writer")
	}

	var result UploadResult
	if err := c.do(ctx, http.MethodPost, "/api/upload-data", nil, &buf, w.FormDataContentType(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) TrainModel(ctx context.Context, variant model.Variant, datasetID, doneBy string) (*OpResult, error) {
	payload := map[string]string{
		"dataset_id": datasetID,
		"done_by":    doneBy,
	}
	path := fmt.Sprintf("/api/train-model-%s", variant.Slug())

	var result OpResult
	if err := c.doJSON(ctx, http.MethodPost, path, nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) DeployModel(ctx context.Context, variant model.Variant, modelID, doneBy string) (*OpResult, error) {
	payload := map[string]string{
		"model_id":   modelID,
		"model_type": variant.APIName(),
		"done_by":    doneBy,
	}

	var result OpResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/deploy-model", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) Signup(ctx context.Context, name, email, password string) error {
	payload := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/signup", nil, payload, nil)
}
