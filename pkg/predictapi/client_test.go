package predictapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmdsi/sponsor-cli/internal/model"
)

func TestCompanies_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/companies", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"companies":[{"Company Name":"Acme Corp","City":"Milwaukee"},{"Company Name":"Globex","City":"Chicago"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.Companies(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme Corp", got[0].Name())
	assert.Equal(t, "Chicago", got[1].City())
}

func TestCompanies_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"database unavailable"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Companies(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestSearchCompanies_QueryEncoding(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search-companies", r.URL.Path)
		assert.Equal(t, "acme & sons", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"companies":[{"Company Name":"Acme & Sons"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.SearchCompanies(context.Background(), "acme & sons")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme & Sons", got[0].Name())
}

func TestFilterCompanies_TargetCity(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/filter-companies", r.URL.Path)
		assert.Equal(t, "City", r.URL.Query().Get("field"))
		assert.Equal(t, "Milwaukee", r.URL.Query().Get("value"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"companies":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.FilterCompanies(context.Background(), "City", "Milwaukee")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPredict_PayloadAndRanking(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/predict", r.URL.Path)
		assert.Equal(t, "RandomForest", r.URL.Query().Get("model_type"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Companies []map[string]any `json:"companies"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Companies, 2)
		assert.Equal(t, "Acme Corp", body.Companies[0]["Company Name"])
		assert.EqualValues(t, 12000, body.Companies[0]["University Student Size"])
		assert.EqualValues(t, 50, body.Companies[0]["University Ranking"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ranked_predictions":[{"company":"Globex","probability":0.8734},{"company":"Acme Corp","probability":0.41}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.Predict(context.Background(), model.VariantRandomForest, []model.Company{
		{model.FieldCompanyName: "Acme Corp"},
		{model.FieldCompanyName: "Globex"},
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	// Server ordering is preserved, not re-sorted.
	assert.Equal(t, "Globex", got[0].Company)
	assert.InDelta(t, 0.8734, got[0].Probability, 1e-9)
}

func TestCurrentPerformance_MultiModelPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/current-model-performance", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"models": {
				"timestamp": "2025-07-24T12:28:46",
				"Logistic": {
					"metrics": {
						"accuracy": 0.7, "precision": 0.75, "recall": 0.15, "f1_score": 0.3, "auc": 0.8,
						"confusion_matrix": {"truePositive":17,"falsePositive":14,"falseNegative":5,"trueNegative":37},
						"roc_curve": {"fpr":[0,0.5,1],"tpr":[0,0.75,1]}
					},
					"model_id": "20250724122846_7aa0efa9",
					"created_at": "2025-07-24T12:28:46",
					"dataset_id": "acf19642",
					"filename": "enriched.csv",
					"done_by": "System"
				},
				"RandomForest": {
					"metrics": {
						"accuracy": 0.75,
						"confusion_matrix": {"truePositive":20,"falsePositive":10,"falseNegative":8,"trueNegative":35},
						"roc_curve": [{"fpr":0,"tpr":0},{"fpr":1,"tpr":1}]
					},
					"model_id": "20250724123000_abc123"
				}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.CurrentPerformance(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)

	logistic := got[model.VariantLogistic]
	assert.InDelta(t, 0.7, logistic.Metrics.Accuracy, 1e-9)
	assert.Equal(t, 17, logistic.Metrics.ConfusionMatrix.TruePositive)
	require.Len(t, logistic.Metrics.ROCCurve, 3)
	assert.Equal(t, model.ROCPoint{FPR: 0.5, TPR: 0.75}, logistic.Metrics.ROCCurve[1])
	assert.Equal(t, "System", logistic.DoneBy)

	forest := got[model.VariantRandomForest]
	assert.Equal(t, "20250724123000_abc123", forest.ModelID)
	require.Len(t, forest.Metrics.ROCCurve, 2)
}

func TestCurrentPerformance_SingleModelPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"metrics": {
				"accuracy": 0.82,
				"confusion_matrix": {"truePositive":22,"falsePositive":8,"falseNegative":6,"trueNegative":37},
				"roc_curve": [{"fpr":0,"tpr":0},{"fpr":1,"tpr":1}]
			},
			"model_id": "20250724085210_8ef2537d",
			"model_blob_name": "trained_model_20250724085210.pkl",
			"created_at": "2025-07-24T08:52:10",
			"dataset_id": "acf19642",
			"filename": "enriched.csv"
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.CurrentPerformance(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	snap := got[model.VariantLogistic]
	assert.InDelta(t, 0.82, snap.Metrics.Accuracy, 1e-9)
	assert.Equal(t, "trained_model_20250724085210.pkl", snap.BlobName)
}

func TestListDatasets(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/list-training-data", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"datasets":[{"dataset_id":"d1","filename":"a.csv","num_rows":120,"uploaded_at":"2025-07-24T12:28:46","done_by":"divakar","download_url":"http://blob/a.csv"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.ListDatasets(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a.csv", got[0].Filename)
	assert.Equal(t, 120, got[0].NumRows)
	assert.Equal(t, 2025, got[0].UploadedTime().Year())
}

func TestListModels_TypeFilter(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/list-models", r.URL.Path)
		assert.Equal(t, "XGBoost", r.URL.Query().Get("model_type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"models":[{"model_id":"m1","model_blob_name":"m1.pkl","status":"Current","model_type":"XGBoost"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.ListModels(context.Background(), "XGBoost")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsCurrent())
}

func TestListModels_NoFilter(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.ListModels(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUploadDataset_Multipart(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/upload-data", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "divakar", r.FormValue("done_by"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "train.csv", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"uploaded","dataset_id":"d9","num_rows":3}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.UploadDataset(context.Background(), "train.csv", strings.NewReader("Company Name\nAcme\n"), "divakar")

	require.NoError(t, err)
	assert.Equal(t, "uploaded", got.Status)
	assert.Equal(t, "d9", got.DatasetID)
}

func TestTrainModel_VariantPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/train-model-random-forest", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "d1", body["dataset_id"])
		assert.Equal(t, "divakar", body["done_by"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","message":"training started"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.TrainModel(context.Background(), model.VariantRandomForest, "d1", "divakar")

	require.NoError(t, err)
	assert.Equal(t, "training started", got.Message)
}

func TestDeployModel_Body(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/deploy-model", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "m1", body["model_id"])
		assert.Equal(t, "XGBoost", body["model_type"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","message":"deployed"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.DeployModel(context.Background(), model.VariantXGBoost, "m1", "divakar")

	require.NoError(t, err)
	assert.Equal(t, "deployed", got.Message)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "d@uwm.edu", body["email"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-123","user":{"name":"Divakar","email":"d@uwm.edu"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.Login(context.Background(), "d@uwm.edu", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", got.Token)
	assert.Equal(t, "Divakar", got.User.Name)
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Login(context.Background(), "d@uwm.edu", "wrong")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestSignup_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/signup", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Divakar", body["name"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"created"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	require.NoError(t, client.Signup(context.Background(), "Divakar", "d@uwm.edu", "secret"))
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"companies":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithToken("tok-123"))
	_, err := client.Companies(context.Background())
	require.NoError(t, err)
}

func TestMalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Companies(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL)
	_, err := client.Companies(ctx)
	require.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewClient("http://example.com")
	hc := c.(*httpClient)
	assert.Equal(t, "http://example.com", hc.baseURL)
	assert.Equal(t, 30*time.Second, hc.http.Timeout)

	c = NewClient("http://example.com", WithTimeout(5*time.Second))
	hc = c.(*httpClient)
	assert.Equal(t, 5*time.Second, hc.http.Timeout)
}
