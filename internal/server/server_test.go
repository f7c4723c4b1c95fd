package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perceptron-forge/internal/dataset"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(dataset.Builtin(), quiet, 1000).Router()
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListDatasets(t *testing.T) {
	rec := do(t, newRouter(), http.MethodGet, "/api/v1/datasets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []DatasetView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, dataset.AND, got[0].Name)
	assert.Equal(t, 2, got[0].Dim)
	assert.Len(t, got[0].Samples, 4)
	assert.Equal(t, dataset.XOR, got[1].Name)
}

func TestTrainPerceptron(t *testing.T) {
	rec := do(t, newRouter(), http.MethodPost, "/api/v1/train",
		`{"dataset":"and","model":"perceptron","eta":0.1,"iteration_cap":1000,"seed":17}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Model     string    `json:"model"`
		State     string    `json:"state"`
		ErrorKind string    `json:"error_kind"`
		Error     float64   `json:"error"`
		Weights   []float64 `json:"weights"`
		Summary   string    `json:"summary"`
		RunID     string    `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "perceptron", got.Model)
	assert.Equal(t, "converged", got.State)
	assert.Equal(t, "absolute", got.ErrorKind)
	assert.Equal(t, 0.0, got.Error)
	assert.Len(t, got.Weights, 3)
	assert.Contains(t, got.Summary, "Converged.")
	assert.NotEmpty(t, got.RunID)
}

func TestTrainMultilayerWeightsLayout(t *testing.T) {
	rec := do(t, newRouter(), http.MethodPost, "/api/v1/train",
		`{"dataset":"xor","model":"mlp","eta":0.3,"iteration_cap":5,"seed":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Weights struct {
			InputHidden  [][]float64 `json:"input_hidden"`
			HiddenOutput [][]float64 `json:"hidden_output"`
		} `json:"weights"`
		ErrorKind string `json:"error_kind"`
		Steps     int    `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Weights.InputHidden, 3)
	assert.Len(t, got.Weights.HiddenOutput, 3)
	assert.Equal(t, "squared", got.ErrorKind)
	assert.LessOrEqual(t, got.Steps, 5)
}

func TestTrainRejectsBadRequests(t *testing.T) {
	router := newRouter()

	rec := do(t, router, http.MethodPost, "/api/v1/train", `{"dataset":"nand","model":"perceptron","eta":0.1,"iteration_cap":10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/train", `{"dataset":"and","model":"svm","eta":0.1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/train", `{"dataset":"and","model":"perceptron","eta":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/train", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrainStream(t *testing.T) {
	rec := do(t, newRouter(), http.MethodPost, "/api/v1/train/stream",
		`{"dataset":"xor","model":"perceptron","eta":0.1,"iteration_cap":3,"seed":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, 3, strings.Count(body, "event:progress"))
	assert.Equal(t, 1, strings.Count(body, "event:result"))
	assert.Contains(t, body, `"final":true`)
	assert.Contains(t, body, "iteration_cap_reached")
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/event-stream"))
}

func TestTrainStreamBadRequest(t *testing.T) {
	rec := do(t, newRouter(), http.MethodPost, "/api/v1/train/stream", `{"dataset":"nand","model":"perceptron","eta":0.1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
