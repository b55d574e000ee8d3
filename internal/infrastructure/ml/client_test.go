package ml_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Analitica-api/internal/application/ports"
	"github.com/jhoicas/Analitica-api/internal/infrastructure/ml"
	"github.com/jhoicas/Analitica-api/pkg/config"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

// capturedRequest lo que el servidor de prueba vio de la petición multipart.
type capturedRequest struct {
	path     string
	auth     string
	filename string
	file     string
	metadata string
}

func newMLServer(t *testing.T, status int, responseBody string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		captured.metadata = r.FormValue("metadata")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		captured.filename = header.Filename
		captured.file = string(content)

		w.WriteHeader(status)
		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newClient(srv *httptest.Server) *ml.Client {
	return ml.NewClient(config.MLConfig{
		BaseURL:        srv.URL,
		APIKey:         "clave-secreta",
		TimeoutSeconds: 5,
	}, logger.Nop())
}

func TestPredictDemand_EnviaMultipartYParseaDobleJSON(t *testing.T) {
	inner, err := json.Marshal([]ports.PredictionRecord{
		{ProductID: "p1", Date: "2026-08-21", Value: 4.5},
		{ProductID: "p1", Date: "2026-08-22", Value: 3},
	})
	require.NoError(t, err)
	outer, err := json.Marshal(map[string]string{"predictions": string(inner)})
	require.NoError(t, err)

	srv, captured := newMLServer(t, http.StatusOK, string(outer))
	client := newClient(srv)

	result, err := client.PredictDemand(context.Background(), ports.PredictPayload{
		Filename:        "historia.csv",
		Content:         []byte("product_id,date,quantity\np1,2026-08-19,3\n"),
		PredictionDates: []string{"2026-08-21", "2026-08-22"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/predict", captured.path)
	assert.Equal(t, "Bearer clave-secreta", captured.auth)
	assert.Equal(t, "historia.csv", captured.filename)
	assert.Contains(t, captured.file, "p1,2026-08-19,3")

	var meta struct {
		Type            string   `json:"type"`
		PredictionDates []string `json:"prediction_dates"`
	}
	require.NoError(t, json.Unmarshal([]byte(captured.metadata), &meta))
	assert.Equal(t, "prediction", meta.Type)
	assert.Equal(t, []string{"2026-08-21", "2026-08-22"}, meta.PredictionDates)

	require.Len(t, result.Predictions, 2)
	assert.Equal(t, "p1", result.Predictions[0].ProductID)
	assert.Equal(t, 4.5, result.Predictions[0].Value)
}

func TestPredictDemand_PrediccionesMalFormadas(t *testing.T) {
	// El campo predictions no es un JSON serializado válido
	srv, _ := newMLServer(t, http.StatusOK, `{"predictions":"no-es-json"}`)
	client := newClient(srv)

	_, err := client.PredictDemand(context.Background(), ports.PredictPayload{
		Filename: "historia.csv",
		Content:  []byte("x"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deserializando predicciones")
}

func TestPredictDemand_EstadoNo2xxIncluyeElCuerpo(t *testing.T) {
	srv, _ := newMLServer(t, http.StatusBadGateway, "modelo no disponible")
	client := newClient(srv)

	_, err := client.PredictDemand(context.Background(), ports.PredictPayload{
		Filename: "historia.csv",
		Content:  []byte("x"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "modelo no disponible")
}

func TestPredictDemand_CuerpoDeErrorSeTrunca(t *testing.T) {
	srv, _ := newMLServer(t, http.StatusInternalServerError, strings.Repeat("x", 2048))
	client := newClient(srv)

	_, err := client.PredictDemand(context.Background(), ports.PredictPayload{
		Filename: "historia.csv",
		Content:  []byte("x"),
	})
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 1024)
}

func TestExportSalesData_EnviaTipoYFormato(t *testing.T) {
	srv, captured := newMLServer(t, http.StatusOK, "{}")
	client := newClient(srv)

	err := client.ExportSalesData(context.Background(), ports.ExportPayload{
		Filename: "ventas.csv",
		Content:  []byte("product_id,date\n"),
		Type:     "historical",
		Format:   "csv",
	})
	require.NoError(t, err)

	assert.Equal(t, "/export", captured.path)
	assert.Equal(t, "ventas.csv", captured.filename)

	var meta struct {
		Type   string `json:"type"`
		Format string `json:"format"`
	}
	require.NoError(t, json.Unmarshal([]byte(captured.metadata), &meta))
	assert.Equal(t, "historical", meta.Type)
	assert.Equal(t, "csv", meta.Format)
}

func TestClient_SinAPIKeyNoMandaAuthorization(t *testing.T) {
	srv, captured := newMLServer(t, http.StatusOK, "{}")
	client := ml.NewClient(config.MLConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, logger.Nop())

	err := client.ExportSalesData(context.Background(), ports.ExportPayload{
		Filename: "ventas.csv",
		Content:  []byte("x"),
		Type:     "historical",
		Format:   "csv",
	})
	require.NoError(t, err)
	assert.Empty(t, captured.auth)
}
