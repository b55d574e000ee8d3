package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/jhoicas/Analitica-api/internal/application/ports"
	"github.com/jhoicas/Analitica-api/pkg/config"
	"github.com/jhoicas/Analitica-api/pkg/logger"
)

// maxErrorBody bytes del cuerpo de error que se incluyen en el mensaje.
const maxErrorBody = 512

// Client implementa ports.ForecastClient contra el microservicio HTTP de
// pronóstico. Los archivos viajan como multipart/form-data con un campo
// metadata en JSON.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logger.Logger
}

func NewClient(cfg config.MLConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		log: log,
	}
}

// predictResponse el servicio devuelve las predicciones como un string JSON
// serializado dentro del JSON exterior, así que se deserializa dos veces.
type predictResponse struct {
	Predictions string `json:"predictions"`
}

type predictMetadata struct {
	Type            string   `json:"type"`
	PredictionDates []string `json:"prediction_dates"`
}

type exportMetadata struct {
	Type   string `json:"type"`
	Format string `json:"format"`
}

// PredictDemand envía la historia de ventas y devuelve las predicciones parseadas.
func (c *Client) PredictDemand(ctx context.Context, payload ports.PredictPayload) (*ports.PredictResult, error) {
	meta, err := json.Marshal(predictMetadata{
		Type:            "prediction",
		PredictionDates: payload.PredictionDates,
	})
	if err != nil {
		return nil, fmt.Errorf("serializando metadata: %w", err)
	}

	body, err := c.post(ctx, "/predict", payload.Filename, payload.Content, meta)
	if err != nil {
		return nil, err
	}

	var outer predictResponse
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, fmt.Errorf("deserializando respuesta del servicio: %w", err)
	}

	var records []ports.PredictionRecord
	if err := json.Unmarshal([]byte(outer.Predictions), &records); err != nil {
		return nil, fmt.Errorf("deserializando predicciones: %w", err)
	}

	c.log.Info().Int("predicciones", len(records)).Msg("predicciones recibidas del servicio")
	return &ports.PredictResult{Predictions: records}, nil
}

// ExportSalesData envía el archivo de ventas; solo importa el código de estado.
func (c *Client) ExportSalesData(ctx context.Context, payload ports.ExportPayload) error {
	meta, err := json.Marshal(exportMetadata{Type: payload.Type, Format: payload.Format})
	if err != nil {
		return fmt.Errorf("serializando metadata: %w", err)
	}

	if _, err := c.post(ctx, "/export", payload.Filename, payload.Content, meta); err != nil {
		return err
	}
	return nil
}

// post arma la petición multipart (campo file + campo metadata) y devuelve el
// cuerpo de una respuesta 2xx. Un estado no-2xx es un error con el cuerpo
// truncado para diagnóstico.
func (c *Client) post(ctx context.Context, path, filename string, content, metadata []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creando parte de archivo: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("escribiendo archivo: %w", err)
	}
	if err := w.WriteField("metadata", string(metadata)); err != nil {
		return nil, fmt.Errorf("escribiendo metadata: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("cerrando multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("creando petición: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llamando al servicio de pronóstico: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("leyendo respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, fmt.Errorf("el servicio de pronóstico respondió %d: %s", resp.StatusCode, snippet)
	}
	return body, nil
}
