// Package labs implementa el adaptador HTTP hacia la API externa de
// aprovisionamiento de laboratorios.
package labs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	applabs "github.com/tu-usuario/academia-pro/internal/application/labs"
)

var _ applabs.Provisioner = (*HTTPClient)(nil)

// HTTPClient implementa labs.Provisioner contra el endpoint REST del
// proveedor. Usa net/http de la stdlib; no requiere librerías de terceros.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient construye el cliente con un timeout generoso: aprovisionar
// una instancia puede tardar varios segundos.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type provisionRequest struct {
	BlueprintID     string `json:"blueprint_id"`
	DurationMinutes int    `json:"duration_minutes"`
}

type provisionResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Provision pide una instancia del blueprint por la duración indicada.
func (c *HTTPClient) Provision(ctx context.Context, blueprintID string, duration time.Duration) (*applabs.Session, error) {
	body, err := json.Marshal(provisionRequest{
		BlueprintID:     blueprintID,
		DurationMinutes: int(duration.Minutes()),
	})
	if err != nil {
		return nil, fmt.Errorf("labs: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("labs: construir request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("labs: llamada al proveedor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("labs: proveedor respondió %d: %s", resp.StatusCode, string(payload))
	}

	var out provisionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("labs: decodificar respuesta: %w", err)
	}
	return &applabs.Session{URL: out.URL, ExpiresAt: out.ExpiresAt}, nil
}
