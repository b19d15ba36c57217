package contentgate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rafabene/preconsult-backend/internal/domain/ports"
)

const validatePath = "/validate/comment"

// Client consome o serviço externo de moderação de conteúdo (IA).
// Única dependência de rede do sistema: toda chamada é limitada por timeout
// e falhas são devolvidas ao chamador para aplicação da política.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     ports.Logger
}

// NewClient cria um novo cliente do content gate
func NewClient(baseURL string, timeout time.Duration, logger ports.Logger) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type validateRequest struct {
	Comment string `json:"comment"`
}

type validateResponse struct {
	Decision string `json:"decyzja"`
}

// Validate envia o conteúdo para o serviço de moderação e devolve o sinal
// binário aceitar/rejeitar. Qualquer token diferente de "OK" é rejeição.
func (c *Client) Validate(ctx context.Context, content string) (ports.GateResult, error) {
	body, err := json.Marshal(validateRequest{Comment: content})
	if err != nil {
		return ports.GateRejected, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+validatePath, bytes.NewReader(body))
	if err != nil {
		return ports.GateRejected, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.GateRejected, fmt.Errorf("content gate unreachable: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return ports.GateRejected, fmt.Errorf("content gate returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return ports.GateRejected, fmt.Errorf("failed to read response: %w", err)
	}

	token := parseToken(raw)
	c.logger.Debug("content gate decision", "token", token)

	if token == "OK" {
		return ports.GateAccepted, nil
	}
	return ports.GateRejected, nil
}

// parseToken aceita os dois formatos observados no serviço de moderação:
// uma string JSON ("OK") ou um objeto com a decisão ({"decyzja": "OK"})
func parseToken(raw []byte) string {
	var obj validateResponse
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Decision != "" {
		return strings.ToUpper(strings.TrimSpace(obj.Decision))
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.ToUpper(strings.TrimSpace(str))
	}

	return strings.ToUpper(strings.TrimSpace(string(raw)))
}
