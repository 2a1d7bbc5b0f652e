package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/session"
)

// Client fala com o data service remoto (o dono do estado durável).
// São só quatro operações genéricas por tipo de entidade; os wrappers
// tipados ficam nos *Repository deste pacote.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListEntities: GET /entities/{kind}?filtro — retorna a lista já na
// ordem default do kind (quem ordena é o serviço).
func (c *Client) ListEntities(ctx context.Context, kind string, filter url.Values) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/entities/%s", c.baseURL, kind)
	if len(filter) > 0 {
		u += "?" + filter.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &entity.RemoteError{Message: err.Error()}
	}
	c.setHeaders(ctx, req)

	return c.do(req)
}

// InsertEntity: POST /entities/{kind} — o serviço atribui id, owner e
// timestamps e devolve o registro gravado.
func (c *Client) InsertEntity(ctx context.Context, kind string, fields any) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/entities/%s", c.baseURL, kind)

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, &entity.RemoteError{Message: fmt.Sprintf("marshal %s: %v", kind, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, &entity.RemoteError{Message: err.Error()}
	}
	c.setHeaders(ctx, req)

	return c.do(req)
}

// UpdateEntity: PATCH /entities/{kind}/{id} — patch parcial, devolve o
// registro atualizado.
func (c *Client) UpdateEntity(ctx context.Context, kind, id string, fields any) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/entities/%s/%s", c.baseURL, kind, url.PathEscape(id))

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, &entity.RemoteError{Message: fmt.Sprintf("marshal %s: %v", kind, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, &entity.RemoteError{Message: err.Error()}
	}
	c.setHeaders(ctx, req)

	return c.do(req)
}

// DeleteEntity: DELETE /entities/{kind}/{id}.
func (c *Client) DeleteEntity(ctx context.Context, kind, id string) error {
	u := fmt.Sprintf("%s/entities/%s/%s", c.baseURL, kind, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return &entity.RemoteError{Message: err.Error()}
	}
	c.setHeaders(ctx, req)

	_, err = c.do(req)
	return err
}

// do executa a request e normaliza qualquer falha para a taxonomia de
// erros do domínio. Erro "any shape" do serviço não passa daqui.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &entity.RemoteError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		if resp.StatusCode == http.StatusNoContent {
			return nil, nil
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &entity.RemoteError{Message: fmt.Sprintf("read response: %v", err)}
		}
		return raw, nil
	}

	var fail errorResponse
	msg := resp.Status
	if raw, err := io.ReadAll(resp.Body); err == nil && len(raw) > 0 {
		if json.Unmarshal(raw, &fail) == nil && fail.Error != "" {
			msg = fail.Error
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound || fail.Code == "not_found":
		return nil, &entity.NotFoundError{Message: msg}
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &entity.AuthRequiredError{Message: msg}
	case resp.StatusCode == http.StatusBadRequest || fail.Code == "validation":
		return nil, &entity.ValidationError{Message: msg}
	default:
		return nil, &entity.RemoteError{Message: msg}
	}
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "LigueCRM/1.0")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	if principal := session.PrincipalFrom(ctx); principal != "" {
		req.Header.Set("X-Principal-Id", principal)
	}
}
