// Package idp adaptador hacia la API de invitaciones del proveedor de identidad.
package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/ports"
)

var _ ports.InvitationSender = (*Client)(nil)

// Client implementa InvitationSender con POST {baseURL}/invitations.
type Client struct {
	baseURL     string
	apiKey      string
	redirectURL string
	httpClient  *http.Client
}

// NewClient construye el adaptador. redirectURL es a donde vuelve el invitado tras aceptar.
func NewClient(baseURL, apiKey, redirectURL string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		redirectURL: redirectURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

type invitationRequest struct {
	EmailAddress string `json:"email_address"`
	RedirectURL  string `json:"redirect_url,omitempty"`
}

type invitationResponse struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"`
	URL          string `json:"url"`
}

type errorResponse struct {
	Errors []struct {
		Message     string `json:"message"`
		LongMessage string `json:"long_message"`
		Code        string `json:"code"`
	} `json:"errors"`
}

// SendInvitation crea la invitación en el proveedor. Cualquier respuesta no 2xx es error.
func (c *Client) SendInvitation(ctx context.Context, email string) (*dto.InvitationResult, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("idp: IDP_API_URL no configurado")
	}
	body, err := json.Marshal(invitationRequest{EmailAddress: email, RedirectURL: c.redirectURL})
	if err != nil {
		return nil, fmt.Errorf("idp: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invitations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("idp: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("idp: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("idp: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("idp: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && len(er.Errors) > 0 {
			msg := er.Errors[0].LongMessage
			if msg == "" {
				msg = er.Errors[0].Message
			}
			return nil, fmt.Errorf("idp: HTTP %d (%s): %s", resp.StatusCode, er.Errors[0].Code, msg)
		}
		return nil, fmt.Errorf("idp: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out invitationResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("idp: deserializar respuesta: %w", err)
	}
	if out.EmailAddress == "" {
		out.EmailAddress = email
	}
	return &dto.InvitationResult{
		ID:           out.ID,
		Provider:     "idp",
		EmailAddress: out.EmailAddress,
		Status:       out.Status,
		URL:          out.URL,
	}, nil
}
