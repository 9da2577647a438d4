// Package remote implementa backend.Backend como cliente JSON-RPC del gateway del ERP.
//
// Protocolo:
//
//	POST {base}/rpc/{method}
//	X-Principal: <principal>
//	{"args":[...]}
//
//	200 {"ok": <valor>}  |  {"err": {"code": "INSUFFICIENT_STOCK", "message": "..."}}
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/backend"
)

// HeaderPrincipal cabecera con la identidad que invoca.
const HeaderPrincipal = "X-Principal"

// Client conexión con el gateway remoto, compartida por todos los callers.
type Client struct {
	base    string
	timeout time.Duration
	log     zerolog.Logger
}

// NewClient construye el cliente. base sin barra final, p. ej. "https://erp.example.com".
func NewClient(base string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{base: base, timeout: timeout, log: log.With().Str("component", "remote").Logger()}
}

// For devuelve el backend visto por principal.
func (c *Client) For(principal string) backend.Backend {
	return &caller{c: c, principal: principal}
}

type request struct {
	Args []any `json:"args"`
}

type response struct {
	Ok  json.RawMessage `json:"ok"`
	Err *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"err"`
}

// Ping comprueba que el gateway responde.
func (c *Client) Ping(ctx context.Context) error {
	_, err := invoke(ctx, c, "", "ping")
	return err
}

// invoke ejecuta method y devuelve el valor crudo de "ok".
func invoke(ctx context.Context, c *Client, principal, method string, args ...any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	if args == nil {
		args = []any{}
	}

	agent := fiber.Post(c.base+"/rpc/"+method).
		Set(HeaderPrincipal, principal).
		JSON(request{Args: args}).
		Timeout(timeout)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		c.log.Warn().Err(err).Str("method", method).Msg("llamada remota fallida")
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrNetwork, method, err)
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		c.log.Warn().Int("status", status).Str("method", method).Msg("respuesta remota ilegible")
		return nil, fmt.Errorf("%w: %s: HTTP %d: respuesta inválida", domain.ErrNetwork, method, status)
	}
	if resp.Err != nil {
		return nil, &domain.RemoteError{Code: resp.Err.Code, Message: resp.Err.Message}
	}
	if status >= fiber.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s: HTTP %d", domain.ErrNetwork, method, status)
	}
	return resp.Ok, nil
}

// call ejecuta method y decodifica "ok" en T. Un "ok" null deja el valor cero (nil en punteros).
func call[T any](ctx context.Context, c *caller, method string, args ...any) (T, error) {
	var out T
	raw, err := invoke(ctx, c.c, c.principal, method, args...)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("remote %s: decodificar: %w", method, err)
	}
	return out, nil
}

// list como call pero nunca devuelve nil.
func list[T any](ctx context.Context, c *caller, method string, args ...any) ([]T, error) {
	out, err := call[[]T](ctx, c, method, args...)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func exec(ctx context.Context, c *caller, method string, args ...any) error {
	_, err := invoke(ctx, c.c, c.principal, method, args...)
	return err
}
