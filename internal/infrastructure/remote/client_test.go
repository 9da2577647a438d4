package remote_test

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/remote"
)

type rpcCall struct {
	Method    string
	Principal string
	Args      []json.RawMessage
}

// fakeGateway levanta un gateway JSON-RPC en un puerto libre y registra las llamadas.
func fakeGateway(t *testing.T) (string, chan rpcCall) {
	t.Helper()
	calls := make(chan rpcCall, 16)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Post("/rpc/:method", func(c *fiber.Ctx) error {
		var body struct {
			Args []json.RawMessage `json:"args"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("bad body")
		}
		calls <- rpcCall{Method: c.Params("method"), Principal: c.Get(remote.HeaderPrincipal), Args: body.Args}

		switch c.Params("method") {
		case "getProduct":
			var id string
			_ = json.Unmarshal(body.Args[0], &id)
			if id != "p1" {
				return c.JSON(fiber.Map{"ok": nil})
			}
			return c.JSON(fiber.Map{"ok": entity.Product{ID: "p1", Name: "Kurta", Price: decimal.NewFromInt(1000), StockLevel: 3}})
		case "getAllProducts":
			return c.JSON(fiber.Map{"ok": nil})
		case "adjustStock":
			return c.JSON(fiber.Map{"err": fiber.Map{"code": domain.CodeInsufficientStock, "message": "insufficient stock for Kurta: available 3, requested 5"}})
		case "isCallerAdmin":
			return c.JSON(fiber.Map{"ok": true})
		case "requestApproval":
			return c.JSON(fiber.Map{"ok": nil})
		default:
			return c.Status(fiber.StatusNotFound).SendString("unknown method")
		}
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String(), calls
}

func TestClient_LecturaYPrincipal(t *testing.T) {
	base, calls := fakeGateway(t)
	b := remote.NewClient(base, 2*time.Second, zerolog.Nop()).For("principal-1")

	p, err := b.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Kurta", p.Name)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(1000)))

	got := <-calls
	assert.Equal(t, "getProduct", got.Method)
	assert.Equal(t, "principal-1", got.Principal)
	require.Len(t, got.Args, 1)
	assert.JSONEq(t, `"p1"`, string(got.Args[0]))
}

func TestClient_RegistroInexistenteEsNil(t *testing.T) {
	base, _ := fakeGateway(t)
	b := remote.NewClient(base, 2*time.Second, zerolog.Nop()).For("p")

	p, err := b.GetProduct(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, p)

	list, err := b.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestClient_ErrorRemotoTipado(t *testing.T) {
	base, calls := fakeGateway(t)
	b := remote.NewClient(base, 2*time.Second, zerolog.Nop()).For("p")

	_, err := b.AdjustStock(context.Background(), "p1", -5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	c := domain.ClassifyStockError(err)
	assert.True(t, c.IsInsufficientStock)
	require.NotNil(t, c.Available)
	require.NotNil(t, c.Requested)
	assert.EqualValues(t, 3, *c.Available)
	assert.EqualValues(t, 5, *c.Requested)

	got := <-calls
	require.Len(t, got.Args, 2)
	assert.JSONEq(t, `-5`, string(got.Args[1]))
}

func TestClient_ExecYBool(t *testing.T) {
	base, _ := fakeGateway(t)
	b := remote.NewClient(base, 2*time.Second, zerolog.Nop()).For("p")

	require.NoError(t, b.RequestApproval(context.Background()))
	ok, err := b.IsCallerAdmin(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_MetodoDesconocidoEsErrorDeRed(t *testing.T) {
	base, _ := fakeGateway(t)
	b := remote.NewClient(base, 2*time.Second, zerolog.Nop()).For("p")

	_, err := b.ListOrders(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestClient_SinConexion(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	b := remote.NewClient("http://"+addr, 500*time.Millisecond, zerolog.Nop()).For("p")
	_, err = b.GetBootstrapState(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, domain.KindNetwork, domain.Classify(err).Kind)
}

func TestClient_ContextoCancelado(t *testing.T) {
	base, _ := fakeGateway(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := remote.NewClient(base, time.Second, zerolog.Nop()).For("p").ListProducts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
