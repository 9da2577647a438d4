package billing_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sahil-erp/internal/application/billing"
	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/application/queries"
	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/memory"
)

var (
	_ billing.InvoiceWriter = (*queries.Queries)(nil)
	_ billing.InvoiceReader = (*queries.Queries)(nil)
)

func TestComputeTotals_Dieciocho(t *testing.T) {
	got := billing.ComputeTotals([]entity.InvoiceItem{
		{ProductID: "a", Quantity: 2, UnitPrice: decimal.NewFromInt(300)},
		{ProductID: "b", Quantity: 1, UnitPrice: decimal.NewFromInt(400)},
	}, decimal.NewFromInt(18))

	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, got.Tax.Equal(decimal.NewFromInt(180)), "tax=%s", got.Tax)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(1180)), "total=%s", got.Total)
}

func TestComputeTotals_Redondeo(t *testing.T) {
	cases := []struct {
		subtotal int64
		rate     string
		tax      int64
	}{
		{1005, "5", 50},  // 50.25
		{1010, "5", 51},  // 50.5, la mitad sube
		{999, "12", 120}, // 119.88
		{0, "18", 0},
		{1000, "0", 0},
	}
	for _, tc := range cases {
		got := billing.ComputeTotals([]entity.InvoiceItem{{Quantity: 1, UnitPrice: decimal.NewFromInt(tc.subtotal)}}, decimal.RequireFromString(tc.rate))
		assert.True(t, got.Tax.Equal(decimal.NewFromInt(tc.tax)), "subtotal=%d rate=%s tax=%s", tc.subtotal, tc.rate, got.Tax)
		assert.True(t, got.Total.Equal(got.Subtotal.Add(got.Tax)))
	}
}

// writer adapta un backend en memoria a InvoiceWriter/InvoiceReader.
type writer struct {
	b interface {
		GetProduct(ctx context.Context, id string) (*entity.Product, error)
		GetCustomer(ctx context.Context, id string) (*entity.Customer, error)
		GetInvoice(ctx context.Context, id string) (*entity.Invoice, error)
		CreateInvoice(ctx context.Context, inv entity.Invoice) (*entity.Invoice, error)
		AdjustStock(ctx context.Context, id string, delta int64) (*entity.Product, error)
	}
}

func (w writer) Product(ctx context.Context, id string) (*entity.Product, error) {
	return w.b.GetProduct(ctx, id)
}
func (w writer) Customer(ctx context.Context, id string) (*entity.Customer, error) {
	return w.b.GetCustomer(ctx, id)
}
func (w writer) Invoice(ctx context.Context, id string) (*entity.Invoice, error) {
	return w.b.GetInvoice(ctx, id)
}
func (w writer) CreateInvoice(ctx context.Context, inv entity.Invoice) (*entity.Invoice, error) {
	return w.b.CreateInvoice(ctx, inv)
}
func (w writer) AdjustStock(ctx context.Context, id string, delta int64) (*entity.Product, error) {
	return w.b.AdjustStock(ctx, id, delta)
}

func seed(t *testing.T) (writer, *memory.Store, entity.Customer, entity.Product) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	b := store.For("owner")
	c, err := b.CreateCustomer(ctx, entity.Customer{Name: "Asha Textiles"})
	require.NoError(t, err)
	p, err := b.CreateProduct(ctx, entity.Product{Name: "Kurta", Price: decimal.NewFromInt(500), StockLevel: 3})
	require.NoError(t, err)
	return writer{b: b}, store, *c, *p
}

func TestCreateInvoice_CalculaAntesDeEnviar(t *testing.T) {
	w, store, c, p := seed(t)
	uc := billing.NewCreateInvoiceUseCase(zerolog.Nop())

	resp, err := uc.CreateInvoice(context.Background(), w, dto.CreateInvoiceRequest{
		CustomerID: c.ID,
		Items:      []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 2}},
		TaxRate:    decimal.NewFromInt(18),
	})
	require.NoError(t, err)
	assert.True(t, resp.Invoice.Subtotal.Equal(decimal.NewFromInt(1000)), "usa el precio del producto")
	assert.True(t, resp.Invoice.Tax.Equal(decimal.NewFromInt(180)))
	assert.True(t, resp.Invoice.Total.Equal(decimal.NewFromInt(1180)))
	assert.Equal(t, []string{p.ID}, resp.Invoice.ProductIDs)
	assert.Zero(t, store.Calls("AdjustStock"), "sin adjust_stock no se toca el inventario")
}

func TestCreateInvoice_AjusteDeStockInsuficiente(t *testing.T) {
	w, store, c, p := seed(t)
	uc := billing.NewCreateInvoiceUseCase(zerolog.Nop())

	resp, err := uc.CreateInvoice(context.Background(), w, dto.CreateInvoiceRequest{
		CustomerID:  c.ID,
		Items:       []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(100)}},
		AdjustStock: true,
	})
	require.NoError(t, err, "la factura se crea aunque el stock no alcance")
	require.Len(t, resp.StockFailures, 1)
	f := resp.StockFailures[0]
	assert.True(t, f.IsInsufficientStock)
	assert.Equal(t, "Stock insuficiente: disponible 3, solicitado 5.", f.Message)
	assert.Equal(t, 1, store.Calls("CreateInvoice"))
}

func TestCreateInvoice_Validaciones(t *testing.T) {
	w, _, c, _ := seed(t)
	uc := billing.NewCreateInvoiceUseCase(zerolog.Nop())
	ctx := context.Background()

	_, err := uc.CreateInvoice(ctx, w, dto.CreateInvoiceRequest{CustomerID: c.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateInvoice(ctx, w, dto.CreateInvoiceRequest{
		CustomerID: c.ID,
		Items:      []dto.InvoiceItemRequest{{ProductID: "x", Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
		TaxRate:    decimal.NewFromInt(120),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateInvoice(ctx, w, dto.CreateInvoiceRequest{
		CustomerID: c.ID,
		Items:      []dto.InvoiceItemRequest{{ProductID: "missing", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// emptyReply backend que acepta la factura pero responde sin registro.
type emptyReply struct{ writer }

func (emptyReply) CreateInvoice(context.Context, entity.Invoice) (*entity.Invoice, error) {
	return nil, nil
}

func TestCreateInvoice_RespuestaVaciaDelBackend(t *testing.T) {
	w, store, c, p := seed(t)
	uc := billing.NewCreateInvoiceUseCase(zerolog.Nop())

	var err error
	require.NotPanics(t, func() {
		_, err = uc.CreateInvoice(context.Background(), emptyReply{w}, dto.CreateInvoiceRequest{
			CustomerID:  c.ID,
			Items:       []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 1}},
			AdjustStock: true,
		})
	})
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, domain.KindNetwork, domain.Classify(err).Kind)
	assert.Zero(t, store.Calls("AdjustStock"), "sin factura no se descuenta stock")
}

type fakePDF struct{ doc billing.InvoiceDocument }

func (f *fakePDF) GenerateInvoicePDF(_ context.Context, doc billing.InvoiceDocument) ([]byte, error) {
	f.doc = doc
	return []byte("%PDF-1.4"), nil
}

func TestDownloadInvoicePDF(t *testing.T) {
	w, _, c, p := seed(t)
	ctx := context.Background()
	resp, err := billing.NewCreateInvoiceUseCase(zerolog.Nop()).CreateInvoice(ctx, w, dto.CreateInvoiceRequest{
		CustomerID: c.ID,
		Items:      []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	gen := &fakePDF{}
	pdf, name, err := billing.NewPDFUseCase(gen).DownloadInvoicePDF(ctx, w, resp.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(pdf))
	assert.Equal(t, "invoice_"+resp.Invoice.ID+".pdf", name)
	require.Len(t, gen.doc.Lines, 1)
	assert.Equal(t, "Kurta", gen.doc.Lines[0].ProductName)
	assert.True(t, gen.doc.Lines[0].Amount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "Asha Textiles", gen.doc.Customer.Name)

	_, _, err = billing.NewPDFUseCase(gen).DownloadInvoicePDF(ctx, w, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
