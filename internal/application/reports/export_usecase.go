package reports

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// Conjuntos exportables.
const (
	ExportProducts = "products"
	ExportInvoices = "invoices"
	ExportOrders   = "orders"
)

// ExportUseCase exporta listados en los formatos registrados.
type ExportUseCase struct {
	writers map[string]TableWriter
	now     func() time.Time
}

// NewExportUseCase registra un TableWriter por formato; el primero es el formato por defecto.
func NewExportUseCase(writers ...TableWriter) *ExportUseCase {
	m := make(map[string]TableWriter, len(writers)+1)
	for i, w := range writers {
		m[w.Format()] = w
		if i == 0 {
			m[""] = w
		}
	}
	return &ExportUseCase{writers: m, now: time.Now}
}

// Export genera el archivo del conjunto kind en el formato pedido.
func (uc *ExportUseCase) Export(ctx context.Context, src Source, kind, format string) (data []byte, filename, contentType string, err error) {
	w, ok := uc.writers[format]
	if !ok {
		return nil, "", "", fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}

	var t Table
	switch kind {
	case ExportProducts:
		t, err = uc.productsTable(ctx, src)
	case ExportInvoices:
		t, err = uc.invoicesTable(ctx, src)
	case ExportOrders:
		t, err = uc.ordersTable(ctx, src)
	default:
		return nil, "", "", fmt.Errorf("%w: exportación %q", domain.ErrInvalidInput, kind)
	}
	if err != nil {
		return nil, "", "", err
	}

	var buf bytes.Buffer
	if err := w.Write(&buf, t); err != nil {
		return nil, "", "", fmt.Errorf("export %s: %w", kind, err)
	}
	filename = fmt.Sprintf("%s_%s.%s", kind, uc.now().Format("20060102"), w.Format())
	return buf.Bytes(), filename, w.ContentType(), nil
}

func (uc *ExportUseCase) productsTable(ctx context.Context, src Source) (Table, error) {
	products, err := src.Products(ctx)
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Sheet:   "Products",
		Headers: []string{"ID", "Name", "Category", "Size", "Color", "Price", "Cost", "Stock", "Reorder level", "Barcode", "Location"},
	}
	for _, p := range products {
		t.Rows = append(t.Rows, []string{
			p.ID, p.Name, p.Category, p.Size, p.Color,
			p.Price.StringFixed(2), p.CostPrice.StringFixed(2),
			strconv.FormatInt(p.StockLevel, 10), strconv.FormatInt(p.ReorderLevel, 10),
			p.Barcode, location(p),
		})
	}
	return t, nil
}

func (uc *ExportUseCase) invoicesTable(ctx context.Context, src Source) (Table, error) {
	invoices, err := src.Invoices(ctx)
	if err != nil {
		return Table{}, err
	}
	names, err := customerNames(ctx, src)
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Sheet:   "Invoices",
		Headers: []string{"ID", "Customer", "Subtotal", "Tax rate %", "Tax", "Total", "Status", "Created", "Due"},
	}
	for _, inv := range invoices {
		due := ""
		if inv.DueDate != nil {
			due = inv.DueDate.Format("2006-01-02")
		}
		t.Rows = append(t.Rows, []string{
			inv.ID, nameOr(names, inv.CustomerID),
			inv.Subtotal.StringFixed(2), inv.TaxRate.String(), inv.Tax.StringFixed(2), inv.Total.StringFixed(2),
			inv.Status, inv.CreatedAt.Format("2006-01-02"), due,
		})
	}
	return t, nil
}

func (uc *ExportUseCase) ordersTable(ctx context.Context, src Source) (Table, error) {
	orders, err := src.Orders(ctx)
	if err != nil {
		return Table{}, err
	}
	names, err := customerNames(ctx, src)
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Sheet:   "Orders",
		Headers: []string{"ID", "Customer", "Items", "Total", "Status", "Created"},
	}
	for _, o := range orders {
		t.Rows = append(t.Rows, []string{
			o.ID, nameOr(names, o.CustomerID), strconv.Itoa(len(o.Items)),
			o.Total.StringFixed(2), o.Status, o.CreatedAt.Format("2006-01-02"),
		})
	}
	return t, nil
}

func customerNames(ctx context.Context, src Source) (map[string]string, error) {
	customers, err := src.Customers(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(customers))
	for _, c := range customers {
		out[c.ID] = c.Name
	}
	return out, nil
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return id
}

func location(p entity.Product) string {
	return strings.Join(nonEmpty(p.Warehouse, p.Rack, p.Shelf), " / ")
}
