// Package reports contiene los reportes de negocio: resumen del dashboard, reposición,
// exportaciones y hojas de etiquetas.
package reports

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// Source lecturas que consumen los reportes (las cumple queries.Queries).
type Source interface {
	DashboardStats(ctx context.Context) (*entity.DashboardStats, error)
	ProfitLoss(ctx context.Context, from, to time.Time) (*entity.ProfitLoss, error)
	LowStockProducts(ctx context.Context, threshold int64) ([]entity.Product, error)
	Products(ctx context.Context) ([]entity.Product, error)
	Product(ctx context.Context, id string) (*entity.Product, error)
	Customers(ctx context.Context) ([]entity.Customer, error)
	Orders(ctx context.Context) ([]entity.Order, error)
	Invoices(ctx context.Context) ([]entity.Invoice, error)
}

// Table tabla genérica a exportar: cabecera y filas ya formateadas.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}

// TableWriter escribe una tabla en un formato concreto (xlsx, csv).
type TableWriter interface {
	Format() string
	ContentType() string
	Write(w io.Writer, t Table) error
}

// Label etiqueta de producto.
type Label struct {
	Name    string
	Barcode string
	Price   string
	Detail  string // talla / color / ubicación
}

// LabelSheetGenerator genera una hoja de etiquetas imprimible.
type LabelSheetGenerator interface {
	GenerateLabelSheet(ctx context.Context, labels []Label, withQR bool) ([]byte, error)
}
