package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/sahil-erp/pkg/config"
)

// testPool requiere POSTGRES_TEST_URL apuntando a una base descartable.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE identities, user_profiles, approvals, inventory_records, invoices, orders,
		products, customers, notifications, data_entries`)
	require.NoError(t, err)
	return pool
}

func TestStore_PrimerPerfilYAprobaciones(t *testing.T) {
	ctx := context.Background()
	s := postgres.NewStore(testPool(t))
	owner, clerk := s.For("owner"), s.For("clerk")

	require.NoError(t, owner.SaveCallerUserProfile(ctx, entity.UserProfile{Name: "Owner"}))
	require.NoError(t, clerk.SaveCallerUserProfile(ctx, entity.UserProfile{Name: "Clerk", AppRole: entity.RoleAdmin}))
	require.NoError(t, clerk.RequestApproval(ctx))

	st, err := owner.GetBootstrapState(ctx)
	require.NoError(t, err)
	assert.True(t, st.IsAdmin)
	assert.True(t, st.IsApproved)

	st, err = clerk.GetBootstrapState(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsAdmin)
	assert.Equal(t, entity.ApprovalPending, st.ApprovalStatus)

	assert.ErrorIs(t, clerk.SetApproval(ctx, "clerk", entity.ApprovalApproved), domain.ErrUnauthorized)
	require.NoError(t, owner.SetApproval(ctx, "clerk", entity.ApprovalApproved))
	ok, err := clerk.IsCallerApproved(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_StockNuncaNegativo(t *testing.T) {
	ctx := context.Background()
	b := postgres.NewStore(testPool(t)).For("owner")

	p, err := b.CreateProduct(ctx, entity.Product{Name: "Kurta", Price: decimal.NewFromInt(1000), StockLevel: 3, ReorderLevel: 5})
	require.NoError(t, err)

	_, err = b.AdjustStock(ctx, p.ID, -5)
	require.Error(t, err)
	c := domain.ClassifyStockError(err)
	assert.True(t, c.IsInsufficientStock)
	require.NotNil(t, c.Available)
	require.NotNil(t, c.Requested)
	assert.EqualValues(t, 3, *c.Available)
	assert.EqualValues(t, 5, *c.Requested)

	got, err := b.AdjustStock(ctx, p.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.StockLevel)

	records, err := b.ListInventoryRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(-3), records[0].QuantityChange)

	low, err := b.ListLowStockProducts(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, low, 1)
}

func TestStore_FacturaYResultado(t *testing.T) {
	ctx := context.Background()
	b := postgres.NewStore(testPool(t)).For("owner")

	p, err := b.CreateProduct(ctx, entity.Product{Name: "Saree", Price: decimal.NewFromInt(500), CostPrice: decimal.NewFromInt(300), StockLevel: 10})
	require.NoError(t, err)
	cu, err := b.CreateCustomer(ctx, entity.Customer{Name: "Asha"})
	require.NoError(t, err)

	inv, err := b.CreateInvoice(ctx, entity.Invoice{
		CustomerID: cu.ID,
		Items:      []entity.InvoiceItem{{ProductID: p.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(500)}},
		Subtotal:   decimal.NewFromInt(1000), TaxRate: decimal.NewFromInt(18),
		Tax: decimal.NewFromInt(180), Total: decimal.NewFromInt(1180),
		Status: entity.InvoiceStatusPaid,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^INV-\d{5}$`, inv.ID)

	got, err := b.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(1180)))

	now := time.Now().UTC()
	pl, err := b.GetProfitLoss(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, pl.Revenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, pl.CostOfGoods.Equal(decimal.NewFromInt(600)))
	assert.True(t, pl.GrossProfit.Equal(decimal.NewFromInt(400)))

	missing, err := b.GetInvoice(ctx, "INV-99999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIdentityRepo_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewIdentityRepository(testPool(t))
	id := &entity.Identity{Principal: "p-1", Email: "a@sahil.in", PasswordHash: "x", CreatedAt: time.Now()}

	require.NoError(t, repo.Create(ctx, id))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Identity{Principal: "p-2", Email: "a@sahil.in", PasswordHash: "y"}), domain.ErrEmailAlreadyExists)

	got, err := repo.FindByEmail(ctx, "a@sahil.in")
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.Principal)

	none, err := repo.FindByEmail(ctx, "b@sahil.in")
	require.NoError(t, err)
	assert.Nil(t, none)
}
