package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jhoicas/sahil-erp/internal/application/actor"
	"github.com/jhoicas/sahil-erp/internal/application/polling"
	"github.com/jhoicas/sahil-erp/internal/application/queries"
	"github.com/jhoicas/sahil-erp/internal/application/query"
	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/backend"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	store  *memory.Store
	actors *actor.Accessor
	ctrl   *polling.Controller
	q      *queries.Queries
}

func newFixture(t *testing.T, table *polling.Table) *fixture {
	t.Helper()
	store := memory.NewStore()
	actors := actor.NewAccessor(func(_ context.Context, id actor.Identity) (backend.Backend, error) {
		return store.For(id.Principal), nil
	}, zerolog.Nop())
	if table == nil {
		table = polling.NewTable(polling.GatingPerModule, polling.DefaultRules())
	}
	ctrl := polling.NewController()
	cache := query.New(zerolog.Nop())
	q := queries.New(cache, actors, ctrl, table, queries.Config{Retry: 0}, zerolog.Nop())
	t.Cleanup(func() {
		q.StopPolling()
		cache.Close()
	})
	return &fixture{store: store, actors: actors, ctrl: ctrl, q: q}
}

func (f *fixture) bind(t *testing.T, principal string) {
	t.Helper()
	require.NoError(t, f.actors.Bind(context.Background(), actor.Identity{Principal: principal}))
}

// ─── Sin actor ────────────────────────────────────────────────────────────────

func TestLecturas_SinActorDevuelvenVacioSinLlamar(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	products, err := f.q.Products(ctx)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	orders, err := f.q.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	approvals, err := f.q.Approvals(ctx)
	require.NoError(t, err)
	assert.Empty(t, approvals)

	low, err := f.q.LowStockProducts(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, low)

	p, err := f.q.Product(ctx, "p-1")
	require.NoError(t, err)
	assert.Nil(t, p)

	st, err := f.q.BootstrapState(ctx)
	require.NoError(t, err)
	assert.Nil(t, st)

	assert.Zero(t, f.store.Calls("ListProducts"))
	assert.Zero(t, f.store.Calls("ListOrders"))
	assert.Zero(t, f.store.Calls("GetBootstrapState"))
}

func TestEscrituras_SinActorFallan(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.q.CreateProduct(context.Background(), entity.Product{Name: "Saree"})
	assert.ErrorIs(t, err, domain.ErrActorUnavailable)
	assert.Zero(t, f.store.Calls("CreateProduct"))
}

// ─── Frescura ─────────────────────────────────────────────────────────────────

func TestBootstrapState_DosLlamadasUnaSolaRemota(t *testing.T) {
	f := newFixture(t, nil)
	f.bind(t, "owner")
	ctx := context.Background()

	_, err := f.q.BootstrapState(ctx)
	require.NoError(t, err)
	_, err = f.q.BootstrapState(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.Calls("GetBootstrapState"))
}

func TestSeedBootstrap_EvitaLecturasIndividuales(t *testing.T) {
	f := newFixture(t, nil)
	f.bind(t, "owner")
	ctx := context.Background()
	f.q.SeedBootstrap(&entity.BootstrapState{Profile: &entity.UserProfile{Name: "Owner"}, IsAdmin: true})

	admin, err := f.q.IsCallerAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, admin)
	prof, err := f.q.CurrentUserProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Owner", prof.Name)

	assert.Zero(t, f.store.Calls("IsCallerAdmin"))
	assert.Zero(t, f.store.Calls("GetCallerUserProfile"))
}

// ─── Invalidación ─────────────────────────────────────────────────────────────

func seedOrderWorld(t *testing.T, f *fixture) (entity.Customer, entity.Product) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.q.SaveProfile(ctx, entity.UserProfile{Name: "Owner"}))
	c, err := f.q.CreateCustomer(ctx, entity.Customer{Name: "Asha Textiles"})
	require.NoError(t, err)
	p, err := f.q.CreateProduct(ctx, entity.Product{Name: "Kurta", Price: decimal.NewFromInt(500), StockLevel: 10, ReorderLevel: 2})
	require.NoError(t, err)
	return *c, *p
}

// primeAll deja en caché una entrada por cada prefijo conocido.
func primeAll(t *testing.T, f *fixture, productID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.q.Products(ctx)
	require.NoError(t, err)
	_, err = f.q.Product(ctx, productID)
	require.NoError(t, err)
	_, err = f.q.LowStockProducts(ctx, 0)
	require.NoError(t, err)
	_, err = f.q.Customers(ctx)
	require.NoError(t, err)
	_, err = f.q.Orders(ctx)
	require.NoError(t, err)
	_, err = f.q.Invoices(ctx)
	require.NoError(t, err)
	_, err = f.q.InventoryRecords(ctx)
	require.NoError(t, err)
	_, err = f.q.Notifications(ctx)
	require.NoError(t, err)
	_, err = f.q.DashboardStats(ctx)
	require.NoError(t, err)
	_, err = f.q.ProfitLoss(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
}

func TestCreateOrder_InvalidaSusClavesUnaVez(t *testing.T) {
	f := newFixture(t, nil)
	f.bind(t, "owner")
	ctx := context.Background()
	c, p := seedOrderWorld(t, f)
	primeAll(t, f, p.ID)

	_, err := f.q.CreateOrder(ctx, entity.Order{
		CustomerID: c.ID,
		Items:      []entity.OrderItem{{ProductID: p.ID, Quantity: 2, UnitPrice: p.Price}},
	})
	require.NoError(t, err)

	cache := f.q.Cache()
	for _, k := range []query.Key{
		queries.KeyOrders, queries.KeyProducts, queries.KeyDashboardStats, queries.KeyInvoices,
		append(query.Key{}, queries.KeyProduct[0], p.ID),
		{"lowStockProducts", "0"},
	} {
		assert.Equal(t, 1, cache.InvalidationCount(k), "clave %v", k)
	}
	assert.Zero(t, cache.InvalidationCount(queries.KeyCustomers))
	assert.Zero(t, cache.InvalidationCount(queries.KeyNotifications))

	_, err = f.q.Orders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.Calls("ListOrders"), "la clave invalidada se vuelve a pedir")
	_, err = f.q.Customers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.Calls("ListCustomers"), "la clave no afectada sigue fresca")
}

func TestAdjustStock_ErrorNoInvalida(t *testing.T) {
	f := newFixture(t, nil)
	f.bind(t, "owner")
	ctx := context.Background()
	_, p := seedOrderWorld(t, f)
	primeAll(t, f, p.ID)

	_, err := f.q.AdjustStock(ctx, p.ID, -50)
	require.Error(t, err)
	assert.True(t, domain.ClassifyStockError(err).IsInsufficientStock)
	assert.Zero(t, f.q.Cache().InvalidationCount(queries.KeyProducts))

	_, err = f.q.AdjustStock(ctx, p.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, f.q.Cache().InvalidationCount(queries.KeyProducts))
	assert.Equal(t, 1, f.q.Cache().InvalidationCount(queries.KeyInventoryRecords))
}

func TestMutacion_ErrorRemotoSePropagaSinCambios(t *testing.T) {
	f := newFixture(t, nil)
	f.bind(t, "owner")
	boom := &domain.RemoteError{Code: domain.CodeConflict, Message: "duplicate"}
	f.store.FailNext("CreateCustomer", boom)

	_, err := f.q.CreateCustomer(context.Background(), entity.Customer{Name: "X"})
	var re *domain.RemoteError
	require.True(t, errors.As(err, &re))
	assert.Same(t, boom, re)
}

func TestInvalidations_CubreTodasLasMutaciones(t *testing.T) {
	for m, ks := range queries.Invalidations {
		assert.NotEmpty(t, ks, "mutación %s sin claves", m)
	}
	// el primer perfil guardado pasa a admin aprobado
	assert.Contains(t, queries.Invalidations[queries.MutSaveProfile], queries.KeyIsCallerAdmin)
	assert.Contains(t, queries.Invalidations[queries.MutSaveProfile], queries.KeyIsCallerApproved)
}

func TestSaveProfile_PrimerPerfilRefrescaBanderasDeAcceso(t *testing.T) {
	f := newFixture(t, nil)
	f.bind(t, "owner")
	ctx := context.Background()

	st, err := f.q.BootstrapState(ctx)
	require.NoError(t, err)
	f.q.SeedBootstrap(st)
	admin, err := f.q.IsCallerAdmin(ctx)
	require.NoError(t, err)
	require.False(t, admin)

	require.NoError(t, f.q.SaveProfile(ctx, entity.UserProfile{Name: "Owner"}))

	admin, err = f.q.IsCallerAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, admin, "la caché no conserva el false sembrado por el bootstrap")
	approved, err := f.q.IsCallerApproved(ctx)
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Equal(t, 1, f.store.Calls("IsCallerAdmin"))
}

func TestRefetchBootstrapState_IgnoraFrescura(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	st, err := f.q.RefetchBootstrapState(ctx)
	require.NoError(t, err)
	assert.Nil(t, st, "sin actor no se llama al backend")

	f.bind(t, "owner")
	_, err = f.q.BootstrapState(ctx)
	require.NoError(t, err)
	_, err = f.q.RefetchBootstrapState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.Calls("GetBootstrapState"))
}

func TestSyncStatus_PoliticaYInvalidaciones(t *testing.T) {
	f := newFixture(t, nil)
	f.bind(t, "owner")
	ctx := context.Background()
	_, p := seedOrderWorld(t, f)
	primeAll(t, f, p.ID)

	byEntity := func() map[polling.Entity]queries.EntityStatus {
		out := make(map[polling.Entity]queries.EntityStatus)
		for _, s := range f.q.SyncStatus() {
			out[s.Entity] = s
		}
		return out
	}

	st := byEntity()
	require.Len(t, st, 11)
	assert.Zero(t, st[polling.EntityProducts].Interval, "polling apagado")
	assert.False(t, st[polling.EntityProducts].Stale)
	assert.True(t, st[polling.EntityApprovals].Stale, "nunca leída")

	f.ctrl.SetActiveModule(polling.ModuleInventory)
	f.ctrl.EnablePolling()
	_, err := f.q.AdjustStock(ctx, p.ID, -1)
	require.NoError(t, err)

	st = byEntity()
	assert.Equal(t, 30*time.Second, st[polling.EntityProducts].Interval)
	assert.Zero(t, st[polling.EntityOrders].Interval, "fuera de su módulo")
	assert.True(t, st[polling.EntityProducts].Stale)
	assert.Equal(t, 1, st[polling.EntityProducts].Invalidations)
	assert.Zero(t, st[polling.EntityCustomers].Invalidations)
}

// ─── Polling ──────────────────────────────────────────────────────────────────

func TestPolling_SoloModuloActivo(t *testing.T) {
	tick := 10 * time.Millisecond
	table := polling.NewTable(polling.GatingPerModule, map[polling.Entity]polling.Rule{
		polling.EntityOrders:    {Interval: tick, Modules: []polling.Module{polling.ModuleOrders}},
		polling.EntityApprovals: {Interval: tick, Modules: []polling.Module{polling.ModuleUsers}},
	})
	f := newFixture(t, table)
	f.bind(t, "owner")
	require.NoError(t, f.q.SaveProfile(context.Background(), entity.UserProfile{Name: "Owner"}))

	f.q.StartPolling()
	f.q.StartPolling() // idempotente
	assert.Equal(t, 11, f.q.Cache().Stats().Observers)

	f.ctrl.SetActiveModule(polling.ModuleOrders)
	f.ctrl.EnablePolling()
	assert.Eventually(t, func() bool { return f.store.Calls("ListOrders") >= 2 }, time.Second, tick)
	assert.Zero(t, f.store.Calls("ListApprovals"))

	f.ctrl.DisablePolling()
	time.Sleep(2 * tick)
	frozen := f.store.Calls("ListOrders")
	time.Sleep(5 * tick)
	assert.Equal(t, frozen, f.store.Calls("ListOrders"))

	f.q.StopPolling()
	assert.Equal(t, 0, f.q.Cache().Stats().Observers)
}
