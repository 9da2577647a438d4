package polling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sahil-erp/internal/application/polling"
)

func TestController_EnableDisableModule(t *testing.T) {
	c := polling.NewController()
	assert.Equal(t, polling.Policy{}, c.Policy())

	c.EnablePolling()
	c.SetActiveModule(polling.ModuleOrders)
	assert.Equal(t, polling.Policy{IsActive: true, ActiveModule: polling.ModuleOrders}, c.Policy())

	c.DisablePolling()
	assert.False(t, c.Policy().IsActive)
	assert.Equal(t, polling.ModuleOrders, c.Policy().ActiveModule, "desactivar no borra el módulo")
}

func TestController_SubscribeNotificaSoloCambios(t *testing.T) {
	c := polling.NewController()
	ch, cancel := c.Subscribe()
	defer cancel()

	c.EnablePolling()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("se esperaba notificación")
	}

	c.EnablePolling() // sin cambio
	select {
	case <-ch:
		t.Fatal("no debe notificar si la política no cambió")
	default:
	}
}

func TestController_SubscribeCoalesce(t *testing.T) {
	c := polling.NewController()
	ch, cancel := c.Subscribe()
	defer cancel()

	c.EnablePolling()
	c.SetActiveModule(polling.ModuleInventory)
	c.SetActiveModule(polling.ModuleUsers)

	<-ch
	select {
	case <-ch:
		t.Fatal("las señales pendientes se coalescen en una")
	default:
	}
	assert.Equal(t, polling.ModuleUsers, c.Policy().ActiveModule)
}

func TestTable_PerModule(t *testing.T) {
	tbl := polling.NewTable(polling.GatingPerModule, polling.DefaultRules())

	inactive := polling.Policy{IsActive: false, ActiveModule: polling.ModuleOrders}
	assert.Zero(t, tbl.Interval(inactive, polling.EntityOrders))

	orders := polling.Policy{IsActive: true, ActiveModule: polling.ModuleOrders}
	assert.Equal(t, 15*time.Second, tbl.Interval(orders, polling.EntityOrders))
	assert.Zero(t, tbl.Interval(orders, polling.EntityApprovals))
	assert.Equal(t, 10*time.Second, tbl.Interval(orders, polling.EntityNotifications), "sin módulos = siempre")

	assert.Zero(t, tbl.Interval(orders, polling.Entity("desconocida")))
}

func TestTable_Global(t *testing.T) {
	tbl := polling.NewTable(polling.GatingGlobal, polling.DefaultRules())
	p := polling.Policy{IsActive: true, ActiveModule: polling.ModuleOrders}
	assert.Equal(t, 15*time.Second, tbl.Interval(p, polling.EntityApprovals))
	assert.Zero(t, tbl.Interval(polling.Policy{}, polling.EntityApprovals))
}

func TestParse(t *testing.T) {
	m, ok := polling.ParseModule("barcode")
	assert.True(t, ok)
	assert.Equal(t, polling.ModuleBarcode, m)

	_, ok = polling.ParseModule("payroll")
	assert.False(t, ok)

	assert.Equal(t, polling.GatingGlobal, polling.ParseGating("global"))
	assert.Equal(t, polling.GatingPerModule, polling.ParseGating("module"))
}
