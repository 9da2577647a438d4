package queries

import (
	"strconv"
	"time"

	"github.com/jhoicas/sahil-erp/internal/application/query"
)

// Claves de caché. Las de registro único llevan el id como segundo elemento, así
// invalidar {"product"} alcanza a todos los productos cacheados.
var (
	KeyBootstrapState     = query.Key{"bootstrapState"}
	KeyCurrentUserProfile = query.Key{"currentUserProfile"}
	KeyIsCallerAdmin      = query.Key{"isCallerAdmin"}
	KeyIsCallerApproved   = query.Key{"isCallerApproved"}
	KeyApprovals          = query.Key{"approvals"}
	KeyUsers              = query.Key{"users"}
	KeyProducts           = query.Key{"products"}
	KeyProduct            = query.Key{"product"}
	KeyProductByBarcode   = query.Key{"productByBarcode"}
	KeyLowStockProducts   = query.Key{"lowStockProducts"}
	KeyCustomers          = query.Key{"customers"}
	KeyCustomer           = query.Key{"customer"}
	KeyOrders             = query.Key{"orders"}
	KeyOrder              = query.Key{"order"}
	KeyInvoices           = query.Key{"invoices"}
	KeyInvoice            = query.Key{"invoice"}
	KeyInventoryRecords   = query.Key{"inventoryRecords"}
	KeyNotifications      = query.Key{"notifications"}
	KeyDataEntries        = query.Key{"dataEntries"}
	KeyDashboardStats     = query.Key{"dashboardStats"}
	KeyProfitLoss         = query.Key{"profitLoss"}
)

func with(k query.Key, parts ...string) query.Key {
	out := make(query.Key, 0, len(k)+len(parts))
	out = append(out, k...)
	return append(out, parts...)
}

func productKey(id string) query.Key        { return with(KeyProduct, id) }
func barcodeKey(code string) query.Key      { return with(KeyProductByBarcode, code) }
func lowStockKey(threshold int64) query.Key { return with(KeyLowStockProducts, strconv.FormatInt(threshold, 10)) }
func customerKey(id string) query.Key       { return with(KeyCustomer, id) }
func orderKey(id string) query.Key          { return with(KeyOrder, id) }
func invoiceKey(id string) query.Key        { return with(KeyInvoice, id) }

func profitLossKey(from, to time.Time) query.Key {
	return with(KeyProfitLoss, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
}

// Mutation operación de escritura con efectos conocidos sobre la caché.
type Mutation string

const (
	MutSaveProfile           Mutation = "saveCallerUserProfile"
	MutRequestApproval       Mutation = "requestApproval"
	MutSetApproval           Mutation = "setApproval"
	MutAssignAppRole         Mutation = "assignAppRole"
	MutCreateProduct         Mutation = "createProduct"
	MutUpdateProduct         Mutation = "updateProduct"
	MutDeleteProduct         Mutation = "deleteProduct"
	MutAdjustStock           Mutation = "adjustStock"
	MutCreateCustomer        Mutation = "createCustomer"
	MutUpdateCustomer        Mutation = "updateCustomer"
	MutDeleteCustomer        Mutation = "deleteCustomer"
	MutCreateOrder           Mutation = "createOrder"
	MutUpdateOrderStatus     Mutation = "updateOrderStatus"
	MutDeleteOrder           Mutation = "deleteOrder"
	MutCreateInvoice         Mutation = "createInvoice"
	MutUpdateInvoiceStatus   Mutation = "updateInvoiceStatus"
	MutDeleteInvoice         Mutation = "deleteInvoice"
	MutCreateInventoryRecord Mutation = "createInventoryRecord"
	MutDeleteInventoryRecord Mutation = "deleteInventoryRecord"
	MutCreateNotification    Mutation = "createNotification"
	MutMarkNotificationRead  Mutation = "markNotificationRead"
	MutDeleteNotification    Mutation = "deleteNotification"
	MutCreateDataEntry       Mutation = "createDataEntry"
	MutDeleteDataEntry       Mutation = "deleteDataEntry"
)

var stockKeys = []query.Key{KeyProducts, KeyProduct, KeyProductByBarcode, KeyLowStockProducts, KeyDashboardStats}

func keys(groups ...[]query.Key) []query.Key {
	var out []query.Key
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Invalidations prefijos que cada escritura marca como viejos tras un éxito.
// Debe mantenerse alineada con los efectos reales del backend.
var Invalidations = map[Mutation][]query.Key{
	MutSaveProfile:     {KeyCurrentUserProfile, KeyIsCallerAdmin, KeyIsCallerApproved, KeyBootstrapState, KeyUsers},
	MutRequestApproval: {KeyIsCallerApproved, KeyBootstrapState, KeyApprovals},
	MutSetApproval:     {KeyApprovals, KeyUsers, KeyIsCallerApproved, KeyBootstrapState},
	MutAssignAppRole:   {KeyUsers, KeyCurrentUserProfile, KeyIsCallerAdmin, KeyBootstrapState},

	MutCreateProduct: stockKeys,
	MutUpdateProduct: stockKeys,
	MutDeleteProduct: stockKeys,
	MutAdjustStock:   keys(stockKeys, []query.Key{KeyInventoryRecords}),

	MutCreateCustomer: {KeyCustomers, KeyCustomer, KeyDashboardStats},
	MutUpdateCustomer: {KeyCustomers, KeyCustomer},
	MutDeleteCustomer: {KeyCustomers, KeyCustomer, KeyDashboardStats},

	MutCreateOrder:       keys([]query.Key{KeyOrders, KeyOrder, KeyInvoices, KeyProfitLoss}, stockKeys),
	MutUpdateOrderStatus: {KeyOrders, KeyOrder, KeyDashboardStats},
	MutDeleteOrder:       {KeyOrders, KeyOrder, KeyDashboardStats},

	MutCreateInvoice:       {KeyInvoices, KeyInvoice, KeyDashboardStats, KeyProfitLoss},
	MutUpdateInvoiceStatus: {KeyInvoices, KeyInvoice, KeyDashboardStats, KeyProfitLoss},
	MutDeleteInvoice:       {KeyInvoices, KeyInvoice, KeyDashboardStats, KeyProfitLoss},

	MutCreateInventoryRecord: keys([]query.Key{KeyInventoryRecords}, stockKeys),
	MutDeleteInventoryRecord: {KeyInventoryRecords},

	MutCreateNotification:   {KeyNotifications},
	MutMarkNotificationRead: {KeyNotifications},
	MutDeleteNotification:   {KeyNotifications},

	MutCreateDataEntry: {KeyDataEntries},
	MutDeleteDataEntry: {KeyDataEntries},
}
