package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sahil-erp/internal/domain"
)

func TestClassifyStockError_InsufficientStockConCantidades(t *testing.T) {
	err := errors.New("Insufficient stock for product P-1: available 3, requested 5")

	c := domain.ClassifyStockError(err)

	assert.True(t, c.IsInsufficientStock)
	assert.Equal(t, domain.KindInsufficientStock, c.Kind)
	require.NotNil(t, c.Available)
	require.NotNil(t, c.Requested)
	assert.EqualValues(t, 3, *c.Available)
	assert.EqualValues(t, 5, *c.Requested)
	assert.Equal(t, "Stock insuficiente: disponible 3, solicitado 5.", c.Message)
}

func TestClassifyStockError_InsufficientStockSinCantidades(t *testing.T) {
	c := domain.ClassifyStockError(errors.New("insufficient stock"))

	assert.True(t, c.IsInsufficientStock)
	assert.Nil(t, c.Available)
	assert.Equal(t, "Stock insuficiente para completar la operación.", c.Message)

	generic := domain.ClassifyStockError(errors.New("canister trapped"))
	assert.False(t, generic.IsInsufficientStock)
	assert.NotEqual(t, c.Message, generic.Message)
	assert.Contains(t, generic.Message, "canister trapped")
}

func TestClassifyStockError_CodigoTipadoGanaAlTexto(t *testing.T) {
	err := &domain.RemoteError{Code: domain.CodeInsufficientStock, Message: "stock bajo (available=1 requested=4)"}

	c := domain.ClassifyStockError(fmt.Errorf("adjust stock: %w", err))

	assert.True(t, c.IsInsufficientStock)
	require.NotNil(t, c.Available)
	assert.EqualValues(t, 1, *c.Available)
	assert.EqualValues(t, 4, *c.Requested)
}

func TestClassifyApprovalError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind domain.Kind
	}{
		{"rechazado", errors.New("User access has been rejected"), domain.KindRejected},
		{"rechazado antes que unauthorized", errors.New("Unauthorized: user rejected"), domain.KindRejected},
		{"solo admins", errors.New("Only admins can approve users"), domain.KindAuthorization},
		{"red", errors.New("Failed to fetch"), domain.KindNetwork},
		{"desconocido", errors.New("boom"), domain.KindUnknown},
		{"codigo tipado", &domain.RemoteError{Code: domain.CodeRejected, Message: "nope"}, domain.KindRejected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, domain.ClassifyApprovalError(tc.err).Kind)
		})
	}
}

func TestClassifyProfileSaveError(t *testing.T) {
	assert.Equal(t, domain.KindNetwork, domain.ClassifyProfileSaveError(errors.New("request timeout")).Kind)
	assert.Equal(t, domain.KindAuthorization, domain.ClassifyProfileSaveError(errors.New("Permission denied")).Kind)

	v := domain.ClassifyProfileSaveError(errors.New("email is required"))
	assert.Equal(t, domain.KindValidation, v.Kind)
	assert.Equal(t, "email is required", v.Message)

	// el flujo de perfil no conoce "rejected": cae en desconocido con el mensaje crudo
	r := domain.ClassifyProfileSaveError(errors.New("rejected"))
	assert.Equal(t, domain.KindUnknown, r.Kind)
	assert.Equal(t, "rejected", r.Message)
}

func TestClassify_Generico(t *testing.T) {
	assert.Equal(t, domain.KindNotFound, domain.Classify(domain.ErrNotFound).Kind)
	assert.Equal(t, domain.KindNetwork, domain.Classify(fmt.Errorf("rpc: %w", domain.ErrNetwork)).Kind)
	assert.Equal(t, domain.KindInsufficientStock, domain.Classify(errors.New("insufficient stock: available 0, requested 1")).Kind)
	assert.Equal(t, "UNKNOWN", domain.Classify(errors.New("x")).Code())
	assert.Equal(t, domain.Classification{}, domain.Classify(nil))
}

func TestRemoteError_Is(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &domain.RemoteError{Code: domain.CodeNotFound, Message: "product not found"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "product not found", (&domain.RemoteError{Message: "product not found"}).Error())
}
