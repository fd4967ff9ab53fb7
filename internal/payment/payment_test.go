package payment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	m, ok := r.Resolve("COD ")
	require.True(t, ok)
	require.Equal(t, CashOnDelivery, m.Code)
	require.Equal(t, "Cash On Delivery", m.DisplayName)

	_, ok = r.Resolve("card")
	require.False(t, ok)

	require.Len(t, r.Methods(), 1)
}

func TestRegisterKeepsOrder(t *testing.T) {
	r := NewRegistry(Method{Code: "cod", DisplayName: "Cash"}, Method{Code: "upi", DisplayName: "UPI"})
	r.Register(Method{Code: "cod", DisplayName: "Cash On Delivery"})

	methods := r.Methods()
	require.Len(t, methods, 2)
	require.Equal(t, "cod", methods[0].Code)
	require.Equal(t, "Cash On Delivery", methods[0].DisplayName)
	require.Equal(t, "upi", methods[1].Code)
}
