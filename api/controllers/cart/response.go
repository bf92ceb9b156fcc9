package cart

import (
	cartsvc "github.com/jtbakery/storefront-backend/internal/cart"
)

// CartView is the cart plus its derived totals, the shape every cart
// endpoint responds with.
type CartView struct {
	*cartsvc.State
	Totals cartsvc.Totals `json:"totals"`
}

func newCartView(state *cartsvc.State, totals cartsvc.Totals) CartView {
	return CartView{State: state, Totals: totals}
}
