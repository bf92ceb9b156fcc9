package checkout

import "github.com/jtbakery/storefront-backend/internal/cart"

// Step is one stage of the four-step checkout flow.
type Step string

const (
	StepCustomer Step = "customer"
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	StepReview   Step = "review"
)

// Steps lists the flow in order. Review is terminal; final submission is
// the payment provider's confirm call, not a wizard transition.
var Steps = []Step{StepCustomer, StepShipping, StepPayment, StepReview}

// Index returns the position of the step in the flow, or -1.
func Index(s Step) int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s names a known step.
func Valid(s Step) bool {
	return Index(s) >= 0
}

// CustomerComplete holds when every buyer identity field is filled.
func CustomerComplete(s *cart.State) bool {
	return s.FirstName != "" && s.LastName != "" && s.Email != "" && s.Phone != ""
}

// ShippingComplete holds for pickup once a location is chosen, and for
// delivery once the minimal address (line 1, city, zip) is filled.
func ShippingComplete(s *cart.State) bool {
	if s.ShippingMethod == cart.MethodPickup {
		return s.PickupLocationID != ""
	}
	return s.Address1 != "" && s.City != "" && s.Zip != ""
}

// UnlockedUpTo is the furthest step reachable by direct navigation. It is
// recomputed from the completeness predicates on every read rather than
// tracked imperatively, so clearing a field moves the boundary back with it.
func UnlockedUpTo(s *cart.State) Step {
	switch {
	case ShippingComplete(s):
		return StepPayment
	case CustomerComplete(s):
		return StepShipping
	default:
		return StepCustomer
	}
}
