package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jtbakery/storefront-backend/internal/catalog"
)

// ShippingMethod selects between home delivery and store pickup.
type ShippingMethod string

const (
	MethodShipping ShippingMethod = "shipping"
	MethodPickup   ShippingMethod = "pickup"
)

// ValidMethod reports whether the given value is a known shipping method.
func ValidMethod(m ShippingMethod) bool {
	return m == MethodShipping || m == MethodPickup
}

// Item is one cart line. Ids are unique within a cart; beverage-derived
// lines use the "bev_<catalogId>" form.
type Item struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
	Qty   int             `json:"qty"`
}

// State is the single source of truth for basket contents and buyer input.
// Items keep insertion order.
type State struct {
	Items            []Item         `json:"items"`
	ShippingMethod   ShippingMethod `json:"shippingMethod"`
	DeliveryDate     string         `json:"deliveryDate,omitempty"`
	PickupLocationID string         `json:"pickupLocationId,omitempty"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	StateCode string `json:"state"`
	Zip       string `json:"zip"`
}

// NewState returns an empty cart with the default shipping method.
func NewState() *State {
	return &State{Items: []Item{}, ShippingMethod: MethodShipping}
}

// AddItem appends a new line or merges into an existing one with the same
// id: quantities sum and the first-seen image wins when the incoming line
// has none.
func (s *State) AddItem(item Item) {
	for i := range s.Items {
		if s.Items[i].ID == item.ID {
			s.Items[i].Qty += item.Qty
			if s.Items[i].Image == "" {
				s.Items[i].Image = item.Image
			}
			return
		}
	}
	s.Items = append(s.Items, item)
}

// RemoveItem drops the line with the given id. Missing ids are a no-op.
func (s *State) RemoveItem(id string) {
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return
		}
	}
}

// UpdateQty sets the line's quantity. Values below one are treated as a
// removal request so a persisted cart never carries a zero/negative line.
func (s *State) UpdateQty(id string, qty int) {
	if qty < 1 {
		s.RemoveItem(id)
		return
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items[i].Qty = qty
			return
		}
	}
}

// Clear empties the basket. Buyer and shipping fields are untouched.
func (s *State) Clear() {
	s.Items = []Item{}
}

// Customer carries the buyer identity fields of the checkout form.
type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// SetCustomer replaces the buyer fields. No cross-field validation here;
// step gating happens in the checkout wizard.
func (s *State) SetCustomer(c Customer) {
	s.FirstName = c.FirstName
	s.LastName = c.LastName
	s.Email = c.Email
	s.Phone = c.Phone
}

// Shipping carries the delivery form fields.
type Shipping struct {
	Method           ShippingMethod
	DeliveryDate     string
	PickupLocationID string
	Address1         string
	Address2         string
	City             string
	StateCode        string
	Zip              string
}

// SetShipping replaces the delivery fields.
func (s *State) SetShipping(in Shipping) {
	s.ShippingMethod = in.Method
	s.DeliveryDate = in.DeliveryDate
	s.PickupLocationID = in.PickupLocationID
	s.Address1 = in.Address1
	s.Address2 = in.Address2
	s.City = in.City
	s.StateCode = in.StateCode
	s.Zip = in.Zip
}

// ResolveImages refills image references for beverage-derived lines whose
// snapshot was stored without one.
func (s *State) ResolveImages() {
	for i := range s.Items {
		if s.Items[i].Image != "" {
			continue
		}
		if !strings.HasPrefix(s.Items[i].ID, catalog.BeverageIDPrefix) {
			continue
		}
		bevID := strings.TrimPrefix(s.Items[i].ID, catalog.BeverageIDPrefix)
		if b := catalog.BeverageByID(bevID); b != nil {
			s.Items[i].Image = b.Image
		}
	}
}
