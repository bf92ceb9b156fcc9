package cart

import (
	"github.com/shopspring/decimal"

	cartsvc "github.com/jtbakery/storefront-backend/internal/cart"
)

// AddItemRequest is one line to merge into the basket.
type AddItemRequest struct {
	ID    string          `json:"id" validate:"required"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
	Qty   int             `json:"qty" validate:"required,min=1"`
}

// UpdateQtyRequest replaces a line's quantity. Zero or less removes the line.
type UpdateQtyRequest struct {
	Qty int `json:"qty"`
}

// ContactRequest carries the checkout form's buyer fields. All fields are
// free-form; step gating happens in the checkout wizard, not here.
type ContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
}

// ShippingRequest carries the delivery form fields.
type ShippingRequest struct {
	ShippingMethod   string `json:"shippingMethod" validate:"required,oneof=shipping pickup"`
	DeliveryDate     string `json:"deliveryDate"`
	PickupLocationID string `json:"pickupLocationId"`
	Address1         string `json:"address1"`
	Address2         string `json:"address2"`
	City             string `json:"city"`
	State            string `json:"state"`
	Zip              string `json:"zip"`
}

func (r AddItemRequest) toItem() cartsvc.Item {
	return cartsvc.Item{
		ID:    r.ID,
		Name:  r.Name,
		Price: r.Price,
		Image: r.Image,
		Qty:   r.Qty,
	}
}

func (r ContactRequest) toCustomer() cartsvc.Customer {
	return cartsvc.Customer{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

func (r ShippingRequest) toShipping() cartsvc.Shipping {
	return cartsvc.Shipping{
		Method:           cartsvc.ShippingMethod(r.ShippingMethod),
		DeliveryDate:     r.DeliveryDate,
		PickupLocationID: r.PickupLocationID,
		Address1:         r.Address1,
		Address2:         r.Address2,
		City:             r.City,
		StateCode:        r.State,
		Zip:              r.Zip,
	}
}
