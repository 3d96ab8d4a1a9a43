package models

import (
	"encoding/json"
	"time"
)

// PaymentMethod es el medio de pago elegido en el checkout
type PaymentMethod string

const (
	PaymentCard      PaymentMethod = "card"
	PaymentApplePay  PaymentMethod = "apple_pay"
	PaymentGooglePay PaymentMethod = "google_pay"
	PaymentCOD       PaymentMethod = "cod"
)

// DefaultCountry se aplica a direcciones sin país
const DefaultCountry = "UK"

// Address es una dirección postal embebida en el pedido
type Address struct {
	FullName string `json:"full_name" bson:"full_name" validate:"required"`
	Line1    string `json:"line1" bson:"line1" validate:"required"`
	Line2    string `json:"line2,omitempty" bson:"line2,omitempty"`
	City     string `json:"city" bson:"city" validate:"required"`
	County   string `json:"county,omitempty" bson:"county,omitempty"`
	Postcode string `json:"postcode" bson:"postcode" validate:"required"`
	Country  string `json:"country" bson:"country"`
}

func (a *Address) UnmarshalJSON(data []byte) error {
	type alias Address
	v := alias{Country: DefaultCountry}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Address(v)
	return nil
}

// OrderItem es una línea del pedido
type OrderItem struct {
	SKU             string   `json:"sku" bson:"sku" validate:"required"`
	Title           string   `json:"title" bson:"title" validate:"required"`
	Qty             int      `json:"qty" bson:"qty" validate:"min=1"`
	UnitPriceIncVAT *float64 `json:"unit_price_inc_vat" bson:"unit_price_inc_vat" validate:"required,gte=0"`
}

// Order es un pedido creado en el checkout. Nunca se modifica.
type Order struct {
	Email           string        `json:"email" bson:"email" validate:"required,email"`
	Phone           string        `json:"phone,omitempty" bson:"phone,omitempty"`
	ShippingAddress Address       `json:"shipping_address" bson:"shipping_address" validate:"required"`
	BillingAddress  *Address      `json:"billing_address,omitempty" bson:"billing_address,omitempty" validate:"omitempty"`
	Items           []OrderItem   `json:"items" bson:"items" validate:"required,min=1,dive"`
	TotalIncVAT     *float64      `json:"total_inc_vat" bson:"total_inc_vat" validate:"required,gte=0"`
	PaymentMethod   PaymentMethod `json:"payment_method" bson:"payment_method" validate:"oneof=card apple_pay google_pay cod"`
	CreatedAt       time.Time     `json:"-" bson:"created_at"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	v := alias{PaymentMethod: PaymentCard}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Order(v)
	return nil
}

// Validate aplica valores por defecto y valida el pedido
func (o *Order) Validate() error {
	if o.PaymentMethod == "" {
		o.PaymentMethod = PaymentCard
	}
	if o.ShippingAddress.Country == "" && o.ShippingAddress != (Address{}) {
		o.ShippingAddress.Country = DefaultCountry
	}
	if o.BillingAddress != nil && o.BillingAddress.Country == "" {
		o.BillingAddress.Country = DefaultCountry
	}
	return check(o)
}

// Total devuelve el importe total, 0 si no está informado
func (o *Order) Total() float64 {
	if o.TotalIncVAT == nil {
		return 0
	}
	return *o.TotalIncVAT
}

// Billing devuelve la dirección de facturación; sin ella se usa la de envío
func (o *Order) Billing() Address {
	if o.BillingAddress != nil {
		return *o.BillingAddress
	}
	return o.ShippingAddress
}

// CheckoutResult es la respuesta del checkout
type CheckoutResult struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
}
