package catalog

import (
	"database/sql"
	"net"
	"time"

	"github.com/google/uuid"

	"es-mapper/schema"
)

// Audit is embedded in every top-level document.
type Audit struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// Address represents a physical or billing/shipping address.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
}

// Product represents a sellable item in the store.
type Product struct {
	ID          uuid.UUID
	SKU         string
	Name        string  `es:",text"`
	Description *string `es:",text"`
	PriceCents  int64   // in cents (minor currency unit)
	Stock       int32
	Weight      float64 // in grams
	Tags        []string
	Thumbnail   []byte

	Audit
}

// Category is a node of the product taxonomy. It refers to itself and
// only maps with mapper.CycleTruncate.
type Category struct {
	Name   string
	Slug   string `es:"path"`
	Parent *Category
}

// Customer represents a store customer.
type Customer struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string `es:"-"`
	DateOfBirth  *time.Time
	Addresses    []Address `es:",nested"`
	LastLoginIP  net.IP

	Audit
}

// GeoPoint is a latitude/longitude pair. At runtime it maps as a geo_point;
// mappings built from source see a plain object of two doubles.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Mapping implements mapper.CustomMapper.
func (GeoPoint) Mapping() (schema.Node, error) {
	return schema.Leaf("geo_point"), nil
}

// Store is a physical shop.
type Store struct {
	ID       uuid.UUID
	Name     string `es:",text"`
	Location GeoPoint
	Address  Address

	Audit
}

// Order represents a customer's purchase.
type Order struct {
	ID              uuid.UUID
	OrderNumber     string
	Status          OrderStatus
	Customer        Customer
	ShippingAddress Address
	Items           []OrderItem `es:",nested"`
	TotalCents      int64
	Currency        string `es:"currency_code"`
	PlacedAt        *time.Time
	ShippedAt       sql.NullTime
	RefundedAt      sql.Null[time.Time]
	Notes           string `es:",text"`

	Audit
}

// OrderItem is a line item within an order.
type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int16
	UnitPrice int64 // price at time of purchase (in cents)
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus int

const (
	StatusPending OrderStatus = iota
	StatusPaid
	StatusShipped
	StatusCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusPaid:
		return "PAID"
	case StatusShipped:
		return "SHIPPED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}
