package domain

import "time"

type (
	// LoadStatus represents the coarse lifecycle phase of a load.
	LoadStatus string
	// LoadState represents the fine-grained delivery phase while a load is assigned.
	LoadState string
)

// List of possible load statuses.
const (
	LoadStatusNew       LoadStatus = "NEW"
	LoadStatusPosted    LoadStatus = "POSTED"
	LoadStatusAssigned  LoadStatus = "ASSIGNED"
	LoadStatusShipped   LoadStatus = "SHIPPED"
	LoadStatusDelivered LoadStatus = "DELIVERED"
)

// List of possible load states. LoadStateNone is the zero value used
// whenever the load is not assigned.
const (
	LoadStateNone              LoadState = ""
	LoadStateEnRouteToPickUp   LoadState = "EN_ROUTE_TO_PICK_UP"
	LoadStateArrivedToPickUp   LoadState = "ARRIVED_TO_PICK_UP"
	LoadStateEnRouteToDelivery LoadState = "EN_ROUTE_TO_DELIVERY"
	LoadStateArrivedToDelivery LoadState = "ARRIVED_TO_DELIVERY"
)

var allowedLoadStatuses = [...]LoadStatus{
	LoadStatusNew, LoadStatusPosted, LoadStatusAssigned, LoadStatusShipped, LoadStatusDelivered,
}

// Valid checks if the LoadStatus is valid.
func (s LoadStatus) Valid() bool {
	for _, v := range allowedLoadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Dimensions describes the physical size of a load in centimeters.
type Dimensions struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

// Positive reports whether every dimension is strictly positive.
func (d Dimensions) Positive() bool {
	return d.Width > 0 && d.Length > 0 && d.Height > 0
}

// Address is structured postal data for pick-up and delivery points.
type Address struct {
	City   string `json:"city"`
	Street string `json:"street"`
	Zip    string `json:"zip"`
}

// Empty reports whether the address carries no data.
func (a Address) Empty() bool {
	return a.City == "" && a.Street == "" && a.Zip == ""
}

// LogEntry is a single record of the load's append-only shipping log.
type LogEntry struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Load represents a cargo shipment created by a shipper.
type Load struct {
	ID              int64
	CreatedBy       int64
	AssignedTo      *int64
	Status          LoadStatus
	State           LoadState
	Name            string
	Description     string
	Dimensions      Dimensions
	Payload         float64
	PickUpAddress   Address
	DeliveryAddress Address
}

// Editable reports whether the shipper may still change or delete the load's spec.
func (l *Load) Editable() bool {
	return l.Status == LoadStatusNew
}

// Deletable reports whether the load has no active assignment and may be removed.
func (l *Load) Deletable() bool {
	return l.Status == LoadStatusNew || l.Status == LoadStatusPosted
}

// PartialLoadUpdate carries optional fields to update a load while it is NEW.
// A nil field means "do not change" that attribute.
type PartialLoadUpdate struct {
	ID              int64
	Name            *string
	Description     *string
	Dimensions      *Dimensions
	Payload         *float64
	PickUpAddress   *Address
	DeliveryAddress *Address
}
