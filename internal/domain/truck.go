package domain

type (
	// TruckType represents the capacity class of a truck.
	TruckType string
	// TruckStatus represents the availability of a truck.
	TruckStatus string
)

// List of possible truck capacity classes, smallest first.
const (
	TruckTypeSprinter      TruckType = "SPRINTER"
	TruckTypeSmallStraight TruckType = "SMALL_STRAIGHT"
	TruckTypeLargeStraight TruckType = "LARGE_STRAIGHT"
)

// List of possible truck statuses.
const (
	TruckStatusFree     TruckStatus = "FREE"
	TruckStatusAssigned TruckStatus = "ASSIGNED"
	TruckStatusOnRoute  TruckStatus = "ON_ROUTE"
)

// Capacity bounds what a capacity class can carry: the inner cargo
// space in centimeters and the maximum payload in kilograms.
type Capacity struct {
	Dimensions Dimensions
	Payload    float64
}

// truckCapacities is the fixed capacity-class table, ordered ascending
// by both volume and payload.
var truckCapacities = [...]struct {
	Type     TruckType
	Capacity Capacity
}{
	{TruckTypeSprinter, Capacity{Dimensions{Width: 300, Length: 250, Height: 170}, 1700}},
	{TruckTypeSmallStraight, Capacity{Dimensions{Width: 500, Length: 250, Height: 170}, 2500}},
	{TruckTypeLargeStraight, Capacity{Dimensions{Width: 700, Length: 350, Height: 200}, 4000}},
}

// Valid checks if the TruckType is a known capacity class.
func (t TruckType) Valid() bool {
	for _, v := range truckCapacities {
		if t == v.Type {
			return true
		}
	}
	return false
}

// Valid checks if the TruckStatus is valid.
func (s TruckStatus) Valid() bool {
	return s == TruckStatusFree || s == TruckStatusAssigned || s == TruckStatusOnRoute
}

// Rank returns the position of the capacity class in the ordered table,
// or -1 for an unknown class. Smaller rank means smaller truck.
func (t TruckType) Rank() int {
	for i, v := range truckCapacities {
		if t == v.Type {
			return i
		}
	}
	return -1
}

// Capacity returns the capacity bounds of the class.
func (t TruckType) Capacity() (Capacity, bool) {
	for _, v := range truckCapacities {
		if t == v.Type {
			return v.Capacity, true
		}
	}
	return Capacity{}, false
}

// CanCarry reports whether the class fits the given load spec: every
// dimension and the payload must meet or exceed the load's.
func (t TruckType) CanCarry(d Dimensions, payload float64) bool {
	c, ok := t.Capacity()
	if !ok {
		return false
	}
	return c.Dimensions.Width >= d.Width &&
		c.Dimensions.Length >= d.Length &&
		c.Dimensions.Height >= d.Height &&
		c.Payload >= payload
}

// Truck represents a capacity-classed vehicle owned by a driver.
type Truck struct {
	ID        int64
	CreatedBy int64
	Name      string
	Type      TruckType
	Status    TruckStatus
	// Active marks the truck the driver has chosen for assignments.
	// A driver has at most one active truck.
	Active bool
	// LoadID references the load the truck is reserved for while its
	// status is ASSIGNED or ON_ROUTE.
	LoadID *int64
}

// PartialTruckUpdate carries optional fields to update a truck.
// A nil field means "do not change" that attribute.
type PartialTruckUpdate struct {
	ID   int64
	Name *string
}
