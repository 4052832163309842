package matching

import (
	"sort"

	"freight-broker-service/internal/apperr"
	"freight-broker-service/internal/domain"
)

// EligibleTrucks returns the trucks able to carry the load, ordered by
// capacity class ascending so the smallest sufficient truck is tried
// first, with truck id as the tie-break. It has no side effects and
// never mutates the input slice.
func EligibleTrucks(load *domain.Load, trucks []domain.Truck) ([]domain.Truck, error) {
	if load == nil || !load.Dimensions.Positive() || load.Payload <= 0 {
		return nil, apperr.ErrInvalidLoadSpec
	}

	out := make([]domain.Truck, 0, len(trucks))
	for _, t := range trucks {
		if t.Type.CanCarry(load.Dimensions, load.Payload) {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].Type.Rank(), out[j].Type.Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
