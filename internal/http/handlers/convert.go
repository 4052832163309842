package handlers

import (
	"time"

	"freight-broker-service/internal/domain"
)

func (req createLoadRequest) toModel() *domain.Load {
	l := &domain.Load{
		Name:        req.Name,
		Description: req.Description,
		Dimensions:  req.Dimensions,
		Payload:     req.Payload,
	}
	if req.PickUpAddress != nil {
		l.PickUpAddress = *req.PickUpAddress
	}
	if req.DeliveryAddress != nil {
		l.DeliveryAddress = *req.DeliveryAddress
	}
	return l
}

func (req updateLoadRequest) toModel(id int64) domain.PartialLoadUpdate {
	return domain.PartialLoadUpdate{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		Dimensions:      req.Dimensions,
		Payload:         req.Payload,
		PickUpAddress:   req.PickUpAddress,
		DeliveryAddress: req.DeliveryAddress,
	}
}

func toLoadDTO(l *domain.Load) loadDTO {
	return loadDTO{
		ID:              l.ID,
		CreatedBy:       l.CreatedBy,
		AssignedTo:      l.AssignedTo,
		Status:          string(l.Status),
		State:           string(l.State),
		Name:            l.Name,
		Description:     l.Description,
		Dimensions:      l.Dimensions,
		Payload:         l.Payload,
		PickUpAddress:   l.PickUpAddress,
		DeliveryAddress: l.DeliveryAddress,
	}
}

func toLoadDTOs(loads []domain.Load) []loadDTO {
	out := make([]loadDTO, 0, len(loads))
	for i := range loads {
		out = append(out, toLoadDTO(&loads[i]))
	}
	return out
}

func toLogDTOs(entries []domain.LogEntry) []logEntryDTO {
	out := make([]logEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, logEntryDTO{
			Message: e.Message,
			Time:    e.Time.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func (req createTruckRequest) toModel() *domain.Truck {
	return &domain.Truck{
		Name: req.Name,
		Type: domain.TruckType(req.Type),
	}
}

func toTruckDTO(t *domain.Truck) truckDTO {
	return truckDTO{
		ID:        t.ID,
		CreatedBy: t.CreatedBy,
		Name:      t.Name,
		Type:      string(t.Type),
		Status:    string(t.Status),
		Active:    t.Active,
		LoadID:    t.LoadID,
	}
}

func toTruckDTOs(trucks []domain.Truck) []truckDTO {
	out := make([]truckDTO, 0, len(trucks))
	for i := range trucks {
		out = append(out, toTruckDTO(&trucks[i]))
	}
	return out
}
