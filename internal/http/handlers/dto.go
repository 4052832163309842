package handlers

import (
	"freight-broker-service/internal/domain"
)

type createLoadRequest struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Dimensions      domain.Dimensions `json:"dimensions"`
	Payload         float64           `json:"payload"`
	PickUpAddress   *domain.Address   `json:"pick_up_address"`
	DeliveryAddress *domain.Address   `json:"delivery_address"`
}

type updateLoadRequest struct {
	Name            *string            `json:"name"`
	Description     *string            `json:"description"`
	Dimensions      *domain.Dimensions `json:"dimensions"`
	Payload         *float64           `json:"payload"`
	PickUpAddress   *domain.Address    `json:"pick_up_address"`
	DeliveryAddress *domain.Address    `json:"delivery_address"`
}

type loadDTO struct {
	ID              int64             `json:"id"`
	CreatedBy       int64             `json:"created_by"`
	AssignedTo      *int64            `json:"assigned_to,omitempty"`
	Status          string            `json:"status"`
	State           string            `json:"state,omitempty"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	Dimensions      domain.Dimensions `json:"dimensions"`
	Payload         float64           `json:"payload"`
	PickUpAddress   domain.Address    `json:"pick_up_address"`
	DeliveryAddress domain.Address    `json:"delivery_address"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type postLoadResponse struct {
	Status     string `json:"status"`
	AssignedTo *int64 `json:"assigned_to,omitempty"`
	TruckID    *int64 `json:"truck_id,omitempty"`
}

type loadsResponse struct {
	Loads []loadDTO `json:"loads"`
}

type logEntryDTO struct {
	Message string `json:"message"`
	Time    string `json:"time"`
}

type shippingLogResponse struct {
	Logs []logEntryDTO `json:"logs"`
}

type createTruckRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type updateTruckRequest struct {
	Name *string `json:"name"`
}

type truckDTO struct {
	ID        int64  `json:"id"`
	CreatedBy int64  `json:"created_by"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Active    bool   `json:"active"`
	LoadID    *int64 `json:"load_id,omitempty"`
}

type trucksResponse struct {
	Trucks []truckDTO `json:"trucks"`
}
