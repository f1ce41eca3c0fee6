package api

import (
	"encoding/json"
	"time"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
)

type meta struct {
	TotalRecords uint64  `json:"totalRecords"`
	Offset       *uint64 `json:"offset,omitempty"`
	Limit        *uint64 `json:"limit,omitempty"`
	Count        uint64  `json:"count"`
}

type ApiResponse struct {
	Meta *meta `json:"meta,omitempty"`
	Data any   `json:"data"`
}

func (r ApiResponse) Byte() []byte {
	b, _ := json.Marshal(r)
	return b
}

func newCollectionResponse[T any](c types.Collection[T]) ApiResponse {
	return ApiResponse{
		Meta: &meta{
			TotalRecords: c.TotalCount,
			Offset:       &c.Offset,
			Limit:        &c.Limit,
			Count:        c.Count,
		},
		Data: c.Data,
	}
}

type errorResponse struct {
	Error     string              `json:"error"`
	Conflicts []types.Reservation `json:"conflicts,omitempty"`
}

type createReservationRequest struct {
	SpaceID        string    `json:"spaceID"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	IdempotencyKey string    `json:"idempotencyKey,omitempty"`
}

type cancelReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}

type availabilityResponse struct {
	SpaceID   string              `json:"spaceID"`
	StartTime time.Time           `json:"startTime"`
	EndTime   time.Time           `json:"endTime"`
	Available bool                `json:"available"`
	Conflicts []types.Reservation `json:"conflicts,omitempty"`
}

type queueCommandRequest struct {
	DeviceID    string          `json:"deviceID"`
	CommandType string          `json:"commandType"`
	Payload     json.RawMessage `json:"payload"`
	Priority    int             `json:"priority"`
	Confirmed   bool            `json:"confirmed"`
}

type queueCommandResponse struct {
	CommandID string `json:"commandID"`
}

type commandFailedRequest struct {
	Error string `json:"error,omitempty"`
	Retry bool   `json:"retry"`
}

type clearQueueResponse struct {
	Cleared int64 `json:"cleared"`
}
