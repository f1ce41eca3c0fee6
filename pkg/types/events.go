package types

import (
	"encoding/json"
	"time"
)

type SpaceStateChanged struct {
	SpaceID       string     `json:"spaceID"`
	Tenant        string     `json:"tenant"`
	PreviousState SpaceState `json:"previousState"`
	NewState      SpaceState `json:"newState"`
	Source        string     `json:"source"`
	Timestamp     time.Time  `json:"timestamp"`
}

func (m *SpaceStateChanged) ContentType() string {
	return "application/json"
}
func (m *SpaceStateChanged) TopicName() string {
	return "space.stateChanged"
}
func (m *SpaceStateChanged) Body() []byte {
	b, _ := json.Marshal(m)
	return b
}

type ReservationCreated struct {
	ReservationID string    `json:"reservationID"`
	SpaceID       string    `json:"spaceID"`
	Tenant        string    `json:"tenant"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Timestamp     time.Time `json:"timestamp"`
}

func (m *ReservationCreated) ContentType() string {
	return "application/json"
}
func (m *ReservationCreated) TopicName() string {
	return "reservation.created"
}
func (m *ReservationCreated) Body() []byte {
	b, _ := json.Marshal(m)
	return b
}

type ReservationCancelled struct {
	ReservationID string    `json:"reservationID"`
	SpaceID       string    `json:"spaceID"`
	Tenant        string    `json:"tenant"`
	Reason        string    `json:"reason,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

func (m *ReservationCancelled) ContentType() string {
	return "application/json"
}
func (m *ReservationCancelled) TopicName() string {
	return "reservation.cancelled"
}
func (m *ReservationCancelled) Body() []byte {
	b, _ := json.Marshal(m)
	return b
}

type DeviceActivated struct {
	DeviceID  string    `json:"deviceID"`
	DevEUI    string    `json:"devEUI"`
	Tenant    string    `json:"tenant"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *DeviceActivated) ContentType() string {
	return "application/json"
}
func (m *DeviceActivated) TopicName() string {
	return "device.activated"
}
func (m *DeviceActivated) Body() []byte {
	b, _ := json.Marshal(m)
	return b
}
