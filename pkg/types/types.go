package types

import (
	"encoding/json"
	"fmt"
	"time"
)

type SpaceState string

const (
	SpaceStateFree        SpaceState = "free"
	SpaceStateOccupied    SpaceState = "occupied"
	SpaceStateReserved    SpaceState = "reserved"
	SpaceStateMaintenance SpaceState = "maintenance"
	SpaceStateUnknown     SpaceState = "unknown"
)

func (s SpaceState) Valid() bool {
	switch s {
	case SpaceStateFree, SpaceStateOccupied, SpaceStateReserved, SpaceStateMaintenance, SpaceStateUnknown:
		return true
	}
	return false
}

type Space struct {
	SpaceID string `json:"spaceID"`
	Tenant  string `json:"tenant"`
	SiteID  string `json:"siteID,omitempty"`
	Code    string `json:"code"`
	Name    string `json:"name,omitempty"`
	Enabled bool   `json:"enabled"`

	CurrentState   SpaceState `json:"currentState"`
	SensorState    SpaceState `json:"sensorState,omitempty"`
	DisplayState   string     `json:"displayState,omitempty"`
	StateChangedAt time.Time  `json:"stateChangedAt"`

	SensorDeviceID  string `json:"sensorDeviceID,omitempty"`
	DisplayDeviceID string `json:"displayDeviceID,omitempty"`

	Policy *SpacePolicy `json:"policy,omitempty"`
}

const (
	DeviceKindSensor  = "sensor"
	DeviceKindDisplay = "display"
)

const (
	DeviceStatusProvisioned = "provisioned"
	DeviceStatusActive      = "active"
	DeviceStatusInactive    = "inactive"
)

type Device struct {
	DeviceID string `json:"deviceID"`
	DevEUI   string `json:"devEUI"`
	Tenant   string `json:"tenant"`
	Kind     string `json:"kind"`
	Status   string `json:"status"`

	SpaceID string `json:"spaceID,omitempty"`

	LastSeen time.Time `json:"lastSeen,omitempty"`
	LastFCnt int64     `json:"lastFCnt"`
}

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationExpired   ReservationStatus = "expired"
	ReservationNoShow    ReservationStatus = "no_show"
)

func (s ReservationStatus) Terminal() bool {
	return s == ReservationStatusCancelled || s == ReservationExpired || s == ReservationCompleted
}

type Reservation struct {
	ReservationID string `json:"reservationID"`
	Tenant        string `json:"tenant"`
	SpaceID       string `json:"spaceID"`

	StartTime time.Time         `json:"startTime"`
	EndTime   time.Time         `json:"endTime"`
	Status    ReservationStatus `json:"status"`

	IdempotencyKey string `json:"idempotencyKey,omitempty"`
	CheckedIn      bool   `json:"checkedIn"`

	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	CancelReason string     `json:"cancelReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type SensorReading struct {
	ReadingID string `json:"readingID"`
	Tenant    string `json:"tenant"`
	DeviceID  string `json:"deviceID"`
	DevEUI    string `json:"devEUI"`

	FCnt     int64    `json:"fCnt"`
	Occupied bool     `json:"occupied"`
	RSSI     *float64 `json:"rssi,omitempty"`
	SNR      *float64 `json:"snr,omitempty"`

	Payload    json.RawMessage `json:"payload,omitempty"`
	ReceivedAt time.Time       `json:"receivedAt"`
}

type CommandStatus string

const (
	CommandQueued    CommandStatus = "queued"
	CommandPending   CommandStatus = "pending"
	CommandSent      CommandStatus = "sent"
	CommandConfirmed CommandStatus = "confirmed"
	CommandFailed    CommandStatus = "failed"
)

type DownlinkCommand struct {
	CommandID string `json:"commandID"`
	Tenant    string `json:"tenant"`
	DeviceID  string `json:"deviceID"`
	DevEUI    string `json:"devEUI"`

	CommandType string          `json:"commandType"`
	Payload     json.RawMessage `json:"payload"`
	Priority    int             `json:"priority"`
	Confirmed   bool            `json:"confirmed"`

	Status     CommandStatus `json:"status"`
	RetryCount int           `json:"retryCount"`
	LastError  string        `json:"lastError,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
}

type OrphanDevice struct {
	DevEUI       string          `json:"devEUI"`
	FirstSeen    time.Time       `json:"firstSeen"`
	LastSeen     time.Time       `json:"lastSeen"`
	MessageCount int64           `json:"messageCount"`
	LastPayload  json.RawMessage `json:"lastPayload,omitempty"`
}

type DisplayAction struct {
	Color   string `json:"color" yaml:"color"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

// SpacePolicy maps space states to display actions. Unset states fall
// through to the next policy in the resolution chain. Extra carries a
// bounded set of free-form fields accepted at the boundary.
type SpacePolicy struct {
	Free        *DisplayAction    `json:"free,omitempty" yaml:"free"`
	Occupied    *DisplayAction    `json:"occupied,omitempty" yaml:"occupied"`
	Reserved    *DisplayAction    `json:"reserved,omitempty" yaml:"reserved"`
	Maintenance *DisplayAction    `json:"maintenance,omitempty" yaml:"maintenance"`
	Unknown     *DisplayAction    `json:"unknown,omitempty" yaml:"unknown"`
	Extra       map[string]string `json:"extra,omitempty" yaml:"extra"`
}

const maxPolicyExtraFields = 16

func (p *SpacePolicy) Validate() error {
	if p == nil {
		return nil
	}
	if len(p.Extra) > maxPolicyExtraFields {
		return fmt.Errorf("policy contains too many extra fields (%d, max %d)", len(p.Extra), maxPolicyExtraFields)
	}
	return nil
}

func (p *SpacePolicy) Action(state SpaceState) *DisplayAction {
	if p == nil {
		return nil
	}
	switch state {
	case SpaceStateFree:
		return p.Free
	case SpaceStateOccupied:
		return p.Occupied
	case SpaceStateReserved:
		return p.Reserved
	case SpaceStateMaintenance:
		return p.Maintenance
	case SpaceStateUnknown:
		return p.Unknown
	}
	return nil
}

type Collection[T any] struct {
	Data       []T
	Count      uint64
	Offset     uint64
	Limit      uint64
	TotalCount uint64
}
