package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type ConditionFunc func(*Condition) *Condition

type Condition struct {
	DeviceID      string
	DevEUI        string
	SpaceID       string
	SiteID        string
	Code          string
	ReservationID string

	Tenants []string

	States             []string
	ReservationStatus  []string
	CommandStatus      []string
	IdempotencyKey     string
	OverlapStart       time.Time
	OverlapEnd         time.Time
	CoversAt           *time.Time
	NotCheckedIn       *bool
	EndedBefore        *time.Time
	ReceivedBefore     *time.Time
	Kind               string

	sortBy    string
	sortOrder string

	offset *int
	limit  *int
}

func (c Condition) SortBy() string {
	return c.sortBy
}

func (c Condition) SortOrder() string {
	if c.sortOrder == "" {
		return "ASC"
	}
	return c.sortOrder
}

func (c Condition) Offset() int {
	if c.offset == nil {
		return 0
	}
	return *c.offset
}

func (c Condition) Limit() int {
	if c.limit == nil {
		return 0
	}
	return *c.limit
}

func (c Condition) OffsetLimit() string {
	offsetLimit := ""

	if c.offset != nil {
		offsetLimit += fmt.Sprintf("OFFSET %d ", c.Offset())
	}
	if c.limit != nil {
		offsetLimit += fmt.Sprintf("LIMIT %d ", c.Limit())
	}

	return offsetLimit
}

func (c Condition) NamedArgs() pgx.NamedArgs {
	args := pgx.NamedArgs{}

	if c.DeviceID != "" {
		args["device_id"] = c.DeviceID
	}
	if c.DevEUI != "" {
		args["dev_eui"] = c.DevEUI
	}
	if c.SpaceID != "" {
		args["space_id"] = c.SpaceID
	}
	if c.SiteID != "" {
		args["site_id"] = c.SiteID
	}
	if c.Code != "" {
		args["code"] = c.Code
	}
	if c.ReservationID != "" {
		args["reservation_id"] = c.ReservationID
	}
	if len(c.Tenants) > 0 {
		args["tenants"] = c.Tenants
	}
	if len(c.States) > 0 {
		args["states"] = c.States
	}
	if len(c.ReservationStatus) > 0 {
		args["reservation_status"] = c.ReservationStatus
	}
	if len(c.CommandStatus) > 0 {
		args["command_status"] = c.CommandStatus
	}
	if c.IdempotencyKey != "" {
		args["idempotency_key"] = c.IdempotencyKey
	}
	if !c.OverlapStart.IsZero() {
		args["overlap_start"] = c.OverlapStart.UTC()
		args["overlap_end"] = c.OverlapEnd.UTC()
	}
	if c.CoversAt != nil {
		args["covers_at"] = c.CoversAt.UTC()
	}
	if c.NotCheckedIn != nil {
		args["checked_in"] = !*c.NotCheckedIn
	}
	if c.EndedBefore != nil {
		args["ended_before"] = c.EndedBefore.UTC()
	}
	if c.ReceivedBefore != nil {
		args["received_before"] = c.ReceivedBefore.UTC()
	}
	if c.Kind != "" {
		args["kind"] = c.Kind
	}

	return args
}

func (c Condition) Where() string {
	where := []string{}

	if c.DeviceID != "" {
		where = append(where, "device_id = @device_id")
	}
	if c.DevEUI != "" {
		where = append(where, "dev_eui = @dev_eui")
	}
	if c.SpaceID != "" {
		where = append(where, "space_id = @space_id")
	}
	if c.SiteID != "" {
		where = append(where, "site_id = @site_id")
	}
	if c.Code != "" {
		where = append(where, "code = @code")
	}
	if c.ReservationID != "" {
		where = append(where, "reservation_id = @reservation_id")
	}
	if len(c.Tenants) > 0 {
		where = append(where, "tenant = ANY(@tenants)")
	}
	if len(c.States) > 0 {
		where = append(where, "current_state = ANY(@states)")
	}
	if len(c.ReservationStatus) > 0 {
		where = append(where, "status = ANY(@reservation_status)")
	}
	if len(c.CommandStatus) > 0 {
		where = append(where, "status = ANY(@command_status)")
	}
	if c.IdempotencyKey != "" {
		where = append(where, "idempotency_key = @idempotency_key")
	}
	if !c.OverlapStart.IsZero() {
		where = append(where, "start_time < @overlap_end AND end_time > @overlap_start")
	}
	if c.CoversAt != nil {
		where = append(where, "start_time <= @covers_at AND end_time > @covers_at")
	}
	if c.NotCheckedIn != nil {
		where = append(where, "checked_in = @checked_in")
	}
	if c.EndedBefore != nil {
		where = append(where, "end_time < @ended_before")
	}
	if c.ReceivedBefore != nil {
		where = append(where, "received_at < @received_before")
	}
	if c.Kind != "" {
		where = append(where, "kind = @kind")
	}

	if len(where) == 0 {
		return "TRUE"
	}

	return strings.Join(where, " AND ")
}

func WithDeviceID(deviceID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.DeviceID = deviceID
		return c
	}
}

func WithDevEUI(devEUI string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.DevEUI = strings.ToUpper(devEUI)
		return c
	}
}

func WithSpaceID(spaceID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.SpaceID = spaceID
		return c
	}
}

func WithSiteID(siteID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.SiteID = siteID
		return c
	}
}

func WithCode(code string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Code = code
		return c
	}
}

func WithReservationID(reservationID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.ReservationID = reservationID
		return c
	}
}

// WithTenants scopes a query to the given tenants. An empty slice leaves
// the query unscoped, which is how the system principal queries across
// all tenants.
func WithTenants(tenants []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Tenants = unique(tenants)
		return c
	}
}

func WithTenant(tenant string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Tenants = unique(append(c.Tenants, tenant))
		return c
	}
}

func WithStates(states []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.States = states
		return c
	}
}

func WithReservationStatus(status ...string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.ReservationStatus = status
		return c
	}
}

func WithCommandStatus(status ...string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.CommandStatus = status
		return c
	}
}

func WithIdempotencyKey(key string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.IdempotencyKey = key
		return c
	}
}

// WithOverlap matches reservations whose half-open [start,end) window
// overlaps the given one.
func WithOverlap(start, end time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.OverlapStart = start
		c.OverlapEnd = end
		return c
	}
}

// WithCoverage matches reservations whose window covers the given instant.
func WithCoverage(t time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.CoversAt = &t
		return c
	}
}

func WithNotCheckedIn() ConditionFunc {
	return func(c *Condition) *Condition {
		t := true
		c.NotCheckedIn = &t
		return c
	}
}

func WithEndedBefore(t time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.EndedBefore = &t
		return c
	}
}

func WithReceivedBefore(t time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.ReceivedBefore = &t
		return c
	}
}

func WithKind(kind string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Kind = kind
		return c
	}
}

func WithSortBy(sortBy string) ConditionFunc {
	return func(c *Condition) *Condition {
		switch strings.ToLower(sortBy) {
		case "created":
			c.sortBy = "created_on"
		case "start_time":
			c.sortBy = "start_time"
		case "code":
			c.sortBy = "code"
		case "priority":
			c.sortBy = "priority"
		}
		return c
	}
}

func WithSortDesc(desc bool) ConditionFunc {
	return func(c *Condition) *Condition {
		if desc {
			c.sortOrder = "DESC"
		} else {
			c.sortOrder = "ASC"
		}
		return c
	}
}

func WithOffset(offset int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.offset = &offset
		return c
	}
}

func WithLimit(limit int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.limit = &limit
		return c
	}
}

func unique(s []string) []string {
	keys := make(map[string]bool)
	list := []string{}
	for _, entry := range s {
		if _, value := keys[entry]; !value {
			keys[entry] = true
			list = append(list, entry)
		}
	}
	return list
}
