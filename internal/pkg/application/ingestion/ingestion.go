package ingestion

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/occupancy"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/spool"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

const (
	StatusProcessed  = "processed"
	StatusDuplicate  = "duplicate"
	StatusOrphan     = "orphan"
	StatusUnassigned = "unassigned"
)

var ErrInvalidSignature = fmt.Errorf("invalid payload signature")
var ErrValidation = fmt.Errorf("invalid uplink payload")
var ErrTransient = fmt.Errorf("uplink processing failed, payload spooled")

// Result is what the webhook caller gets back: the outcome plus the
// identifiers resolved along the way.
type Result struct {
	Status   string           `json:"status"`
	DevEUI   string           `json:"devEUI,omitempty"`
	DeviceID string           `json:"deviceID,omitempty"`
	SpaceID  string           `json:"spaceID,omitempty"`
	State    types.SpaceState `json:"state,omitempty"`
}

// DecoderFunc decodes the occupancy bit from an uplink's encoded data.
// Decoders never fail: undecodable payloads read as not occupied.
type DecoderFunc func(data string) bool

// DecodeFirstByte is the default occupancy policy: the first byte of
// the hex encoded payload, 0x01 means occupied.
func DecodeFirstByte(data string) bool {
	b, err := hex.DecodeString(data)
	if err != nil || len(b) == 0 {
		return false
	}
	return b[0] == 0x01
}

//go:generate moq -rm -out gate_mock.go . Gate
type Gate interface {
	Accept(ctx context.Context, rawBody []byte, signature string) (Result, error)
	ProcessSpool(ctx context.Context) error
}

//go:generate moq -rm -out devicestorage_mock.go . DeviceStorage
type DeviceStorage interface {
	GetDevice(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error)
	UpdateDeviceSeen(ctx context.Context, deviceID string, fcnt int64, seenAt time.Time) error
	ActivateDevice(ctx context.Context, deviceID string) (bool, error)
	AddReading(ctx context.Context, r types.SensorReading) error
	TrackOrphan(ctx context.Context, devEUI string, payload []byte, seenAt time.Time) error
	GetSpace(ctx context.Context, conditions ...storage.ConditionFunc) (types.Space, error)
}

type uplink struct {
	DeviceInfo struct {
		DevEUI string `json:"devEui"`
	} `json:"deviceInfo"`
	Data   string `json:"data"`
	FCnt   int64  `json:"fCnt"`
	RxInfo []struct {
		RSSI *float64 `json:"rssi"`
		SNR  *float64 `json:"snr"`
	} `json:"rxInfo"`
}

type gate struct {
	storage    DeviceStorage
	reconciler occupancy.Reconciler
	queue      spool.Queue
	messenger  messaging.MsgContext
	decode     DecoderFunc
	secret     string
	now        func() time.Time

	warnInsecure sync.Once
}

func New(s DeviceStorage, reconciler occupancy.Reconciler, queue spool.Queue, messenger messaging.MsgContext, secret string, decode DecoderFunc) Gate {
	if decode == nil {
		decode = DecodeFirstByte
	}

	return &gate{
		storage:    s,
		reconciler: reconciler,
		queue:      queue,
		messenger:  messenger,
		decode:     decode,
		secret:     secret,
		now:        time.Now,
	}
}

// Accept validates, deduplicates and processes one uplink. Signature
// and payload validation failures are terminal and reported to the
// caller. Any failure after validation spools the original payload
// before the error is surfaced, so a webhook timeout or storage outage
// never loses a message.
func (g *gate) Accept(ctx context.Context, rawBody []byte, signature string) (Result, error) {
	log := logging.GetFromContext(ctx)

	if g.secret == "" {
		g.warnInsecure.Do(func() {
			log.Warn("no webhook secret configured, accepting unsigned uplinks")
		})
	} else if !validSignature(rawBody, signature, g.secret) {
		return Result{}, ErrInvalidSignature
	}

	var u uplink
	err := json.Unmarshal(rawBody, &u)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	if u.DeviceInfo.DevEUI == "" {
		return Result{}, fmt.Errorf("%w: missing device identifier", ErrValidation)
	}

	result, err := g.process(ctx, u, rawBody)
	if err != nil {
		serr := g.queue.Enqueue(ctx, rawBody)
		if serr != nil {
			log.Error("could not spool failed uplink", "dev_eui", u.DeviceInfo.DevEUI, "err", serr.Error())
			return Result{}, err
		}

		log.Warn("uplink spooled after processing failure", "dev_eui", u.DeviceInfo.DevEUI, "err", err.Error())
		return Result{}, fmt.Errorf("%w: %s", ErrTransient, err.Error())
	}

	return result, nil
}

func (g *gate) process(ctx context.Context, u uplink, rawBody []byte) (Result, error) {
	now := g.now().UTC()
	devEUI := strings.ToUpper(u.DeviceInfo.DevEUI)

	device, err := g.storage.GetDevice(ctx, storage.WithDevEUI(devEUI))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			err = g.storage.TrackOrphan(ctx, devEUI, rawBody, now)
			if err != nil {
				return Result{}, err
			}
			return Result{Status: StatusOrphan, DevEUI: devEUI}, nil
		}
		return Result{}, err
	}

	if u.FCnt <= device.LastFCnt {
		return Result{Status: StatusDuplicate, DevEUI: devEUI, DeviceID: device.DeviceID}, nil
	}

	// the conditional update is the authoritative dedup: a concurrent
	// uplink with the same counter loses here
	err = g.storage.UpdateDeviceSeen(ctx, device.DeviceID, u.FCnt, now)
	if err != nil {
		if errors.Is(err, storage.ErrNotUpdated) {
			return Result{Status: StatusDuplicate, DevEUI: devEUI, DeviceID: device.DeviceID}, nil
		}
		return Result{}, err
	}

	if device.Status == types.DeviceStatusProvisioned {
		activated, err := g.storage.ActivateDevice(ctx, device.DeviceID)
		if err != nil {
			return Result{}, err
		}
		if activated {
			err = g.messenger.PublishOnTopic(ctx, &types.DeviceActivated{
				DeviceID:  device.DeviceID,
				DevEUI:    devEUI,
				Tenant:    device.Tenant,
				Timestamp: now,
			})
			if err != nil {
				logging.GetFromContext(ctx).Error("could not publish device activation", "device_id", device.DeviceID, "err", err.Error())
			}
		}
	}

	occupied := g.decode(u.Data)

	reading := types.SensorReading{
		ReadingID:  uuid.NewString(),
		Tenant:     device.Tenant,
		DeviceID:   device.DeviceID,
		DevEUI:     devEUI,
		FCnt:       u.FCnt,
		Occupied:   occupied,
		Payload:    rawBody,
		ReceivedAt: now,
	}
	if len(u.RxInfo) > 0 {
		reading.RSSI = u.RxInfo[0].RSSI
		reading.SNR = u.RxInfo[0].SNR
	}

	err = g.storage.AddReading(ctx, reading)
	if err != nil {
		return Result{}, err
	}

	if device.SpaceID == "" {
		return Result{Status: StatusUnassigned, DevEUI: devEUI, DeviceID: device.DeviceID}, nil
	}

	space, err := g.storage.GetSpace(ctx, storage.WithSpaceID(device.SpaceID))
	if err != nil {
		return Result{}, err
	}

	observed := types.SpaceStateFree
	if occupied {
		observed = types.SpaceStateOccupied
	}

	_, err = g.reconciler.Reconcile(ctx, space, observed, occupancy.SourceSensor)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Status:   StatusProcessed,
		DevEUI:   devEUI,
		DeviceID: device.DeviceID,
		SpaceID:  space.SpaceID,
		State:    observed,
	}, nil
}

// ProcessSpool replays spooled uplinks at least once. Successful
// replays are acked and removed; failures are handed back to the queue
// so repeated offenders end up parked rather than tight-looping.
func (g *gate) ProcessSpool(ctx context.Context) error {
	log := logging.GetFromContext(ctx)

	for {
		entry, err := g.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, spool.ErrEmpty) {
				return nil
			}
			return err
		}

		var u uplink
		err = json.Unmarshal(entry.Payload, &u)
		if err == nil && u.DeviceInfo.DevEUI != "" {
			_, err = g.process(ctx, u, entry.Payload)
		}

		if err != nil {
			log.Warn("spooled uplink failed again", "entry", entry.ID, "attempts", entry.Attempts+1, "err", err.Error())
			err = g.queue.Fail(ctx, entry)
			if err != nil {
				return err
			}
			continue
		}

		err = g.queue.Ack(ctx, entry)
		if err != nil {
			return err
		}
	}
}

func validSignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}
