package ingestion

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/application/occupancy"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/spool"
	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
)

const testSecret = "sixteen byte key"

func TestAcceptRejectsInvalidSignature(t *testing.T) {
	is, s, _, _, g := testSetup(t, testSecret)

	_, err := g.Accept(context.Background(), occupiedUplink(10), "deadbeef")
	is.True(errors.Is(err, ErrInvalidSignature))
	is.Equal(len(s.GetDeviceCalls()), 0)
}

func TestAcceptVerifiesSignature(t *testing.T) {
	is, _, _, _, g := testSetup(t, testSecret)
	body := occupiedUplink(10)

	result, err := g.Accept(context.Background(), body, sign(body, testSecret))
	is.NoErr(err)
	is.Equal(result.Status, StatusProcessed)
}

func TestAcceptSkipsVerificationWithoutSecret(t *testing.T) {
	is, _, _, _, g := testSetup(t, "")

	result, err := g.Accept(context.Background(), occupiedUplink(10), "")
	is.NoErr(err)
	is.Equal(result.Status, StatusProcessed)
}

func TestAcceptRejectsMalformedPayload(t *testing.T) {
	is, _, _, _, g := testSetup(t, "")

	_, err := g.Accept(context.Background(), []byte(`{"deviceInfo":`), "")
	is.True(errors.Is(err, ErrValidation))
}

func TestAcceptRejectsMissingDevEUI(t *testing.T) {
	is, _, _, _, g := testSetup(t, "")

	_, err := g.Accept(context.Background(), []byte(`{"deviceInfo":{},"data":"01","fCnt":1}`), "")
	is.True(errors.Is(err, ErrValidation))
}

func TestReplayedFrameCounterWritesNothing(t *testing.T) {
	is, s, _, _, g := testSetup(t, "")

	result, err := g.Accept(context.Background(), occupiedUplink(42), "")
	is.NoErr(err)
	is.Equal(result.Status, StatusDuplicate)
	is.Equal(len(s.UpdateDeviceSeenCalls()), 0)
	is.Equal(len(s.AddReadingCalls()), 0)
}

func TestConcurrentDuplicateLosesConditionalUpdate(t *testing.T) {
	is, s, _, _, g := testSetup(t, "")
	s.UpdateDeviceSeenFunc = func(ctx context.Context, deviceID string, fcnt int64, seenAt time.Time) error {
		return storage.ErrNotUpdated
	}

	result, err := g.Accept(context.Background(), occupiedUplink(43), "")
	is.NoErr(err)
	is.Equal(result.Status, StatusDuplicate)
	is.Equal(len(s.AddReadingCalls()), 0)
}

func TestUnknownDeviceIsTrackedAsOrphan(t *testing.T) {
	is, s, _, _, g := testSetup(t, "")
	s.GetDeviceFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
		return types.Device{}, storage.ErrNoRows
	}

	result, err := g.Accept(context.Background(), occupiedUplink(43), "")
	is.NoErr(err)
	is.Equal(result.Status, StatusOrphan)
	is.Equal(result.DevEUI, "A1B2C3D4E5F60708")
	is.Equal(len(s.TrackOrphanCalls()), 1)
	is.Equal(len(s.AddReadingCalls()), 0)
}

func TestUnassignedDeviceStoresReadingOnly(t *testing.T) {
	is, s, r, _, g := testSetup(t, "")
	s.GetDeviceFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
		d := sensorDevice()
		d.SpaceID = ""
		return d, nil
	}

	result, err := g.Accept(context.Background(), occupiedUplink(43), "")
	is.NoErr(err)
	is.Equal(result.Status, StatusUnassigned)
	is.Equal(len(s.AddReadingCalls()), 1)
	is.Equal(len(r.ReconcileCalls()), 0)
}

func TestOccupiedUplinkReconcilesSpace(t *testing.T) {
	is, s, r, _, g := testSetup(t, "")

	result, err := g.Accept(context.Background(), occupiedUplink(43), "")
	is.NoErr(err)
	is.Equal(result.Status, StatusProcessed)
	is.Equal(result.SpaceID, "space-1")
	is.Equal(result.State, types.SpaceStateOccupied)

	reading := s.AddReadingCalls()[0].R
	is.Equal(reading.FCnt, int64(43))
	is.True(reading.Occupied)
	is.Equal(*reading.RSSI, float64(-107))

	call := r.ReconcileCalls()[0]
	is.Equal(call.Observed, types.SpaceStateOccupied)
	is.Equal(call.Source, occupancy.SourceSensor)
}

func TestFreeUplinkReconcilesSpace(t *testing.T) {
	is, _, r, _, g := testSetup(t, "")
	body := []byte(`{"deviceInfo":{"devEui":"a1b2c3d4e5f60708"},"data":"00","fCnt":43}`)

	result, err := g.Accept(context.Background(), body, "")
	is.NoErr(err)
	is.Equal(result.State, types.SpaceStateFree)
	is.Equal(r.ReconcileCalls()[0].Observed, types.SpaceStateFree)
}

func TestFirstUplinkActivatesProvisionedDevice(t *testing.T) {
	is, s, _, m, g := testSetup(t, "")
	s.GetDeviceFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
		d := sensorDevice()
		d.Status = types.DeviceStatusProvisioned
		return d, nil
	}

	_, err := g.Accept(context.Background(), occupiedUplink(43), "")
	is.NoErr(err)
	is.Equal(len(s.ActivateDeviceCalls()), 1)
	is.Equal(m.PublishOnTopicCalls()[0].Message.TopicName(), "device.activated")
}

func TestProcessingFailureSpoolsPayload(t *testing.T) {
	is, s, _, _, g := testSetup(t, "")
	s.AddReadingFunc = func(ctx context.Context, r types.SensorReading) error {
		return fmt.Errorf("connection refused")
	}

	body := occupiedUplink(43)
	_, err := g.Accept(context.Background(), body, "")
	is.True(errors.Is(err, ErrTransient))

	entry, err := g.(*gate).queue.Dequeue(context.Background())
	is.NoErr(err)
	is.Equal(string(entry.Payload), string(body))
}

func TestProcessSpoolAcksRecoveredUplinks(t *testing.T) {
	is, s, _, _, g := testSetup(t, "")
	s.AddReadingFunc = func(ctx context.Context, r types.SensorReading) error {
		return fmt.Errorf("connection refused")
	}

	_, err := g.Accept(context.Background(), occupiedUplink(43), "")
	is.True(errors.Is(err, ErrTransient))

	// storage is back, the spooled uplink should replay and be removed
	s.AddReadingFunc = func(ctx context.Context, r types.SensorReading) error {
		return nil
	}

	err = g.ProcessSpool(context.Background())
	is.NoErr(err)

	_, err = g.(*gate).queue.Dequeue(context.Background())
	is.True(errors.Is(err, spool.ErrEmpty))
}

func TestProcessSpoolParksRepeatedFailures(t *testing.T) {
	is, s, _, _, g := testSetup(t, "")
	s.AddReadingFunc = func(ctx context.Context, r types.SensorReading) error {
		return fmt.Errorf("connection refused")
	}

	_, err := g.Accept(context.Background(), occupiedUplink(43), "")
	is.True(errors.Is(err, ErrTransient))

	// a single sweep retries until the entry has used up its attempts
	err = g.ProcessSpool(context.Background())
	is.NoErr(err)
	is.Equal(len(s.AddReadingCalls()), 1+3)

	// parked entries are not replayed again
	err = g.ProcessSpool(context.Background())
	is.NoErr(err)
	is.Equal(len(s.AddReadingCalls()), 1+3)
}

func TestDecodeFirstByte(t *testing.T) {
	is := is.New(t)
	is.True(DecodeFirstByte("01"))
	is.True(DecodeFirstByte("01ff"))
	is.True(!DecodeFirstByte("00"))
	is.True(!DecodeFirstByte("02"))
	is.True(!DecodeFirstByte(""))
	is.True(!DecodeFirstByte("not hex"))
}

func testSetup(t *testing.T, secret string) (*is.I, *DeviceStorageMock, *occupancy.ReconcilerMock, *messaging.MsgContextMock, Gate) {
	s := &DeviceStorageMock{
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			return sensorDevice(), nil
		},
		UpdateDeviceSeenFunc: func(ctx context.Context, deviceID string, fcnt int64, seenAt time.Time) error {
			return nil
		},
		ActivateDeviceFunc: func(ctx context.Context, deviceID string) (bool, error) {
			return true, nil
		},
		AddReadingFunc: func(ctx context.Context, r types.SensorReading) error {
			return nil
		},
		TrackOrphanFunc: func(ctx context.Context, devEUI string, payload []byte, seenAt time.Time) error {
			return nil
		},
		GetSpaceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Space, error) {
			return types.Space{SpaceID: "space-1", Tenant: "default", CurrentState: types.SpaceStateFree}, nil
		},
	}
	r := &occupancy.ReconcilerMock{
		ReconcileFunc: func(ctx context.Context, space types.Space, observed types.SpaceState, source string) (bool, error) {
			return true, nil
		},
	}
	m := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	queue, err := spool.New(t.TempDir(), 3)
	if err != nil {
		t.Fatal(err)
	}

	return is.New(t), s, r, m, New(s, r, queue, m, secret, nil)
}

func sensorDevice() types.Device {
	return types.Device{
		DeviceID: "dev-1",
		DevEUI:   "A1B2C3D4E5F60708",
		Tenant:   "default",
		Kind:     types.DeviceKindSensor,
		Status:   types.DeviceStatusActive,
		SpaceID:  "space-1",
		LastFCnt: 42,
	}
}

func occupiedUplink(fcnt int64) []byte {
	return []byte(fmt.Sprintf(`{"deviceInfo":{"devEui":"a1b2c3d4e5f60708"},"data":"01","fCnt":%d,"rxInfo":[{"rssi":-107,"snr":7.5}]}`, fcnt))
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
