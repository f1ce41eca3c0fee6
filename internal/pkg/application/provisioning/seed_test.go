package provisioning

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/matryer/is"

	"github.com/curbsense/parking-space-mgmt/internal/pkg/infrastructure/storage"
	"github.com/curbsense/parking-space-mgmt/pkg/types"
)

func TestSeedCreatesSpacesAndDevices(t *testing.T) {
	is := is.New(t)
	s := newSeedStorage()

	err := Seed(context.Background(), s, readCloser(csvMock), []string{"default"})
	is.NoErr(err)

	is.Equal(len(s.spaces), 3)
	is.Equal(len(s.devices), 2)

	is.Equal(s.spaces["space-1"].CurrentState, types.SpaceStateUnknown)
	is.Equal(s.devices["sensor-1"].DevEUI, "A81758FFFE06BFA3")
	is.Equal(s.devices["sensor-1"].Status, types.DeviceStatusProvisioned)
	is.Equal(s.devices["sensor-1"].SpaceID, "space-1")
}

func TestSeedSkipsDisallowedTenants(t *testing.T) {
	is := is.New(t)
	s := newSeedStorage()

	err := Seed(context.Background(), s, readCloser(csvMock), []string{"other"})
	is.NoErr(err)

	is.Equal(len(s.spaces), 0)
}

func TestSeedIgnoresExistingRows(t *testing.T) {
	is := is.New(t)
	s := newSeedStorage()
	s.spaces["space-1"] = types.Space{SpaceID: "space-1", CurrentState: types.SpaceStateOccupied}

	err := Seed(context.Background(), s, readCloser(csvMock), []string{"default"})
	is.NoErr(err)

	is.Equal(s.spaces["space-1"].CurrentState, types.SpaceStateOccupied)
}

func TestSeedRejectsInvalidDeviceKind(t *testing.T) {
	is := is.New(t)
	s := newSeedStorage()

	bad := "spaceID;siteID;tenant;deviceID;devEUI;kind\nspace-1;site-1;default;dev-1;a81758fffe06bfa3;thermostat"
	err := Seed(context.Background(), s, readCloser(bad), []string{"default"})
	is.True(err != nil)
}

type seedStorage struct {
	spaces  map[string]types.Space
	devices map[string]types.Device
}

func newSeedStorage() *seedStorage {
	return &seedStorage{
		spaces:  map[string]types.Space{},
		devices: map[string]types.Device{},
	}
}

func (s *seedStorage) AddSpace(_ context.Context, space types.Space) error {
	if _, ok := s.spaces[space.SpaceID]; ok {
		return storage.ErrAlreadyExists
	}
	s.spaces[space.SpaceID] = space
	return nil
}

func (s *seedStorage) AddDevice(_ context.Context, device types.Device) error {
	if _, ok := s.devices[device.DeviceID]; ok {
		return storage.ErrAlreadyExists
	}
	s.devices[device.DeviceID] = device
	return nil
}

func readCloser(s string) io.ReadCloser {
	return io.NopCloser(bytes.NewBufferString(s))
}

const csvMock string = `spaceID;siteID;tenant;deviceID;devEUI;kind
space-1;site-1;default;sensor-1;a81758fffe06bfa3;sensor
space-2;site-1;default;display-1;a81758fffe051d00;display
space-3;site-1;default;;;`
