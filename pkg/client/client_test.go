package client

import (
	"context"
	"testing"

	test "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
)

func TestNextCommandReturnsClaimedCommand(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/commands/next"),
			expects.RequestMethod("GET"),
			expects.RequestHeaderContains("Authorization", "Bearer token"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(200),
			response.Body([]byte(`{"commandID":"cmd-1","deviceID":"display-1","devEUI":"A1B2C3D4E5F60708","commandType":"set_display","priority":3,"status":"pending","tenant":"default","payload":{"color":"green"},"createdAt":"2026-08-29T10:00:00Z"}`)),
		),
	)
	defer mockedService.Close()

	poller := NewCommandPoller(mockedService.URL(), "token")

	cmd, err := poller.NextCommand(context.Background(), "A1B2C3D4E5F60708")
	is.NoErr(err)
	is.True(cmd != nil)
	is.Equal(cmd.CommandID, "cmd-1")
	is.Equal(cmd.Status, types.CommandPending)
}

func TestNextCommandOnEmptyQueueReturnsNil(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/commands/next"),
		),
		test.Returns(
			response.Code(204),
		),
	)
	defer mockedService.Close()

	poller := NewCommandPoller(mockedService.URL(), "token")

	cmd, err := poller.NextCommand(context.Background(), "A1B2C3D4E5F60708")
	is.NoErr(err)
	is.True(cmd == nil)
}

func TestReportFailedSendsRetryFlag(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/commands/cmd-1/failed"),
			expects.RequestMethod("POST"),
			expects.RequestHeaderContains("Content-Type", "application/json"),
			expects.RequestBodyContaining(`"error":"timeout"`, `"retry":true`),
		),
		test.Returns(
			response.Code(204),
		),
	)
	defer mockedService.Close()

	poller := NewCommandPoller(mockedService.URL(), "token")

	err := poller.ReportFailed(context.Background(), "cmd-1", "timeout", true)
	is.NoErr(err)
}

func TestReportConfirmed(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/commands/cmd-1/confirmed"),
			expects.RequestMethod("POST"),
		),
		test.Returns(
			response.Code(204),
		),
	)
	defer mockedService.Close()

	poller := NewCommandPoller(mockedService.URL(), "token")

	err := poller.ReportConfirmed(context.Background(), "cmd-1")
	is.NoErr(err)
}

func TestReportSentSurfacesServerError(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/commands/cmd-1/sent"),
		),
		test.Returns(
			response.Code(500),
		),
	)
	defer mockedService.Close()

	poller := NewCommandPoller(mockedService.URL(), "token")

	err := poller.ReportSent(context.Background(), "cmd-1")
	is.True(err != nil)
}
