package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
)

// CommandPoller is the client side of the command queue API. A network
// server integration polls for the next downlink to push to a device and
// reports the outcome back.
type CommandPoller interface {
	NextCommand(ctx context.Context, devEUI string) (*types.DownlinkCommand, error)
	ReportSent(ctx context.Context, commandID string) error
	ReportConfirmed(ctx context.Context, commandID string) error
	ReportFailed(ctx context.Context, commandID, cause string, retry bool) error
}

type commandPoller struct {
	url        string
	token      string
	httpClient http.Client
}

var tracer = otel.Tracer("parking-space-mgmt/client")

func NewCommandPoller(serviceUrl, token string) CommandPoller {
	return &commandPoller{
		url:   serviceUrl,
		token: token,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// NextCommand claims the highest priority queued command for the given
// device. A nil command means the queue is empty.
func (c *commandPoller) NextCommand(ctx context.Context, devEUI string) (*types.DownlinkCommand, error) {
	var err error
	ctx, span := tracer.Start(ctx, "next-command")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	url := c.url + "/api/v0/commands/next?devEUI=" + devEUI

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return nil, err
	}

	c.addAuthorization(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to poll for commands: %w", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("command poll failed with status code %d", resp.StatusCode)
		return nil, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return nil, err
	}

	cmd := &types.DownlinkCommand{}

	err = json.Unmarshal(respBody, cmd)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return nil, err
	}

	return cmd, nil
}

func (c *commandPoller) ReportSent(ctx context.Context, commandID string) error {
	return c.report(ctx, "report-sent", commandID, "sent", nil)
}

func (c *commandPoller) ReportConfirmed(ctx context.Context, commandID string) error {
	return c.report(ctx, "report-confirmed", commandID, "confirmed", nil)
}

func (c *commandPoller) ReportFailed(ctx context.Context, commandID, cause string, retry bool) error {
	body := struct {
		Error string `json:"error"`
		Retry bool   `json:"retry"`
	}{Error: cause, Retry: retry}

	return c.report(ctx, "report-failed", commandID, "failed", &body)
}

func (c *commandPoller) report(ctx context.Context, spanName, commandID, outcome string, body any) error {
	var err error
	ctx, span := tracer.Start(ctx, spanName)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	var buf io.Reader
	if body != nil {
		b, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			err = marshalErr
			return err
		}
		buf = bytes.NewBuffer(b)
	}

	url := c.url + "/api/v0/commands/" + commandID + "/" + outcome

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.addAuthorization(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to report command outcome: %w", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		err = fmt.Errorf("command outcome report failed with status code %d", resp.StatusCode)
		return err
	}

	return nil
}

func (c *commandPoller) addAuthorization(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
