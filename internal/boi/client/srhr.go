package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/comda/boi-proxy/internal/boi/domain"
	"github.com/comda/boi-proxy/pkg/config"
	"github.com/comda/boi-proxy/pkg/logger"
)

// SrhrClient posts HR records to the SRHR REST service. SRHR reports
// errors through the status code only.
type SrhrClient struct {
	endpoint *endpoint
	logger   *logger.Logger
}

// NewSrhrClient creates a new SRHR client. The default auth mode is ntlm.
func NewSrhrClient(cfg config.EndpointConfig, httpClient *http.Client, log *logger.Logger) *SrhrClient {
	log = log.WithComponent("srhr")
	return &SrhrClient{
		endpoint: newEndpoint("SRHR", cfg, httpClient, log),
		logger:   log,
	}
}

// UpdateRecord sends the record; any 2xx is success regardless of body
func (c *SrhrClient) UpdateRecord(ctx context.Context, record domain.HrRecord) domain.Result {
	if !c.endpoint.cfg.Enabled {
		c.logger.Warn().Msg("SRHR service is disabled in configuration")
		return domain.Fail("SRHR service is disabled")
	}

	if c.endpoint.cfg.Endpoint == "" {
		c.logger.Error().Msg("SRHR endpoint is not configured")
		return domain.Fail("SRHR endpoint is not configured")
	}

	c.logger.Info().
		Str("id_number", record.Id).
		Str("employee_id", record.EmployeeId).
		Str("card_id", record.CardId).
		Msg("updating SRHR")

	payload, err := json.Marshal(record)
	if err != nil {
		return domain.Fail(err.Error())
	}

	resp, err := c.endpoint.post(ctx, "application/json; charset=utf-8", nil, payload)
	if err != nil {
		c.logger.Error().Err(err).Msg("SRHR update failed")
		return domain.Fail(err.Error())
	}

	if !resp.ok() {
		return c.endpoint.statusFailure(resp)
	}

	c.logger.Info().Str("id_number", record.Id).Msg("SRHR updated")
	return domain.OK()
}
