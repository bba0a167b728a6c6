package client

import (
	"context"
	"net/http"

	"github.com/comda/boi-proxy/internal/boi/domain"
	"github.com/comda/boi-proxy/internal/boi/soap"
	"github.com/comda/boi-proxy/pkg/config"
	"github.com/comda/boi-proxy/pkg/logger"
)

// PictureClient updates employee photos through the SAP PI adapter
type PictureClient struct {
	endpoint *endpoint
	logger   *logger.Logger
}

// NewPictureClient creates a new picture update client
func NewPictureClient(cfg config.EndpointConfig, httpClient *http.Client, log *logger.Logger) *PictureClient {
	log = log.WithComponent("picture")
	return &PictureClient{
		endpoint: newEndpoint("SAP", cfg, httpClient, log),
		logger:   log,
	}
}

// UpdatePicture sends a base64 picture for an employee
func (c *PictureClient) UpdatePicture(ctx context.Context, req domain.PictureUpdateRequest) domain.Result {
	c.logger.Info().Str("id_number", req.IdNum).Str("card_number", req.CardNum).Msg("updating picture")

	if !c.endpoint.cfg.Enabled {
		c.logger.Warn().Msg("picture service is disabled in configuration")
		return domain.Fail("Picture service is disabled")
	}

	if req.Picture == "" {
		c.logger.Warn().Msg("no picture data provided")
		return domain.Fail("No picture data provided")
	}

	envelope, err := soap.UpdatePictureEnvelope(req)
	if err != nil {
		return domain.Fail(err.Error())
	}

	c.logger.Debug().
		Str("endpoint", c.endpoint.cfg.Endpoint).
		Int("picture_size", len(req.Picture)).
		Msg("SOAP request")

	resp, err := c.endpoint.post(ctx, soap.ContentType, map[string]string{"SOAPAction": soap.ActionUpdatePicture}, envelope)
	if err != nil {
		c.logger.Error().Err(err).Msg("picture update failed")
		return domain.Fail(err.Error())
	}

	c.logger.Debug().Int("status", resp.StatusCode).Msg("SOAP response")
	c.logger.Trace().Bytes("body", resp.Body).Msg("SOAP response body")

	if !resp.ok() {
		return c.endpoint.statusFailure(resp)
	}

	result, err := soap.ParseReturnMessages(resp.Body)
	if err != nil {
		return c.endpoint.unparseable(err)
	}

	if result.Success {
		c.logger.Info().Str("id_number", req.IdNum).Msg("picture updated")
	} else {
		c.logger.Error().Str("id_number", req.IdNum).Str("message", result.Message).Msg("picture update rejected")
	}

	return result
}
