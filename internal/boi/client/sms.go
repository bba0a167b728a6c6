package client

import (
	"context"
	"net/http"

	"github.com/comda/boi-proxy/internal/boi/domain"
	"github.com/comda/boi-proxy/internal/boi/soap"
	"github.com/comda/boi-proxy/pkg/config"
	"github.com/comda/boi-proxy/pkg/logger"
)

// SmsClient sends text messages through the internal SMS web service
type SmsClient struct {
	endpoint *endpoint
	logger   *logger.Logger
}

// NewSmsClient creates a new SMS client
func NewSmsClient(cfg config.EndpointConfig, httpClient *http.Client, log *logger.Logger) *SmsClient {
	log = log.WithComponent("sms")
	return &SmsClient{
		endpoint: newEndpoint("SMS service", cfg, httpClient, log),
		logger:   log,
	}
}

// SendSms sends message to one or more comma separated numbers. The reply
// text of the service is returned alongside the result.
func (c *SmsClient) SendSms(ctx context.Context, req domain.SmsRequest) domain.SmsResult {
	c.logger.Info().Str("to", req.ToNumbers).Msg("sending SMS")
	c.logger.Debug().Str("message", req.Message).Msg("SMS message")

	if !c.endpoint.cfg.Enabled {
		c.logger.Warn().Msg("SMS service is disabled in configuration")
		return domain.SmsResult{Result: domain.Fail("SMS service is disabled")}
	}

	if req.ToNumbers == "" {
		c.logger.Warn().Msg("no phone number provided")
		return domain.SmsResult{Result: domain.Fail("No phone number provided")}
	}

	if req.Message == "" {
		c.logger.Warn().Msg("no message provided")
		return domain.SmsResult{Result: domain.Fail("No message provided")}
	}

	envelope, err := soap.SendSMSEnvelope(req)
	if err != nil {
		return domain.SmsResult{Result: domain.Fail(err.Error())}
	}

	c.logger.Trace().Bytes("envelope", envelope).Msg("SOAP envelope")

	resp, err := c.endpoint.post(ctx, soap.ContentType, map[string]string{"SOAPAction": soap.ActionSendSMS}, envelope)
	if err != nil {
		c.logger.Error().Err(err).Msg("SMS send failed")
		return domain.SmsResult{Result: domain.Fail(err.Error())}
	}

	c.logger.Debug().Int("status", resp.StatusCode).Msg("SOAP response")
	c.logger.Trace().Bytes("body", resp.Body).Msg("SOAP response body")

	if !resp.ok() {
		return domain.SmsResult{Result: c.endpoint.statusFailure(resp)}
	}

	root, err := soap.Parse(resp.Body)
	if err != nil {
		return domain.SmsResult{Result: c.endpoint.unparseable(err)}
	}

	result, reply := soap.SendSMSReply(root)
	if result.Success {
		c.logger.Info().Str("to", req.ToNumbers).Str("reply", reply).Msg("SMS sent")
	} else {
		c.logger.Error().Str("to", req.ToNumbers).Str("reply", reply).Msg("SMS rejected")
	}

	return domain.SmsResult{Result: result, Reply: reply}
}
