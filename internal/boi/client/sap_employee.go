package client

import (
	"context"
	"net/http"

	"github.com/comda/boi-proxy/internal/boi/domain"
	"github.com/comda/boi-proxy/internal/boi/soap"
	"github.com/comda/boi-proxy/pkg/config"
	"github.com/comda/boi-proxy/pkg/logger"
)

// SapEmployeeClient looks employees up in SAP (comda_mi)
type SapEmployeeClient struct {
	endpoint *endpoint
	logger   *logger.Logger
}

// NewSapEmployeeClient creates a new SAP employee lookup client.
// A nil httpClient builds one for the configured auth mode.
func NewSapEmployeeClient(cfg config.EndpointConfig, httpClient *http.Client, log *logger.Logger) *SapEmployeeClient {
	log = log.WithComponent("sap_employee")
	return &SapEmployeeClient{
		endpoint: newEndpoint("SAP", cfg, httpClient, log),
		logger:   log,
	}
}

// GetEmployee returns the employee record for an ID number. The record is
// nil whenever the result is not successful.
func (c *SapEmployeeClient) GetEmployee(ctx context.Context, idNumber string) (*domain.EmployeeRecord, domain.Result) {
	c.logger.Info().Str("id_number", idNumber).Msg("looking up employee in SAP")

	if !c.endpoint.cfg.Enabled {
		c.logger.Warn().Msg("SAP service is disabled in configuration")
		return nil, domain.Fail("SAP service is disabled")
	}

	if idNumber == "" {
		return nil, domain.Fail("No ID number provided")
	}

	envelope, err := soap.GetEmployeeEnvelope(idNumber)
	if err != nil {
		return nil, domain.Fail(err.Error())
	}

	c.logger.Debug().Str("endpoint", c.endpoint.cfg.Endpoint).Msg("SOAP request")
	c.logger.Trace().Bytes("envelope", envelope).Msg("SOAP envelope")

	resp, err := c.endpoint.post(ctx, soap.ContentType, map[string]string{"SOAPAction": soap.ActionGetEmployee}, envelope)
	if err != nil {
		c.logger.Error().Err(err).Msg("employee lookup failed")
		return nil, domain.Fail(err.Error())
	}

	c.logger.Debug().Int("status", resp.StatusCode).Msg("SOAP response")
	c.logger.Trace().Bytes("body", resp.Body).Msg("SOAP response body")

	if !resp.ok() {
		return nil, c.endpoint.statusFailure(resp)
	}

	root, err := soap.Parse(resp.Body)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to parse SAP response")
		return nil, domain.Fail("Employee not found")
	}

	if result := soap.ReturnMessages(root); !result.Success {
		c.logger.Error().Str("id_number", idNumber).Str("message", result.Message).Msg("SAP rejected employee lookup")
		return nil, result
	}

	employee := soap.Employee(root)
	if employee == nil {
		c.logger.Warn().Str("id_number", idNumber).Msg("employee not found")
		return nil, domain.Fail("Employee not found")
	}

	c.logger.Info().
		Str("emp_num", employee.EmpNum).
		Str("first_name", employee.FirstName).
		Str("last_name", employee.LastName).
		Msg("employee found")

	return employee, domain.OK()
}
