// Package boi wires the BOI backend adapters into the callback service.
package boi

import (
	"github.com/comda/boi-proxy/internal/boi/client"
	"github.com/comda/boi-proxy/internal/boi/fields"
	"github.com/comda/boi-proxy/internal/boi/service"
	"github.com/comda/boi-proxy/pkg/config"
	"github.com/comda/boi-proxy/pkg/logger"
)

// NewService builds the adapters from configuration and returns the service
func NewService(cfg config.BoiConfig, publisher service.EventPublisher, log *logger.Logger) *service.BoiService {
	adapters := service.Adapters{
		Employees: client.NewSapEmployeeClient(cfg.Sap, nil, log),
		Pictures:  client.NewPictureClient(cfg.Picture, nil, log),
		Sms:       client.NewSmsClient(cfg.Sms.EndpointConfig, nil, log),
		HrRecords: client.NewSrhrClient(cfg.Srhr.EndpointConfig, nil, log),
	}

	return service.NewBoiService(cfg, fields.NewTable(cfg.CardFields), adapters, publisher, log)
}
