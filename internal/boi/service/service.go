package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/comda/boi-proxy/internal/boi/domain"
	"github.com/comda/boi-proxy/internal/boi/fields"
	"github.com/comda/boi-proxy/pkg/config"
	"github.com/comda/boi-proxy/pkg/logger"
	"github.com/comda/boi-proxy/pkg/messaging"
)

// EmployeeLookup finds employees in SAP
type EmployeeLookup interface {
	GetEmployee(ctx context.Context, idNumber string) (*domain.EmployeeRecord, domain.Result)
}

// PictureUpdater pushes employee photos to SAP
type PictureUpdater interface {
	UpdatePicture(ctx context.Context, req domain.PictureUpdateRequest) domain.Result
}

// SmsSender sends SMS notifications
type SmsSender interface {
	SendSms(ctx context.Context, req domain.SmsRequest) domain.SmsResult
}

// HrRecordUpdater writes HR records to SRHR
type HrRecordUpdater interface {
	UpdateRecord(ctx context.Context, record domain.HrRecord) domain.Result
}

// EventPublisher reports callback outcomes. Implementations must not block
// on or fail the callback.
type EventPublisher interface {
	PublishCallbackOutcome(ctx context.Context, event messaging.CallbackOutcomeEvent)
}

// Adapters groups the backend clients the service fans out to
type Adapters struct {
	Employees EmployeeLookup
	Pictures  PictureUpdater
	Sms       SmsSender
	HrRecords HrRecordUpdater
}

// Callback is a parsed CCMS callback
type Callback struct {
	ID         int
	Operation  domain.Operation
	Issuer     string
	Attributes domain.AttributeMap
}

// BoiService handles CCMS callbacks and the direct BOI API calls
type BoiService struct {
	adapters  Adapters
	fields    *fields.Table
	steps     []config.StepConfig
	timeout   time.Duration
	pictures  bool
	sms       config.SmsConfig
	factory   string
	publisher EventPublisher
	logger    *logger.Logger
}

// NewBoiService creates a new BOI service
func NewBoiService(cfg config.BoiConfig, table *fields.Table, adapters Adapters, publisher EventPublisher, log *logger.Logger) *BoiService {
	return &BoiService{
		adapters:  adapters,
		fields:    table,
		steps:     cfg.Callback.Steps,
		timeout:   cfg.Callback.Timeout,
		pictures:  cfg.Picture.Enabled,
		sms:       cfg.Sms,
		factory:   cfg.Srhr.Factory,
		publisher: publisher,
		logger:    log.WithComponent("boi_service"),
	}
}

// PictureEnabled reports whether the picture service is configured on
func (s *BoiService) PictureEnabled() bool {
	return s.pictures
}

// Fields returns the card field mapping table
func (s *BoiService) Fields() *fields.Table {
	return s.fields
}

// HandleCallback runs the backend actions for one callback. It never
// panics or returns an error; every failure is folded into the result.
func (s *BoiService) HandleCallback(ctx context.Context, cb Callback) domain.Result {
	log := s.logger.WithCallbackID(cb.ID)

	idNumber := s.fields.Resolve(cb.Attributes, fields.IdNumber)
	result := s.dispatch(ctx, log, cb)

	if s.publisher != nil {
		s.publisher.PublishCallbackOutcome(context.WithoutCancel(ctx), messaging.CallbackOutcomeEvent{
			CallbackID: cb.ID,
			Operation:  cb.Operation.String(),
			Issuer:     cb.Issuer,
			IdNumber:   idNumber,
			Success:    result.Success,
			Message:    result.Message,
		})
	}

	return result
}

func (s *BoiService) dispatch(ctx context.Context, log *logger.Logger, cb Callback) (result domain.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("callback handling panicked")
			result = domain.Fail(fmt.Sprint(r))
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.Info().
		Str("operation", cb.Operation.String()).
		Str("issuer", cb.Issuer).
		Strs("fields", cb.Attributes.Keys()).
		Msg("handling callback")

	switch {
	case cb.Operation.IsCreateOrUpdate():
		return s.createOrUpdate(ctx, log, cb.Attributes)
	case cb.Operation == domain.OperationDelete, cb.Operation == domain.OperationRevoke:
		log.Info().Str("operation", cb.Operation.String()).Msg("no BOI action required")
		return domain.OK()
	default:
		log.Info().Str("operation", cb.Operation.String()).Msg("no BOI handler for operation")
		return domain.OK()
	}
}

// card holds the values every step resolves from the attribute map
type card struct {
	attrs      domain.AttributeMap
	idNumber   string
	cardNumber string
	photo      string
}

func (s *BoiService) createOrUpdate(ctx context.Context, log *logger.Logger, attrs domain.AttributeMap) domain.Result {
	c := card{
		attrs:      attrs,
		idNumber:   s.fields.Resolve(attrs, fields.IdNumber),
		cardNumber: s.fields.Resolve(attrs, fields.CardNumber),
		photo:      s.fields.Photo(attrs),
	}

	log.Info().
		Str("id_number", c.idNumber).
		Str("card_number", c.cardNumber).
		Str("employee_number", s.fields.Resolve(attrs, fields.EmployeeNumber)).
		Msg("create or update")

	for _, step := range s.steps {
		ran, res := s.runStep(ctx, log, step.Name, c)
		if !ran || res.Success {
			continue
		}
		if step.Blocking {
			log.Error().Str("step", step.Name).Str("message", res.Message).Msg("blocking step failed")
			return domain.Fail(res.Message)
		}
		log.Warn().Str("step", step.Name).Str("message", res.Message).Msg("step failed (non-blocking)")
	}

	log.Info().Msg("create or update completed")
	return domain.OK()
}

// runStep reports whether the step applied to this card and its result
func (s *BoiService) runStep(ctx context.Context, log *logger.Logger, name string, c card) (bool, domain.Result) {
	switch name {
	case config.StepPicture:
		if c.photo == "" || c.idNumber == "" {
			log.Debug().Msg("no picture data, skipping picture update")
			return false, domain.Result{}
		}
		return true, s.adapters.Pictures.UpdatePicture(ctx, domain.PictureUpdateRequest{
			IdNum:   c.idNumber,
			CardNum: c.cardNumber,
			Picture: c.photo,
		})

	case config.StepSms:
		if !s.sms.SendOnCardUpdate {
			return false, domain.Result{}
		}
		phone := s.fields.Resolve(c.attrs, fields.PhoneNumber)
		if phone == "" {
			log.Debug().Str("field", s.fields.Key(fields.PhoneNumber)).Msg("no phone number, skipping SMS")
			return false, domain.Result{}
		}
		return true, s.adapters.Sms.SendSms(ctx, domain.SmsRequest{
			ToNumbers: phone,
			Message:   s.sms.CardUpdateMessage,
		}).Result

	case config.StepSrhr:
		return true, s.adapters.HrRecords.UpdateRecord(ctx, s.hrRecord(log, c))

	default:
		log.Warn().Str("step", name).Msg("unknown step, skipping")
		return false, domain.Result{}
	}
}

func (s *BoiService) hrRecord(log *logger.Logger, c card) domain.HrRecord {
	record := domain.HrRecord{
		CardId:       c.cardNumber,
		EmployeeId:   s.fields.Resolve(c.attrs, fields.EmployeeNumber),
		EmployeeType: s.fields.Resolve(c.attrs, fields.EmployeeType),
		Factory:      s.factory,
		FirstName:    s.fields.Resolve(c.attrs, fields.FirstName),
		LastName:     s.fields.Resolve(c.attrs, fields.LastName),
		Id:           c.idNumber,
	}

	if c.photo != "" {
		image, err := base64.StdEncoding.DecodeString(c.photo)
		if err != nil {
			log.Warn().Err(err).Msg("photo is not valid base64, sending HR record without image")
		} else {
			record.Image = image
		}
	}

	return record
}

// GetEmployee looks an employee up in SAP
func (s *BoiService) GetEmployee(ctx context.Context, idNumber string) (*domain.EmployeeRecord, domain.Result) {
	s.logger.Info().Str("id_number", idNumber).Msg("get employee")
	return s.adapters.Employees.GetEmployee(ctx, idNumber)
}

// UpdatePicture sends a picture to SAP directly
func (s *BoiService) UpdatePicture(ctx context.Context, req domain.PictureUpdateRequest) domain.Result {
	s.logger.Info().Str("id_number", req.IdNum).Str("card_number", req.CardNum).Msg("update picture")
	return s.adapters.Pictures.UpdatePicture(ctx, req)
}

// SendSms sends an SMS directly
func (s *BoiService) SendSms(ctx context.Context, req domain.SmsRequest) domain.SmsResult {
	s.logger.Info().Str("to", req.ToNumbers).Msg("send SMS")
	return s.adapters.Sms.SendSms(ctx, req)
}
