package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/comda/boi-proxy/internal/boi/domain"
	"github.com/comda/boi-proxy/internal/boi/fields"
	"github.com/comda/boi-proxy/internal/boi/service"
	"github.com/comda/boi-proxy/pkg/httputil"
	"github.com/comda/boi-proxy/pkg/i18n"
	"github.com/comda/boi-proxy/pkg/logger"
	"github.com/comda/boi-proxy/pkg/messaging"
)

// BoiHandler handles the CCMS callback and the direct BOI endpoints
type BoiHandler struct {
	service *service.BoiService
	logger  *logger.Logger
}

// NewBoiHandler creates a new BOI handler
func NewBoiHandler(svc *service.BoiService, log *logger.Logger) *BoiHandler {
	return &BoiHandler{
		service: svc,
		logger:  log,
	}
}

// Routes mounts the BOI endpoints on r
func (h *BoiHandler) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/process", h.Process)
	r.Get("/employee/{idNumber}", h.GetEmployee)
	r.Post("/picture", h.UpdatePicture)
	r.Post("/sms", h.SendSms)
}

// Index is a liveness text for CCMS operators
func (h *BoiHandler) Index(w http.ResponseWriter, r *http.Request) {
	httputil.Text(w, http.StatusOK, "BOI Proxy is running.")
}

// Process handles a CCMS callback. It always answers 200; failures are
// reported through IsValid and Message.
func (h *BoiHandler) Process(w http.ResponseWriter, r *http.Request) {
	localizer := i18n.LocalizerFromContext(r.Context())
	log := h.logger.WithRequestID(httputil.GetRequestID(r.Context()))

	var data domain.CallbackData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		log.Error().Err(err).Msg("failed to decode callback body")
		invalid(w, localizer.T("callback.invalid_request"))
		return
	}

	log = log.WithCallbackID(data.Id)
	operation := domain.Operation(data.Operation)

	log.Info().
		Str("issuer", data.Issuer).
		Str("operation", operation.String()).
		Msg("BOI process")
	log.Debug().Str("card_data", data.CardData).Msg("raw card data")

	attrs, err := domain.ParseAttributeMap(data.CardData)
	if err != nil {
		log.Error().Err(err).Str("card_data", data.CardData).Msg("failed to deserialize card data")
		invalid(w, localizer.T("callback.card_data_unreadable"))
		return
	}

	table := h.service.Fields()
	idNumber := table.Resolve(attrs, fields.IdNumber)

	// Outcome events carry the request ID so they can be matched to access logs
	ctx := messaging.WithCorrelationID(r.Context(), httputil.GetRequestID(r.Context()))
	result := h.service.HandleCallback(ctx, service.Callback{
		ID:         data.Id,
		Operation:  operation,
		Issuer:     data.Issuer,
		Attributes: attrs,
	})

	if !result.Success {
		log.Error().
			Str("operation", operation.String()).
			Str("id_number", idNumber).
			Str("message", result.Message).
			Msg("BOI process failed")
		message := result.Message
		if message == "" {
			message = localizer.T("callback.unexpected_error")
		}
		invalid(w, message)
		return
	}

	log.Info().
		Str("operation", operation.String()).
		Str("id_number", idNumber).
		Msg("BOI process completed")
	httputil.Raw(w, http.StatusOK, domain.CallbackResponse{IsValid: true})
}

func invalid(w http.ResponseWriter, message string) {
	httputil.Raw(w, http.StatusOK, domain.CallbackResponse{IsValid: false, Message: &message})
}

type employeeResponse struct {
	Success  bool                   `json:"success"`
	Employee *domain.EmployeeRecord `json:"employee"`
	Message  string                 `json:"message"`
}

// GetEmployee looks an employee up in SAP
func (h *BoiHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	idNumber := chi.URLParam(r, "idNumber")

	employee, result := h.service.GetEmployee(r.Context(), idNumber)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusNotFound
	}

	httputil.Raw(w, status, employeeResponse{
		Success:  result.Success,
		Employee: employee,
		Message:  result.Message,
	})
}

// UpdatePicture sends a picture to SAP
func (h *BoiHandler) UpdatePicture(w http.ResponseWriter, r *http.Request) {
	var req domain.PictureUpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}
	// A disabled service answers with its own message whatever the request holds
	if h.service.PictureEnabled() {
		if err := httputil.Validate(req); err != nil {
			httputil.Error(w, r, err)
			return
		}
	}

	result := h.service.UpdatePicture(r.Context(), req)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}

	httputil.Raw(w, status, result)
}

// SendSms sends an SMS
func (h *BoiHandler) SendSms(w http.ResponseWriter, r *http.Request) {
	var req domain.SmsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	result := h.service.SendSms(r.Context(), req)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}

	httputil.Raw(w, status, result)
}
