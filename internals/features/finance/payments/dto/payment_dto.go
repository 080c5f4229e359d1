package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentix_backend/internals/features/finance/payments/model"
	helper "rentix_backend/internals/helpers"
)

/* ===================== Requests ===================== */

type CreatePaymentRequest struct {
	PaymentTenantID       string          `json:"payment_tenant_id" validate:"required,uuid"`
	PaymentPropertyID     string          `json:"payment_property_id" validate:"required,uuid"`
	PaymentAmount         decimal.Decimal `json:"payment_amount"`
	PaymentReferenceMonth string          `json:"payment_reference_month" validate:"required"`
	PaymentDueDate        *time.Time      `json:"payment_due_date,omitempty"`
	PaymentMethod         *string         `json:"payment_method,omitempty"`
	PaymentDescription    *string         `json:"payment_description,omitempty"`
}

// ToModel valida as regras de negócio e monta o Payment. Vencimento omitido
// cai no dia 10 do mês de referência. Cobrança retroativa (vencimento já
// passado) nasce atrasada com o ciclo de multa fechado: o atraso pré-existente
// não gera multa nova.
func (r *CreatePaymentRequest) ToModel(managerID uuid.UUID, now time.Time) (*model.Payment, error) {
	tenantID, err := uuid.Parse(r.PaymentTenantID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "payment_tenant_id inválido")
	}
	propertyID, err := uuid.Parse(r.PaymentPropertyID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "payment_property_id inválido")
	}
	if !r.PaymentAmount.IsPositive() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "payment_amount deve ser maior que zero")
	}
	month := strings.TrimSpace(r.PaymentReferenceMonth)
	if !helper.ValidReferenceMonth(month) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "payment_reference_month deve estar no formato YYYY-MM")
	}
	if r.PaymentMethod != nil && !model.ValidPaymentMethod(*r.PaymentMethod) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "payment_method inválido")
	}

	dueDate := time.Time{}
	if r.PaymentDueDate != nil {
		dueDate = *r.PaymentDueDate
	} else {
		dueDate, err = helper.DueDateFor(month)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	status := model.PaymentStatusPendente
	isLate := false
	if now.After(dueDate) {
		status = model.PaymentStatusAtrasado
		isLate = true
	}

	amount := r.PaymentAmount.Round(2)
	return &model.Payment{
		PaymentTenantID:       tenantID,
		PaymentPropertyID:     propertyID,
		PaymentManagerID:      managerID,
		PaymentAmount:         amount,
		PaymentTotalAmount:    amount,
		PaymentStatus:         status,
		PaymentIsLate:         isLate,
		PaymentMethod:         r.PaymentMethod,
		PaymentDueDate:        dueDate,
		PaymentReferenceMonth: month,
		PaymentDescription:    r.PaymentDescription,
	}, nil
}

type CreateMultipaymentsRequest struct {
	Payments []CreatePaymentRequest `json:"payments" validate:"required,min=1,dive"`
}

// UpdatePaymentRequest é um patch parcial: status dispara a state machine,
// os demais campos só editam metadados.
type UpdatePaymentRequest struct {
	PaymentStatus      *string    `json:"payment_status,omitempty"`
	PaymentMethod      *string    `json:"payment_method,omitempty"`
	PaymentDate        *time.Time `json:"payment_date,omitempty"`
	PaymentDescription *string    `json:"payment_description,omitempty"`
}

func (r *UpdatePaymentRequest) Validate() error {
	if r.PaymentStatus != nil && !model.ValidPaymentStatus(*r.PaymentStatus) {
		return fiber.NewError(fiber.StatusBadRequest, "payment_status inválido")
	}
	if r.PaymentMethod != nil && !model.ValidPaymentMethod(*r.PaymentMethod) {
		return fiber.NewError(fiber.StatusBadRequest, "payment_method inválido")
	}
	return nil
}

// HasChanges detecta o no-op: nada a alterar → short-circuit sem efeitos.
func (r *UpdatePaymentRequest) HasChanges(p *model.Payment) bool {
	if r.PaymentStatus != nil && *r.PaymentStatus != p.PaymentStatus {
		return true
	}
	if r.PaymentMethod != nil && (p.PaymentMethod == nil || *r.PaymentMethod != *p.PaymentMethod) {
		return true
	}
	if r.PaymentDate != nil && (p.PaymentDate == nil || !r.PaymentDate.Equal(*p.PaymentDate)) {
		return true
	}
	if r.PaymentDescription != nil && (p.PaymentDescription == nil || *r.PaymentDescription != *p.PaymentDescription) {
		return true
	}
	return false
}

type CancelPaymentRequest struct {
	PaymentCancellationReason *string `json:"payment_cancellation_reason,omitempty"`
}

/* ===================== Responses ===================== */

type PaymentResponse struct {
	PaymentID uuid.UUID `json:"payment_id"`

	PaymentTenantID   uuid.UUID `json:"payment_tenant_id"`
	PaymentPropertyID uuid.UUID `json:"payment_property_id"`
	PaymentManagerID  uuid.UUID `json:"payment_manager_id"`

	PaymentAmount      decimal.Decimal `json:"payment_amount"`
	PaymentFineAmount  decimal.Decimal `json:"payment_fine_amount"`
	PaymentTotalAmount decimal.Decimal `json:"payment_total_amount"`
	PaymentFineCount   int             `json:"payment_fine_count"`

	PaymentStatus string  `json:"payment_status"`
	PaymentMethod *string `json:"payment_method,omitempty"`

	PaymentDueDate          time.Time  `json:"payment_due_date"`
	PaymentDate             *time.Time `json:"payment_date,omitempty"`
	PaymentCancellationDate *time.Time `json:"payment_cancellation_date,omitempty"`

	PaymentNotificationCount int `json:"payment_notification_count"`

	PaymentReferenceMonth     string  `json:"payment_reference_month"`
	PaymentCancellationReason *string `json:"payment_cancellation_reason,omitempty"`
	PaymentDescription        *string `json:"payment_description,omitempty"`

	PaymentCreatedAt time.Time `json:"payment_created_at"`
	PaymentUpdatedAt time.Time `json:"payment_updated_at"`
}

func FromModel(p *model.Payment) *PaymentResponse {
	return &PaymentResponse{
		PaymentID:                 p.PaymentID,
		PaymentTenantID:           p.PaymentTenantID,
		PaymentPropertyID:         p.PaymentPropertyID,
		PaymentManagerID:          p.PaymentManagerID,
		PaymentAmount:             p.PaymentAmount,
		PaymentFineAmount:         p.PaymentFineAmount,
		PaymentTotalAmount:        p.PaymentTotalAmount,
		PaymentFineCount:          p.PaymentFineCount,
		PaymentStatus:             p.PaymentStatus,
		PaymentMethod:             p.PaymentMethod,
		PaymentDueDate:            p.PaymentDueDate,
		PaymentDate:               p.PaymentDate,
		PaymentCancellationDate:   p.PaymentCancellationDate,
		PaymentNotificationCount:  p.PaymentNotificationCount,
		PaymentReferenceMonth:     p.PaymentReferenceMonth,
		PaymentCancellationReason: p.PaymentCancellationReason,
		PaymentDescription:        p.PaymentDescription,
		PaymentCreatedAt:          p.CreatedAt,
		PaymentUpdatedAt:          p.UpdatedAt,
	}
}

func FromModels(ps []model.Payment) []*PaymentResponse {
	out := make([]*PaymentResponse, 0, len(ps))
	for i := range ps {
		out = append(out, FromModel(&ps[i]))
	}
	return out
}

/* ===================== Histórico ===================== */

type PaymentHistoryResponse struct {
	PaymentHistoryID        uuid.UUID      `json:"payment_history_id"`
	PaymentHistoryPaymentID uuid.UUID      `json:"payment_history_payment_id"`
	PaymentHistoryAction    string         `json:"payment_history_action"`
	PaymentHistoryOldValue  map[string]any `json:"payment_history_old_value,omitempty"`
	PaymentHistoryNewValue  map[string]any `json:"payment_history_new_value,omitempty"`
	PaymentHistoryChangedBy uuid.UUID      `json:"payment_history_changed_by"`
	PaymentHistoryDate      time.Time      `json:"payment_history_change_date"`
}

func FromHistoryModel(h *model.PaymentHistory) *PaymentHistoryResponse {
	return &PaymentHistoryResponse{
		PaymentHistoryID:        h.PaymentHistoryID,
		PaymentHistoryPaymentID: h.PaymentHistoryPaymentID,
		PaymentHistoryAction:    h.PaymentHistoryAction,
		PaymentHistoryOldValue:  h.PaymentHistoryOldValue,
		PaymentHistoryNewValue:  h.PaymentHistoryNewValue,
		PaymentHistoryChangedBy: h.PaymentHistoryChangedBy,
		PaymentHistoryDate:      h.PaymentHistoryChangeDate,
	}
}
