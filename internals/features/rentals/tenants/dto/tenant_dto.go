package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rentix_backend/internals/features/rentals/tenants/model"
)

/* ===================== Requests ===================== */

type CreateTenantRequest struct {
	TenantName         string  `json:"tenant_name" validate:"required,min=2"`
	TenantEmail        string  `json:"tenant_email" validate:"required,email"`
	TenantPhone        string  `json:"tenant_phone" validate:"required"`
	TenantBINum        string  `json:"tenant_bi_num" validate:"required"`
	TenantStatus       *string `json:"tenant_status,omitempty"`
	TenantJob          *string `json:"tenant_job,omitempty"`
	TenantEmergencyNum *string `json:"tenant_emergency_num,omitempty"`
	TenantObservation  *string `json:"tenant_observation,omitempty"`
}

func (r *CreateTenantRequest) ToModel(managerID uuid.UUID) (*model.Tenant, error) {
	status := model.TenantStatusInativo
	if r.TenantStatus != nil {
		if !model.ValidTenantStatus(*r.TenantStatus) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "tenant_status inválido")
		}
		status = *r.TenantStatus
	}
	return &model.Tenant{
		TenantManagerID:    managerID,
		TenantName:         strings.TrimSpace(r.TenantName),
		TenantEmail:        strings.ToLower(strings.TrimSpace(r.TenantEmail)),
		TenantPhone:        strings.TrimSpace(r.TenantPhone),
		TenantBINum:        strings.TrimSpace(r.TenantBINum),
		TenantStatus:       status,
		TenantJob:          r.TenantJob,
		TenantEmergencyNum: r.TenantEmergencyNum,
		TenantObservation:  r.TenantObservation,
	}, nil
}

type UpdateTenantRequest struct {
	TenantName         *string `json:"tenant_name,omitempty"`
	TenantEmail        *string `json:"tenant_email,omitempty"`
	TenantPhone        *string `json:"tenant_phone,omitempty"`
	TenantStatus       *string `json:"tenant_status,omitempty"`
	TenantJob          *string `json:"tenant_job,omitempty"`
	TenantEmergencyNum *string `json:"tenant_emergency_num,omitempty"`
	TenantObservation  *string `json:"tenant_observation,omitempty"`
}

// Apply aplica o patch e informa se o inquilino acabou de ser ativado
// (gatilho da mensagem de boas-vindas).
func (r *UpdateTenantRequest) Apply(t *model.Tenant) (activated bool, err error) {
	if r.TenantStatus != nil {
		if !model.ValidTenantStatus(*r.TenantStatus) {
			return false, fiber.NewError(fiber.StatusBadRequest, "tenant_status inválido")
		}
		if *r.TenantStatus == model.TenantStatusAtivo && !t.IsAtivo() {
			activated = true
		}
		if *r.TenantStatus != model.TenantStatusAtivo && t.IsAtivo() {
			now := time.Now()
			t.TenantLeaveIn = &now
		}
		t.TenantStatus = *r.TenantStatus
	}
	if r.TenantName != nil {
		t.TenantName = strings.TrimSpace(*r.TenantName)
	}
	if r.TenantEmail != nil {
		t.TenantEmail = strings.ToLower(strings.TrimSpace(*r.TenantEmail))
	}
	if r.TenantPhone != nil {
		t.TenantPhone = strings.TrimSpace(*r.TenantPhone)
	}
	if r.TenantJob != nil {
		t.TenantJob = r.TenantJob
	}
	if r.TenantEmergencyNum != nil {
		t.TenantEmergencyNum = r.TenantEmergencyNum
	}
	if r.TenantObservation != nil {
		t.TenantObservation = r.TenantObservation
	}
	return activated, nil
}
