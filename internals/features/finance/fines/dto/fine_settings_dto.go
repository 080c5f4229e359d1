package dto

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentix_backend/internals/features/finance/fines/model"
)

/* ===================== Requests ===================== */

// UpdateFineSettingsRequest é um patch parcial das configurações do gestor.
type UpdateFineSettingsRequest struct {
	FineSettingsFinePercentage        *decimal.Decimal `json:"fine_settings_fine_percentage,omitempty"`
	FineSettingsMaxFinesBeforeWarning *int             `json:"fine_settings_max_fines_before_warning,omitempty"`
	FineSettingsWelcomeMessage        *string          `json:"fine_settings_welcome_message,omitempty"`
	FineSettingsEmailNotifications    *bool            `json:"fine_settings_email_notifications,omitempty"`
	FineSettingsSMSNotifications      *bool            `json:"fine_settings_sms_notifications,omitempty"`
	FineSettingsWhatsappNotifications *bool            `json:"fine_settings_whatsapp_notifications,omitempty"`
	FineSettingsPaymentReminderDays   *int             `json:"fine_settings_payment_reminder_days,omitempty"`
}

// Apply valida e aplica o patch sobre as configurações carregadas.
func (r *UpdateFineSettingsRequest) Apply(s *model.FineSettings) error {
	if r.FineSettingsFinePercentage != nil {
		pct := *r.FineSettingsFinePercentage
		if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(1)) {
			return fiber.NewError(fiber.StatusBadRequest, "fine_settings_fine_percentage deve estar entre 0 e 1")
		}
		s.FineSettingsFinePercentage = pct
	}
	if r.FineSettingsMaxFinesBeforeWarning != nil {
		if *r.FineSettingsMaxFinesBeforeWarning < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "fine_settings_max_fines_before_warning deve ser >= 1")
		}
		s.FineSettingsMaxFinesBeforeWarning = *r.FineSettingsMaxFinesBeforeWarning
	}
	if r.FineSettingsWelcomeMessage != nil {
		s.FineSettingsWelcomeMessage = *r.FineSettingsWelcomeMessage
	}
	if r.FineSettingsEmailNotifications != nil {
		s.FineSettingsEmailNotifications = *r.FineSettingsEmailNotifications
	}
	if r.FineSettingsSMSNotifications != nil {
		s.FineSettingsSMSNotifications = *r.FineSettingsSMSNotifications
	}
	if r.FineSettingsWhatsappNotifications != nil {
		s.FineSettingsWhatsappNotifications = *r.FineSettingsWhatsappNotifications
	}
	if r.FineSettingsPaymentReminderDays != nil {
		d := *r.FineSettingsPaymentReminderDays
		if d < 1 || d > 30 {
			return fiber.NewError(fiber.StatusBadRequest, "fine_settings_payment_reminder_days deve estar entre 1 e 30")
		}
		s.FineSettingsPaymentReminderDays = d
	}
	return nil
}

/* ===================== Responses ===================== */

type FineSettingsResponse struct {
	FineSettingsID                    uuid.UUID       `json:"fine_settings_id"`
	FineSettingsManagerID             uuid.UUID       `json:"fine_settings_manager_id"`
	FineSettingsFinePercentage        decimal.Decimal `json:"fine_settings_fine_percentage"`
	FineSettingsMaxFinesBeforeWarning int             `json:"fine_settings_max_fines_before_warning"`
	FineSettingsWelcomeMessage        string          `json:"fine_settings_welcome_message"`
	FineSettingsEmailNotifications    bool            `json:"fine_settings_email_notifications"`
	FineSettingsSMSNotifications      bool            `json:"fine_settings_sms_notifications"`
	FineSettingsWhatsappNotifications bool            `json:"fine_settings_whatsapp_notifications"`
	FineSettingsPaymentReminderDays   int             `json:"fine_settings_payment_reminder_days"`
	FineSettingsUpdatedAt             time.Time       `json:"fine_settings_updated_at"`
}

func FromModel(s *model.FineSettings) *FineSettingsResponse {
	return &FineSettingsResponse{
		FineSettingsID:                    s.FineSettingsID,
		FineSettingsManagerID:             s.FineSettingsManagerID,
		FineSettingsFinePercentage:        s.FineSettingsFinePercentage,
		FineSettingsMaxFinesBeforeWarning: s.FineSettingsMaxFinesBeforeWarning,
		FineSettingsWelcomeMessage:        s.FineSettingsWelcomeMessage,
		FineSettingsEmailNotifications:    s.FineSettingsEmailNotifications,
		FineSettingsSMSNotifications:      s.FineSettingsSMSNotifications,
		FineSettingsWhatsappNotifications: s.FineSettingsWhatsappNotifications,
		FineSettingsPaymentReminderDays:   s.FineSettingsPaymentReminderDays,
		FineSettingsUpdatedAt:             s.UpdatedAt,
	}
}
