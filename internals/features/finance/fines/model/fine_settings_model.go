package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/* ===================== Model ===================== */
/* Uma linha por gestor; criada sob demanda com defaults no primeiro acesso. */

type FineSettings struct {
	FineSettingsID uuid.UUID `gorm:"column:fine_settings_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fine_settings_id"`

	FineSettingsManagerID uuid.UUID `gorm:"column:fine_settings_manager_id;type:uuid;not null;uniqueIndex" json:"fine_settings_manager_id"`

	// Percentual da multa por atraso (0.03 = 3%)
	FineSettingsFinePercentage decimal.Decimal `gorm:"column:fine_settings_fine_percentage;type:numeric(5,4);not null;default:0.03" json:"fine_settings_fine_percentage"`

	// Número de multas antes de uma advertência formal
	FineSettingsMaxFinesBeforeWarning int `gorm:"column:fine_settings_max_fines_before_warning;not null;default:3;check:fine_settings_max_fines_before_warning >= 1" json:"fine_settings_max_fines_before_warning"`

	// Template HTML de boas-vindas ({nome_do_inquilino}, {porcentagem_da_multa}, {max_fines_before_warning})
	FineSettingsWelcomeMessage string `gorm:"column:fine_settings_welcome_message;type:text;not null;default:''" json:"fine_settings_welcome_message"`

	// Canais de notificação
	FineSettingsEmailNotifications    bool `gorm:"column:fine_settings_email_notifications;not null;default:true" json:"fine_settings_email_notifications"`
	FineSettingsSMSNotifications      bool `gorm:"column:fine_settings_sms_notifications;not null;default:false" json:"fine_settings_sms_notifications"`
	FineSettingsWhatsappNotifications bool `gorm:"column:fine_settings_whatsapp_notifications;not null;default:true" json:"fine_settings_whatsapp_notifications"`

	// Dias antes do vencimento para enviar lembrete (1..30). Armazenado e
	// editável, mas ainda não consultado pela varredura: o lembrete "pending"
	// dispara em qualquer vencimento futuro.
	FineSettingsPaymentReminderDays int `gorm:"column:fine_settings_payment_reminder_days;not null;default:3" json:"fine_settings_payment_reminder_days"`

	CreatedAt time.Time `gorm:"column:fine_settings_created_at;autoCreateTime" json:"fine_settings_created_at"`
	UpdatedAt time.Time `gorm:"column:fine_settings_updated_at;autoUpdateTime" json:"fine_settings_updated_at"`
}

func (FineSettings) TableName() string { return "fine_settings" }

// DefaultFineSettings monta as configurações padrão de um gestor.
func DefaultFineSettings(managerID uuid.UUID) FineSettings {
	return FineSettings{
		FineSettingsManagerID:             managerID,
		FineSettingsFinePercentage:        decimal.NewFromFloat(0.03),
		FineSettingsMaxFinesBeforeWarning: 3,
		FineSettingsWelcomeMessage:        DefaultWelcomeMessage,
		FineSettingsEmailNotifications:    true,
		FineSettingsSMSNotifications:      false,
		FineSettingsWhatsappNotifications: true,
		FineSettingsPaymentReminderDays:   3,
	}
}

// DefaultWelcomeMessage é o template enviado a inquilinos recém-ativados.
const DefaultWelcomeMessage = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
  <h1 style="color: #2c3e50;">Bem-vindo(a), {nome_do_inquilino}!</h1>
  <p>É um prazer recebê-lo em nosso sistema de gestão de propriedades.</p>
  <div style="background-color: #f1f8fe; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <h3 style="color: #2980b9; margin-top: 0;">📅 Política de Pagamentos</h3>
    <p>Pagamentos após o vencimento recebem multa de <strong>{porcentagem_da_multa}%</strong> sobre o aluguel.</p>
    <p>Após <strong>{max_fines_before_warning} ocorrências</strong> de atraso, você receberá uma advertência formal.</p>
  </div>
  <p>Mantenha seus pagamentos em dia para evitar inconvenientes. Estamos à disposição!</p>
  <p style="font-weight: bold; color: #2c3e50;">Equipe Rentix</p>
</div>
`
