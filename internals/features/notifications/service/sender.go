package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	finemodel "rentix_backend/internals/features/finance/fines/model"
	paymentmodel "rentix_backend/internals/features/finance/payments/model"
	notifmodel "rentix_backend/internals/features/notifications/model"
	tenantmodel "rentix_backend/internals/features/rentals/tenants/model"
	authmodel "rentix_backend/internals/features/users/auth/model"
)

/* ===================== Sender ===================== */
/* Implementa o Notifier do core de pagamentos: resolve template, respeita os
   canais habilitados nas FineSettings do gestor e dispara e-mail/SMS. */

type Sender struct {
	DB     *gorm.DB
	Mailer *Mailer
	SMS    *SMSSender
}

func NewSender(db *gorm.DB) *Sender {
	s := &Sender{
		DB:     db,
		Mailer: NewMailerFromEnv(),
		SMS:    NewSMSSenderFromEnv(),
	}
	if s.Mailer == nil {
		log.Println("⚠️ SMTP não configurado, notificações por e-mail desabilitadas")
	}
	if s.SMS == nil {
		log.Println("⚠️ Twilio não configurado, notificações por SMS desabilitadas")
	}
	return s
}

func (s *Sender) SendPaymentNotification(kind string, p *paymentmodel.Payment, tenant *tenantmodel.Tenant, manager *authmodel.Manager, extra map[string]any) error {
	msg, ok := RenderPayment(kind, p, tenant, manager)
	if !ok {
		return fmt.Errorf("tipo de notificação desconhecido: %s", kind)
	}

	email, phone := tenant.TenantEmail, tenant.TenantPhone
	if strings.HasSuffix(kind, "_manager") {
		email, phone = manager.ManagerEmail, manager.ManagerPhone
	}

	settings := s.settingsFor(p.PaymentManagerID.String())
	return s.deliver(settings, email, phone, msg)
}

// SendWelcome envia a mensagem de boas-vindas na ativação do inquilino e
// registra o envio no NotificationLog.
func (s *Sender) SendWelcome(tenant *tenantmodel.Tenant, settings *finemodel.FineSettings) error {
	msg := RenderWelcome(settings, tenant.TenantName)
	if err := s.deliver(settings, tenant.TenantEmail, tenant.TenantPhone, msg); err != nil {
		return err
	}
	logRow := notifmodel.NotificationLog{
		NotificationLogTenantID:  tenant.TenantID,
		NotificationLogManagerID: tenant.TenantManagerID,
		NotificationLogMessage:   "Mensagem de boas-vindas enviada",
	}
	if err := s.DB.Create(&logRow).Error; err != nil {
		log.Printf("[NOTIFY] erro ao registrar boas-vindas de %s: %v", tenant.TenantID, err)
	}
	return nil
}

// deliver aplica os toggles de canal; sem settings valem os defaults
// (e-mail ligado, SMS desligado). Falhas dos dois canais são agregadas.
func (s *Sender) deliver(settings *finemodel.FineSettings, email, phone string, msg Message) error {
	emailOn, smsOn := true, false
	if settings != nil {
		emailOn = settings.FineSettingsEmailNotifications
		smsOn = settings.FineSettingsSMSNotifications
	}

	var errs []error
	sent := false

	if emailOn && s.Mailer != nil {
		if err := s.Mailer.SendEmail(email, msg.Subject, msg.HTML); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		} else {
			sent = true
		}
	}
	if smsOn && s.SMS != nil {
		if err := s.SMS.SendSMS(phone, msg.SMS); err != nil {
			errs = append(errs, fmt.Errorf("sms: %w", err))
		} else {
			sent = true
		}
	}

	if len(errs) > 0 && !sent {
		return errors.Join(errs...)
	}
	for _, err := range errs {
		log.Printf("[NOTIFY] canal falhou (entrega parcial): %v", err)
	}
	return nil
}

func (s *Sender) settingsFor(managerID string) *finemodel.FineSettings {
	var settings finemodel.FineSettings
	if err := s.DB.First(&settings, "fine_settings_manager_id = ?", managerID).Error; err != nil {
		return nil
	}
	return &settings
}
