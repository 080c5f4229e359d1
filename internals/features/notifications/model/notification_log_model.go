package model

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== Model ===================== */
/* Registro de toda comunicação enviada (e-mail/SMS). Apenas observabilidade:
   o dedup de lembretes usa notification_count/last_notification_sent no Payment. */

type NotificationLog struct {
	NotificationLogID uuid.UUID `gorm:"column:notification_log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"notification_log_id"`

	NotificationLogTenantID  uuid.UUID `gorm:"column:notification_log_tenant_id;type:uuid;not null;index" json:"notification_log_tenant_id"`
	NotificationLogManagerID uuid.UUID `gorm:"column:notification_log_manager_id;type:uuid;not null;index" json:"notification_log_manager_id"`

	NotificationLogMessage string    `gorm:"column:notification_log_message;type:text;not null" json:"notification_log_message"`
	NotificationLogSentAt  time.Time `gorm:"column:notification_log_sent_at;not null;autoCreateTime" json:"notification_log_sent_at"`
}

func (NotificationLog) TableName() string { return "notification_logs" }
