package constants

// Janelas temporais do ciclo de cobrança (dias).
const (
	OverdueWindowDays    = 7
	CriticalResendDays   = 3
	StatusChangeNoticeHr = 24
)

// Schedules default do cron (sobrescritos por env).
const (
	DefaultSweepSchedule = "0 9 * * *" // diário 09:00
	DefaultResetSchedule = "0 0 1 * *" // dia 1 à meia-noite
)
