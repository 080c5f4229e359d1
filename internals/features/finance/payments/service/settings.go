package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	finemodel "rentix_backend/internals/features/finance/fines/model"
)

// FineSettingsForManager busca as configurações de multa do gestor.
// Ausência NÃO é erro: devolve nil e o fine engine vira no-op; a transição
// de status nunca pode ser bloqueada por settings faltando.
func FineSettingsForManager(db *gorm.DB, managerID uuid.UUID) (*finemodel.FineSettings, error) {
	var s finemodel.FineSettings
	if err := db.First(&s, "fine_settings_manager_id = ?", managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
