package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentix_backend/internals/features/finance/fines/dto"
	"rentix_backend/internals/features/finance/fines/model"
	helper "rentix_backend/internals/helpers"
)

type FineSettingsController struct {
	DB *gorm.DB
}

func NewFineSettingsController(db *gorm.DB) *FineSettingsController {
	return &FineSettingsController{DB: db}
}

// GET /api/m/fine-settings
// Primeira leitura cria a linha com defaults (uma por gestor).
func (h *FineSettingsController) GetFineSettings(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var settings model.FineSettings
	err = h.DB.WithContext(c.Context()).
		First(&settings, "fine_settings_manager_id = ?", managerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.DefaultFineSettings(managerID)
		// ON CONFLICT DO NOTHING cobre a corrida entre duas primeiras leituras.
		if err := h.DB.WithContext(c.Context()).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&settings).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if err := h.DB.WithContext(c.Context()).
			First(&settings, "fine_settings_manager_id = ?", managerID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "Configurações de multa", dto.FromModel(&settings))
}

// PATCH /api/m/fine-settings
func (h *FineSettingsController) UpdateFineSettings(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateFineSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}

	var settings model.FineSettings
	txErr := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&settings, "fine_settings_manager_id = ?", managerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = model.DefaultFineSettings(managerID)
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := req.Apply(&settings); err != nil {
			return err
		}
		return tx.Save(&settings).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.JsonUpdated(c, "Configurações de multa atualizadas", dto.FromModel(&settings))
}
