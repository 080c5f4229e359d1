package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rentix_backend/internals/configs"
	"rentix_backend/internals/features/users/auth/dto"
	"rentix_backend/internals/features/users/auth/model"
	svc "rentix_backend/internals/features/users/auth/service"
	helper "rentix_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

/* =======================================================================
   Registro / login
======================================================================= */

// POST /api/auth/register
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.ManagerEmail))

	var count int64
	if err := h.DB.WithContext(c.Context()).Model(&model.Manager{}).
		Where("manager_email = ?", email).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "E-mail já cadastrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.ManagerPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao processar senha")
	}

	manager := model.Manager{
		ManagerName:     strings.TrimSpace(req.ManagerName),
		ManagerEmail:    email,
		ManagerPhone:    strings.TrimSpace(req.ManagerPhone),
		ManagerPassword: string(hash),
		ManagerStatus:   model.ManagerStatusAtivo,
	}
	if err := h.DB.WithContext(c.Context()).Create(&manager).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return h.respondWithTokens(c, &manager, fiber.StatusCreated, "Gestor registrado")
}

// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var manager model.Manager
	err := h.DB.WithContext(c.Context()).
		First(&manager, "manager_email = ?", strings.ToLower(strings.TrimSpace(req.ManagerEmail))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciais inválidas")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if bcrypt.CompareHashAndPassword([]byte(manager.ManagerPassword), []byte(req.ManagerPassword)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciais inválidas")
	}
	if !manager.IsAtivo() {
		return helper.JsonError(c, fiber.StatusForbidden, "Conta inativa")
	}

	return h.respondWithTokens(c, &manager, fiber.StatusOK, "Login realizado")
}

// POST /api/auth/google
// Login com ID token do Google; cria o gestor no primeiro acesso.
func (h *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Login com Google não configurado")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token Google inválido")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil || claimSet.Email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token Google sem e-mail")
	}

	email := strings.ToLower(claimSet.Email)
	var manager model.Manager
	err = h.DB.WithContext(c.Context()).First(&manager, "manager_email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		manager = model.Manager{
			ManagerName:     claimSet.Name,
			ManagerEmail:    email,
			ManagerPhone:    "",
			ManagerPassword: "-", // conta Google: sem senha local
			ManagerStatus:   model.ManagerStatusAtivo,
		}
		if err := h.DB.WithContext(c.Context()).Create(&manager).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if !manager.IsAtivo() {
		return helper.JsonError(c, fiber.StatusForbidden, "Conta inativa")
	}
	return h.respondWithTokens(c, &manager, fiber.StatusOK, "Login com Google realizado")
}

/* =======================================================================
   Refresh / logout / perfil
======================================================================= */

// POST /api/auth/refresh
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	claims, err := svc.ParseToken(req.RefreshToken, configs.JWTRefreshSecret)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token inválido ou expirado")
	}
	managerID, _ := claims["manager_id"].(string)

	var manager model.Manager
	if err := h.DB.WithContext(c.Context()).
		First(&manager, "manager_id = ?", managerID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Gestor não encontrado")
	}
	if !manager.IsAtivo() {
		return helper.JsonError(c, fiber.StatusForbidden, "Conta inativa")
	}

	return h.respondWithTokens(c, &manager, fiber.StatusOK, "Token renovado")
}

// POST /api/m/auth/logout
// Coloca o access token atual na blacklist até a expiração natural.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	raw := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Token ausente")
	}

	expiredAt := time.Now().Add(svc.AccessTokenTTL)
	if claims, err := svc.ParseToken(raw, configs.JWTSecret); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0)
		}
	}

	entry := model.TokenBlacklist{Token: raw, ExpiredAt: expiredAt}
	if err := h.DB.WithContext(c.Context()).Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Logout realizado", nil)
}

// GET /api/m/auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var manager model.Manager
	if err := h.DB.WithContext(c.Context()).
		First(&manager, "manager_id = ?", managerID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Gestor não encontrado")
	}
	return helper.JsonOK(c, "Perfil do gestor", managerToResponse(&manager))
}

/* ===================== Internos ===================== */

func (h *AuthController) respondWithTokens(c *fiber.Ctx, manager *model.Manager, status int, message string) error {
	access, refresh, err := svc.GenerateTokenPair(manager, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar tokens: "+err.Error())
	}

	body := dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Manager:      managerToResponse(manager),
	}
	if status == fiber.StatusCreated {
		return helper.JsonCreated(c, message, body)
	}
	return helper.JsonOK(c, message, body)
}

func managerToResponse(m *model.Manager) dto.ManagerResponse {
	return dto.ManagerResponse{
		ManagerID:     m.ManagerID,
		ManagerName:   m.ManagerName,
		ManagerEmail:  m.ManagerEmail,
		ManagerPhone:  m.ManagerPhone,
		ManagerStatus: m.ManagerStatus,
	}
}
