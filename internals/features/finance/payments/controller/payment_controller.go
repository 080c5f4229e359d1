package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentix_backend/internals/features/finance/payments/dto"
	"rentix_backend/internals/features/finance/payments/model"
	svc "rentix_backend/internals/features/finance/payments/service"
	tenantmodel "rentix_backend/internals/features/rentals/tenants/model"
	helper "rentix_backend/internals/helpers"
)

/* =======================================================================
   Controller
======================================================================= */

var validate = validator.New()

type PaymentController struct {
	DB       *gorm.DB
	Notifier svc.Notifier
}

func NewPaymentController(db *gorm.DB, notifier svc.Notifier) *PaymentController {
	return &PaymentController{DB: db, Notifier: notifier}
}

// Whitelist de ordenação da listagem.
var paymentSortableColumns = map[string]string{
	"due_date":        "payment_due_date",
	"created_at":      "payment_created_at",
	"amount":          "payment_amount",
	"total_amount":    "payment_total_amount",
	"status":          "payment_status",
	"reference_month": "payment_reference_month",
}

/* =======================================================================
   Listagem / detalhe
======================================================================= */

// GET /api/m/payments
func (h *PaymentController) GetPayments(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "due_date", "desc", helper.DefaultOpts)
	sortColumn, ok := paymentSortableColumns[p.SortBy]
	if !ok {
		sortColumn = "payment_due_date"
	}

	q := h.DB.WithContext(c.Context()).Model(&model.Payment{}).
		Where("payment_manager_id = ?", managerID)

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !model.ValidPaymentStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status inválido")
		}
		q = q.Where("payment_status = ?", status)
	}
	if month := strings.TrimSpace(c.Query("reference_month")); month != "" {
		if !helper.ValidReferenceMonth(month) {
			return helper.JsonError(c, fiber.StatusBadRequest, "reference_month deve estar no formato YYYY-MM")
		}
		q = q.Where("payment_reference_month = ?", month)
	}
	if tenantID := strings.TrimSpace(c.Query("tenant_id")); tenantID != "" {
		id, err := uuid.Parse(tenantID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "tenant_id inválido")
		}
		q = q.Where("payment_tenant_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var payments []model.Payment
	if err := q.Order(sortColumn + " " + p.SortOrder).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Pagamentos listados", dto.FromModels(payments), helper.BuildMeta(total, p))
}

// GET /api/m/payments/:id
func (h *PaymentController) GetPaymentByID(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	payment, ferr := h.findOwnedPayment(h.DB.WithContext(c.Context()), c.Params("id"), managerID, false)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	return helper.JsonOK(c, "Pagamento encontrado", dto.FromModel(payment))
}

// GET /api/m/payments/:id/history
func (h *PaymentController) GetPaymentHistory(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	payment, ferr := h.findOwnedPayment(h.DB.WithContext(c.Context()), c.Params("id"), managerID, false)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	var entries []model.PaymentHistory
	if err := h.DB.WithContext(c.Context()).
		Where("payment_history_payment_id = ?", payment.PaymentID).
		Order("payment_history_change_date DESC").
		Find(&entries).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]*dto.PaymentHistoryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, dto.FromHistoryModel(&entries[i]))
	}
	return helper.JsonOK(c, "Histórico do pagamento", out)
}

/* =======================================================================
   Criação
======================================================================= */

// POST /api/m/payments
func (h *PaymentController) CreatePayment(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	payment, ferr := h.createOne(c, &req, managerID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	svc.DispatchEffects(h.DB, h.Notifier, payment, creationEffects())
	return helper.JsonCreated(c, "Pagamento criado", dto.FromModel(payment))
}

// POST /api/m/payments/multi
// Cada item roda na própria transação: falha individual não derruba o lote.
func (h *PaymentController) CreateMultipayments(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateMultipaymentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	created := make([]*dto.PaymentResponse, 0, len(req.Payments))
	failures := make([]fiber.Map, 0)

	for i := range req.Payments {
		payment, ferr := h.createOne(c, &req.Payments[i], managerID)
		if ferr != nil {
			failures = append(failures, fiber.Map{
				"index":   i,
				"message": ferr.Error(),
			})
			continue
		}
		svc.DispatchEffects(h.DB, h.Notifier, payment, creationEffects())
		created = append(created, dto.FromModel(payment))
	}

	return helper.JsonCreated(c, fmt.Sprintf("%d pagamentos criados, %d falhas", len(created), len(failures)), fiber.Map{
		"created":  created,
		"failures": failures,
	})
}

// createOne valida posse, garante unicidade (inquilino, mês, gestor) e grava
// o pagamento + histórico de criação numa transação.
func (h *PaymentController) createOne(c *fiber.Ctx, req *dto.CreatePaymentRequest, managerID uuid.UUID) (*model.Payment, error) {
	payment, err := req.ToModel(managerID, time.Now())
	if err != nil {
		return nil, err
	}

	err = h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var tenant tenantmodel.Tenant
		if err := tx.First(&tenant, "tenant_id = ? AND tenant_manager_id = ?",
			payment.PaymentTenantID, managerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Inquilino não encontrado para este gestor")
			}
			return err
		}

		var existing model.Payment
		err := tx.First(&existing,
			"payment_tenant_id = ? AND payment_reference_month = ? AND payment_manager_id = ? AND payment_status <> ?",
			payment.PaymentTenantID, payment.PaymentReferenceMonth, managerID, model.PaymentStatusCancelado).Error
		if err == nil {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Já existe um pagamento %s para este inquilino no mês %s",
					existing.PaymentStatus, payment.PaymentReferenceMonth))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(payment).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict,
					"Já existe um pagamento para este inquilino no mês "+payment.PaymentReferenceMonth)
			}
			return err
		}

		return svc.RecordPaymentHistory(tx, payment.PaymentID, "Pagamento criado",
			nil, svc.PaymentSnapshot(payment), managerID)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

/* =======================================================================
   Atualização / cancelamento
======================================================================= */

// PATCH /api/m/payments/:id
// Mudança de status passa pela state machine; metadados são editados direto.
// Sem mudança real → short-circuit sem histórico nem notificação.
func (h *PaymentController) UpdatePayment(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return helper.FromFiberError(c, err)
	}

	now := time.Now()
	var payment *model.Payment
	var eff svc.Effects
	noChange := false

	txErr := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var ferr error
		payment, ferr = h.findOwnedPayment(tx, c.Params("id"), managerID, true)
		if ferr != nil {
			return ferr
		}

		if !req.HasChanges(payment) {
			noChange = true
			return nil
		}

		if req.PaymentStatus != nil && *req.PaymentStatus != payment.PaymentStatus {
			ev, ferr := eventForStatus(*req.PaymentStatus, req.PaymentDate)
			if ferr != nil {
				return ferr
			}
			settings, err := svc.FineSettingsForManager(tx, managerID)
			if err != nil {
				return err
			}
			eff, err = svc.ApplyTransition(payment, ev, settings, now)
			if err != nil {
				return err
			}
		}

		if metaEff := applyMetadata(payment, &req); metaEff != nil {
			eff.Audits = append(eff.Audits, *metaEff)
			eff.Logs = append(eff.Logs, "Pagamento atualizado")
		}

		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		return svc.PersistEffects(tx, payment, eff, managerID)
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}
	if noChange {
		return helper.JsonOK(c, "Nenhuma alteração a aplicar", dto.FromModel(payment))
	}

	svc.DispatchEffects(h.DB, h.Notifier, payment, eff)
	return helper.JsonUpdated(c, "Pagamento atualizado", dto.FromModel(payment))
}

// POST /api/m/payments/:id/cancel
// Cancelamento é terminal e nunca vira DELETE físico.
func (h *PaymentController) CancelPayment(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CancelPaymentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
		}
	}

	now := time.Now()
	var payment *model.Payment
	var eff svc.Effects

	txErr := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var ferr error
		payment, ferr = h.findOwnedPayment(tx, c.Params("id"), managerID, true)
		if ferr != nil {
			return ferr
		}

		var err error
		eff, err = svc.ApplyTransition(payment, svc.Event{
			Type:   svc.EventCancel,
			Reason: req.PaymentCancellationReason,
		}, nil, now)
		if err != nil {
			return err
		}

		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		return svc.PersistEffects(tx, payment, eff, managerID)
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	svc.DispatchEffects(h.DB, h.Notifier, payment, eff)
	return helper.JsonUpdated(c, "Pagamento cancelado", dto.FromModel(payment))
}

/* =======================================================================
   Geração manual / checkout
======================================================================= */

// POST /api/m/payments/generate
// Dispara a geração do mês corrente para o gestor autenticado (idempotente).
func (h *PaymentController) GeneratePayments(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	res, err := svc.GenerateMonthlyPayments(h.DB, h.Notifier, managerID, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Geração mensal concluída", res)
}

// POST /api/m/payments/:id/checkout
func (h *PaymentController) CreateCheckout(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	payment, ferr := h.findOwnedPayment(h.DB.WithContext(c.Context()), c.Params("id"), managerID, false)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	var tenant tenantmodel.Tenant
	if err := h.DB.WithContext(c.Context()).
		First(&tenant, "tenant_id = ?", payment.PaymentTenantID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Inquilino do pagamento não encontrado")
	}

	link, err := svc.CreateCheckout(payment, &tenant)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, err.Error())
	}
	return helper.JsonOK(c, "Checkout criado", link)
}

/* =======================================================================
   Internos
======================================================================= */

// findOwnedPayment carrega um pagamento do gestor; forUpdate trava a linha
// (SELECT ... FOR UPDATE) e só faz sentido dentro de uma transação.
func (h *PaymentController) findOwnedPayment(db *gorm.DB, rawID string, managerID uuid.UUID, forUpdate bool) (*model.Payment, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID de pagamento inválido")
	}

	q := db
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var payment model.Payment
	if err := q.First(&payment, "payment_id = ? AND payment_manager_id = ?", id, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Pagamento não encontrado")
		}
		return nil, err
	}
	return &payment, nil
}

func eventForStatus(status string, paymentDate *time.Time) (svc.Event, error) {
	switch status {
	case model.PaymentStatusPago:
		return svc.Event{Type: svc.EventMarkPaid, PaymentDate: paymentDate}, nil
	case model.PaymentStatusAtrasado:
		return svc.Event{Type: svc.EventMarkOverdue}, nil
	case model.PaymentStatusCancelado:
		return svc.Event{Type: svc.EventCancel}, nil
	default:
		return svc.Event{}, fiber.NewError(fiber.StatusBadRequest,
			"Pagamento não pode voltar manualmente para "+status)
	}
}

// applyMetadata edita campos que não participam da state machine e devolve o
// audit correspondente (nil quando nada mudou).
func applyMetadata(p *model.Payment, req *dto.UpdatePaymentRequest) *svc.AuditEffect {
	old := datatypes.JSONMap{}
	changed := datatypes.JSONMap{}

	if req.PaymentMethod != nil && (p.PaymentMethod == nil || *req.PaymentMethod != *p.PaymentMethod) {
		old["method"] = p.PaymentMethod
		changed["method"] = *req.PaymentMethod
		p.PaymentMethod = req.PaymentMethod
	}
	if req.PaymentDescription != nil && (p.PaymentDescription == nil || *req.PaymentDescription != *p.PaymentDescription) {
		old["description"] = p.PaymentDescription
		changed["description"] = *req.PaymentDescription
		p.PaymentDescription = req.PaymentDescription
	}

	if len(changed) == 0 {
		return nil
	}
	return &svc.AuditEffect{
		Action:   "Pagamento atualizado",
		OldValue: old,
		NewValue: changed,
	}
}

func creationEffects() svc.Effects {
	return svc.Effects{
		Notifies: []svc.NotifyEffect{
			{Kind: svc.NotifyPaymentCreated},
			{Kind: svc.NotifyPaymentCreatedManager, ToManager: true},
		},
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// validationMap converte os erros do validator para o envelope por campo.
func validationMap(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			out[field] = append(out[field], "falhou na regra '"+fe.Tag()+"'")
		}
		return out
	}
	out["body"] = []string{err.Error()}
	return out
}
