package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentix_backend/internals/features/finance/payments/controller"
	svc "rentix_backend/internals/features/finance/payments/service"
)

// PaymentRoutes registra as rotas de pagamento do gestor autenticado.
func PaymentRoutes(r fiber.Router, db *gorm.DB, notifier svc.Notifier) {
	ctrl := controller.NewPaymentController(db, notifier)

	p := r.Group("/payments")
	p.Get("/", ctrl.GetPayments)
	p.Post("/", ctrl.CreatePayment)
	p.Post("/multi", ctrl.CreateMultipayments)
	p.Post("/generate", ctrl.GeneratePayments)
	p.Get("/:id", ctrl.GetPaymentByID)
	p.Patch("/:id", ctrl.UpdatePayment)
	p.Post("/:id/cancel", ctrl.CancelPayment)
	p.Get("/:id/history", ctrl.GetPaymentHistory)
	p.Post("/:id/checkout", ctrl.CreateCheckout)
}
