package service

import (
	"errors"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"rentix_backend/internals/configs"
	"rentix_backend/internals/features/finance/payments/model"
	tenantmodel "rentix_backend/internals/features/rentals/tenants/model"
)

/* ===================== Gateway (Midtrans Snap) ===================== */
/* Checkout online para pagamento com cartão: gera o token/URL do Snap a
   partir de um pagamento aberto. O server key vem do env no bootstrap. */

var SnapClient snap.Client

// InitGateway deve ser chamada no bootstrap. Sem MIDTRANS_SERVER_KEY o
// checkout fica desabilitado (CreateCheckout devolve erro).
func InitGateway() bool {
	serverKey := configs.GetEnv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return false
	}
	env := midtrans.Sandbox
	if strings.EqualFold(configs.GetEnv("MIDTRANS_ENV", "sandbox"), "production") {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
	return true
}

type CheckoutLink struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// CreateCheckout gera o link de checkout de um pagamento aberto.
func CreateCheckout(p *model.Payment, tenant *tenantmodel.Tenant) (*CheckoutLink, error) {
	if SnapClient.ServerKey == "" {
		return nil, errors.New("gateway de pagamento não configurado (MIDTRANS_SERVER_KEY ausente)")
	}
	if !p.IsOpen() {
		return nil, errors.New("apenas pagamentos pendentes ou atrasados podem ir ao checkout")
	}

	grossAmount := p.PaymentTotalAmount.Round(0).IntPart()
	if grossAmount <= 0 {
		return nil, errors.New("valor total do pagamento inválido para checkout")
	}

	itemName := "Aluguel " + p.PaymentReferenceMonth
	if p.PaymentDescription != nil && *p.PaymentDescription != "" {
		itemName = truncate(*p.PaymentDescription, 50)
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.PaymentID.String(),
			GrossAmt: grossAmount,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: tenant.TenantName,
			Email: tenant.TenantEmail,
			Phone: tenant.TenantPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       p.PaymentID.String(),
				Price:    grossAmount,
				Qty:      1,
				Name:     itemName,
				Category: "Aluguel",
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return nil, err
	}
	return &CheckoutLink{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
