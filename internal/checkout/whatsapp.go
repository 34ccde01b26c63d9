package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/docesonho/bakery-backend/internal/cart"
	"github.com/docesonho/bakery-backend/internal/catalog"
)

// Checkout composes pre-filled WhatsApp messages and wa.me deep links. It is
// fire-and-forget: nothing is persisted and no response is handled — the
// client opens the link in a new browsing context.
type Checkout struct {
	phoneNumber string
}

func New(phoneNumber string) *Checkout {
	return &Checkout{phoneNumber: phoneNumber}
}

// OrderMessage formats the whole cart as a WhatsApp order: one `*Nx* name`
// line per item and the 2-decimal total.
func (w *Checkout) OrderMessage(items []cart.Item, total decimal.Decimal) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("*%dx* %s", it.Quantity, it.Product.Name))
	}
	return fmt.Sprintf("*Novo Pedido*\n\n%s\n\n*Total:* R$ %s",
		strings.Join(lines, "\n"), total.StringFixed(2))
}

// InquiryMessage formats a single-product inquiry.
func (w *Checkout) InquiryMessage(p catalog.Product) string {
	return fmt.Sprintf("Olá! Gostaria de pedir *%s* por R$ %s.", p.Name, p.Price.StringFixed(2))
}

// DeepLink URL-encodes the message into a wa.me link. Spaces are encoded as
// %20 rather than +, which WhatsApp renders literally.
func (w *Checkout) DeepLink(message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", w.phoneNumber, encoded)
}
