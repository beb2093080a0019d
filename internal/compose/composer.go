// internal/compose/composer.go
package compose

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"pos-print-service/internal/escpos"
	"pos-print-service/internal/model"
)

const (
	receiptWidth  = 40
	timeLayout    = "02/01/2006 15:04"
	sessionTitle  = "Resumo da Sessão"
	productsTitle = "Produtos Vendidos"
	discountTitle = "Produtos com Desconto"
	paymentsTitle = "Métodos de Pagamento"
)

// Composer builds complete ESC/POS byte sequences for each document kind.
// All methods are pure except for the clock used by Footer and TestPage.
type Composer struct {
	// Now supplies the timestamp printed on footers and test pages.
	Now func() time.Time

	collator *collate.Collator
}

// NewComposer creates a composer with the Portuguese collation used for
// session summary ordering.
func NewComposer() *Composer {
	return &Composer{
		Now:      time.Now,
		collator: collate.New(language.Portuguese, collate.IgnoreCase),
	}
}

func rule() escpos.Sequence {
	return escpos.TextLine("rule", strings.Repeat("-", receiptWidth))
}

func blankLine() escpos.Sequence {
	return escpos.LineFeed()
}

// Header composes the configured receipt header: reset, codepage, the two
// optional centered bold lines, a rule and a cut.
func (c *Composer) Header(cfg model.ReceiptHeaderConfig) escpos.Sequence {
	parts := []escpos.Sequence{
		escpos.Initialize(),
		escpos.SelectLatin1(),
		escpos.Align(escpos.AlignCenter),
		escpos.BoldOn(),
	}

	if cfg.FirstLine != "" {
		parts = append(parts, escpos.TextLine("header-first-line", cfg.FirstLine))
	}
	if cfg.SecondLine != "" {
		parts = append(parts, escpos.TextLine("header-second-line", cfg.SecondLine))
	}

	parts = append(parts,
		escpos.BoldOff(),
		rule(),
		escpos.Align(escpos.AlignLeft),
		escpos.PartialCut(),
	)

	return escpos.Concat("header", parts...)
}

// ItemTicket composes the wide single-unit ticket printed once per
// expanded cart line.
func (c *Composer) ItemTicket(name string) escpos.Sequence {
	return escpos.Concat("item-ticket",
		escpos.SizeWide(),
		escpos.TextLine("item-line", "1 "+name),
		escpos.SizeNormal(),
		blankLine(),
	)
}

// TotalsTicket composes the order recap: the underlined label, the wide
// bold item listing and the bold total.
func (c *Composer) TotalsTicket(items []model.CartLine, total interface{}) escpos.Sequence {
	parts := []escpos.Sequence{
		escpos.Underline(escpos.UnderlineSingle),
		escpos.TextLine("totals-label", "Pedido:"),
		escpos.Underline(escpos.UnderlineOff),
		blankLine(),
		escpos.SizeWide(),
		escpos.BoldOn(),
	}

	for _, item := range items {
		parts = append(parts, escpos.TextLine("totals-item",
			fmt.Sprintf("%d %s", item.Quantity, item.Name)))
	}

	parts = append(parts,
		blankLine(),
		escpos.TextLine("totals-total", "Total: "+FormatEuros(total)),
		escpos.BoldOff(),
		escpos.SizeNormal(),
	)

	return escpos.Concat("totals-ticket", parts...)
}

// Footer composes the centered rule and timestamp that close a document.
func (c *Composer) Footer() escpos.Sequence {
	return escpos.Concat("footer",
		escpos.Align(escpos.AlignCenter),
		rule(),
		escpos.TextLine("footer-timestamp", c.Now().Format(timeLayout)),
		blankLine(),
		blankLine(),
		escpos.Align(escpos.AlignLeft),
	)
}

// SessionSummary composes the end-of-session document: timestamps and
// operators, products grouped by zone, discounts, payment methods,
// operation count, the drawer reconciliation block and optional notes.
func (c *Composer) SessionSummary(data model.SessionSummaryData) escpos.Sequence {
	parts := []escpos.Sequence{
		escpos.Align(escpos.AlignCenter),
		escpos.BoldOn(),
		escpos.TextLine("session-title", sessionTitle),
		escpos.BoldOff(),
		rule(),
		escpos.Align(escpos.AlignLeft),
		escpos.TextLine("session-opened", fmt.Sprintf("Abertura: %s (%s)",
			data.OpenedAt.Format(timeLayout), data.OpenedBy)),
		escpos.TextLine("session-closed", fmt.Sprintf("Fecho: %s (%s)",
			data.ClosedAt.Format(timeLayout), data.ClosedBy)),
		blankLine(),
	}

	parts = append(parts, c.productsSection(data.Products)...)

	if len(data.Discounted) > 0 {
		parts = append(parts, c.discountSection(data.Discounted)...)
	}

	parts = append(parts, c.paymentsSection(data.Payments)...)

	parts = append(parts,
		escpos.TextLine("session-operations", fmt.Sprintf("Operações: %d", data.OperationCount)),
		blankLine(),
		escpos.TextLine("session-cash-open", "Fundo de caixa: "+FormatCents(data.InitialCents)),
		escpos.TextLine("session-cash-moves", "Movimentos de caixa: "+FormatCents(data.CashMovements)),
		escpos.TextLine("session-cash-close", "Fecho de caixa: "+FormatCents(data.ClosingCents())),
	)

	if data.Notes != "" {
		parts = append(parts,
			blankLine(),
			escpos.BoldOn(),
			escpos.TextLine("session-notes-label", "Notas:"),
			escpos.BoldOff(),
			escpos.TextLine("session-notes", data.Notes),
		)
	}

	return escpos.Concat("session-summary", parts...)
}

// productsSection emits sold products grouped by zone. The sort is stable
// and collator based, so accented zone and product names order the way an
// operator expects, and a zone sub-header appears exactly once before the
// first product of each zone.
func (c *Composer) productsSection(products []model.ProductSale) []escpos.Sequence {
	parts := []escpos.Sequence{
		escpos.Align(escpos.AlignCenter),
		escpos.TextLine("session-products-title", productsTitle),
		escpos.Align(escpos.AlignLeft),
	}

	sorted := make([]model.ProductSale, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		if cmp := c.collator.CompareString(sorted[i].Zone, sorted[j].Zone); cmp != 0 {
			return cmp < 0
		}
		return c.collator.CompareString(sorted[i].Name, sorted[j].Name) < 0
	})

	currentZone := ""
	haveZone := false
	for _, p := range sorted {
		if !haveZone || c.collator.CompareString(p.Zone, currentZone) != 0 {
			currentZone = p.Zone
			haveZone = true
			parts = append(parts,
				escpos.BoldOn(),
				escpos.TextLine("session-zone", p.Zone),
				escpos.BoldOff(),
			)
		}
		parts = append(parts, escpos.TextLine("session-product",
			fmt.Sprintf("%d %s", p.Quantity, p.Name)))
	}

	parts = append(parts, blankLine())
	return parts
}

func (c *Composer) discountSection(discounted []model.DiscountSale) []escpos.Sequence {
	parts := []escpos.Sequence{
		escpos.Align(escpos.AlignCenter),
		escpos.TextLine("session-discount-title", discountTitle),
		escpos.Align(escpos.AlignLeft),
	}

	for _, d := range discounted {
		parts = append(parts, escpos.TextLine("session-discount",
			fmt.Sprintf("%d %s (-%d%%)", d.Quantity, d.Name, d.DiscountPct)))
	}

	parts = append(parts, blankLine())
	return parts
}

func (c *Composer) paymentsSection(payments []model.PaymentTotal) []escpos.Sequence {
	parts := []escpos.Sequence{
		escpos.Align(escpos.AlignCenter),
		escpos.TextLine("session-payments-title", paymentsTitle),
		escpos.Align(escpos.AlignLeft),
	}

	for _, p := range payments {
		parts = append(parts, escpos.TextLine("session-payment",
			fmt.Sprintf("%s: %s", PaymentMethodLabel(p.Method), FormatCents(p.AmountCents))))
	}

	parts = append(parts, blankLine())
	return parts
}

// PaymentMethodLabel translates a payment-method code into its printed
// label. Unknown codes pass through unchanged.
func PaymentMethodLabel(method string) string {
	switch method {
	case "cash":
		return "Dinheiro"
	case "card":
		return "Cartão"
	case "mbway":
		return "MBWay"
	default:
		return method
	}
}

// TestPage composes the diagnostic page operators print to verify a
// printer's configuration. Content is descriptive only.
func (c *Composer) TestPage(cfg model.ReceiptHeaderConfig, printType model.PrintType, openDrawer bool, details *model.PrinterDetails) escpos.Sequence {
	parts := []escpos.Sequence{
		escpos.Initialize(),
		escpos.SelectLatin1(),
		escpos.Align(escpos.AlignCenter),
		escpos.BoldOn(),
		escpos.TextLine("test-title", "Página de Teste"),
		escpos.BoldOff(),
		rule(),
		escpos.Align(escpos.AlignLeft),
		escpos.TextLine("test-timestamp", c.Now().Format(timeLayout)),
		blankLine(),
		escpos.TextLine("test-header-1", "Linha 1: "+orDash(cfg.FirstLine)),
		escpos.TextLine("test-header-2", "Linha 2: "+orDash(cfg.SecondLine)),
		escpos.TextLine("test-print-type", "Tipo de impressão: "+string(printType)),
		escpos.TextLine("test-drawer", "Abrir gaveta: "+simNao(openDrawer)),
	}

	if details != nil {
		parts = append(parts,
			blankLine(),
			escpos.BoldOn(),
			escpos.TextLine("test-printer-label", "Impressora"),
			escpos.BoldOff(),
			escpos.TextLine("test-printer-name", "Nome: "+orDash(details.Name)),
			escpos.TextLine("test-printer-driver", "Driver: "+orDash(details.Driver)),
			escpos.TextLine("test-printer-uri", "URI: "+orDash(details.URI)),
			escpos.TextLine("test-printer-port", "Porta: "+orDash(details.Port)),
			escpos.TextLine("test-printer-state", "Estado: "+orDash(details.State)),
			escpos.TextLine("test-printer-location", "Localização: "+orDash(details.Location)),
		)
	}

	return escpos.Concat("test-page", parts...)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func simNao(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
