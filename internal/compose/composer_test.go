package compose

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pos-print-service/internal/escpos"
	"pos-print-service/internal/model"
)

func fixedComposer() *Composer {
	c := NewComposer()
	c.Now = func() time.Time {
		return time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)
	}
	return c
}

func TestHeaderLayout(t *testing.T) {
	c := fixedComposer()

	data := c.Header(model.ReceiptHeaderConfig{
		FirstLine:  "Café Central",
		SecondLine: "Lisboa",
	}).Bytes()

	assert.True(t, bytes.HasPrefix(data, escpos.ESC_POS_COMMANDS.INITIALIZE))
	assert.True(t, bytes.Contains(data, escpos.ESC_POS_COMMANDS.SELECT_CHARSET_LATIN1))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Café Central")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Lisboa")))
	assert.True(t, bytes.HasSuffix(data, escpos.ESC_POS_COMMANDS.CUT_PARTIAL))
}

func TestHeaderSkipsEmptyLines(t *testing.T) {
	c := fixedComposer()

	data := c.Header(model.ReceiptHeaderConfig{SecondLine: "Lisboa"}).Bytes()

	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Lisboa")))
	// Still resets, rules and cuts even with one line missing.
	assert.True(t, bytes.HasSuffix(data, escpos.ESC_POS_COMMANDS.CUT_PARTIAL))
}

func TestItemTicket(t *testing.T) {
	c := fixedComposer()

	data := c.ItemTicket("Galão").Bytes()

	assert.True(t, bytes.Contains(data, escpos.ESC_POS_COMMANDS.TEXT_SIZE_WIDE))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("1 Galão")))
	assert.True(t, bytes.Contains(data, escpos.ESC_POS_COMMANDS.TEXT_SIZE_NORMAL))
}

func TestTotalsTicket(t *testing.T) {
	c := fixedComposer()

	items := []model.CartLine{
		{Name: "Coffee", Quantity: 2},
		{Name: "Cake", Quantity: 1},
	}
	data := c.TotalsTicket(items, 550).Bytes()

	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Pedido:")))
	// The recap keeps original quantities, not expanded unit lines.
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("2 Coffee")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("1 Cake")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Total: 5,50€")))
	assert.True(t, bytes.Contains(data, escpos.ESC_POS_COMMANDS.TEXT_UNDERLINE_ON))
	assert.True(t, bytes.Contains(data, escpos.ESC_POS_COMMANDS.TEXT_UNDERLINE_OFF))
}

func TestFooterTimestamp(t *testing.T) {
	c := fixedComposer()

	data := c.Footer().Bytes()
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("14/03/2025 18:30")))
}

func TestSessionSummaryZoneGrouping(t *testing.T) {
	c := fixedComposer()

	data := c.SessionSummary(model.SessionSummaryData{
		OpenedAt: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		ClosedAt: time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC),
		OpenedBy: "Ana",
		ClosedBy: "Rui",
		Products: []model.ProductSale{
			{Zone: "Cozinha", Name: "Bitoque", Quantity: 4},
			{Zone: "Bar", Name: "Imperial", Quantity: 10},
			{Zone: "Cozinha", Name: "Arroz de pato", Quantity: 2},
			{Zone: "Bar", Name: "Café", Quantity: 25},
		},
		Payments: []model.PaymentTotal{
			{Method: "cash", AmountCents: 5000},
			{Method: "card", AmountCents: 12000},
		},
		OperationCount: 41,
		InitialCents:   10000,
		CashMovements:  -500,
	}).Bytes()

	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Resumo da Sessão")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Abertura: 14/03/2025 09:00 (Ana)")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Fecho: 14/03/2025 18:00 (Rui)")))

	// One zone header per zone, zones and products in collated order.
	assert.Equal(t, 1, bytes.Count(data, escpos.EncodeLine("Bar")))
	assert.Equal(t, 1, bytes.Count(data, escpos.EncodeLine("Cozinha")))

	bar := bytes.Index(data, escpos.EncodeLine("Bar"))
	cozinha := bytes.Index(data, escpos.EncodeLine("Cozinha"))
	arroz := bytes.Index(data, escpos.EncodeLine("2 Arroz de pato"))
	bitoque := bytes.Index(data, escpos.EncodeLine("4 Bitoque"))
	assert.True(t, bar < cozinha)
	assert.True(t, cozinha < arroz)
	assert.True(t, arroz < bitoque)

	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Dinheiro: 50,00€")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Cartão: 120,00€")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Operações: 41")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Fundo de caixa: 100,00€")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Movimentos de caixa: -5,00€")))
	// 100.00 + 50.00 cash - 5.00 movements
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Fecho de caixa: 145,00€")))
}

func TestSessionSummaryDiscountsAndNotes(t *testing.T) {
	c := fixedComposer()

	data := c.SessionSummary(model.SessionSummaryData{
		Discounted: []model.DiscountSale{
			{Name: "Prato do dia", DiscountPct: 10, Quantity: 3},
		},
		Notes: "Falta trocar o rolo",
	}).Bytes()

	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Produtos com Desconto")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("3 Prato do dia (-10%)")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Notas:")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Falta trocar o rolo")))
}

func TestSessionSummaryWithoutDiscounts(t *testing.T) {
	c := fixedComposer()

	data := c.SessionSummary(model.SessionSummaryData{}).Bytes()
	assert.False(t, bytes.Contains(data, escpos.EncodeLine("Produtos com Desconto")))
	assert.False(t, bytes.Contains(data, escpos.EncodeLine("Notas:")))
}

func TestTestPage(t *testing.T) {
	c := fixedComposer()

	data := c.TestPage(
		model.ReceiptHeaderConfig{FirstLine: "Café Central"},
		model.PrintTypeBoth,
		true,
		&model.PrinterDetails{Name: "EPSON TM-T20", Driver: "escpos", State: "idle"},
	).Bytes()

	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Página de Teste")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Linha 1: Café Central")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Linha 2: -")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Tipo de impressão: both")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Abrir gaveta: Sim")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Nome: EPSON TM-T20")))
	assert.True(t, bytes.Contains(data, escpos.EncodeLine("Estado: idle")))
}

func TestPaymentMethodLabel(t *testing.T) {
	assert.Equal(t, "Dinheiro", PaymentMethodLabel("cash"))
	assert.Equal(t, "Cartão", PaymentMethodLabel("card"))
	assert.Equal(t, "MBWay", PaymentMethodLabel("mbway"))
	assert.Equal(t, "voucher", PaymentMethodLabel("voucher"))
}
