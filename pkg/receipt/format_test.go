package receipt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"zero", int64(0), "$0"},
		{"hundreds", int64(990), "$990"},
		{"thousands", int64(1000), "$1.000"},
		{"ten thousands", 15500, "$15.500"},
		{"millions", int64(1500000), "$1.500.000"},
		{"negative", int64(-2500), "-$2.500"},
		{"float input", 12990.0, "$12.990"},
		{"numeric string", "4500", "$4.500"},
		{"garbage string", "abc", "$0"},
		{"nil-ish type", struct{}{}, "$0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.in))
		})
	}
}

func sampleOrder() OrderSnapshot {
	return OrderSnapshot{
		ID:         42,
		Channel:    "counter",
		OccurredAt: "2026-03-14T18:30:00-03:00",
		Total:      15500,
	}
}

func TestKitchenTicket(t *testing.T) {
	f := NewFormatter("Mundo Waffles")
	o := sampleOrder()
	o.CustomerLabel = "Carla"
	items := []ItemSnapshot{
		{Name: "Waffle clasico con frutillas y extra de manjar", Quantity: 2, UnitPrice: 5500},
		{Name: "Jugo natural", Quantity: 1, UnitPrice: 2500, Modifiers: []ModifierSnapshot{{Label: "sin hielo"}}},
	}

	out := f.KitchenTicket(o, items)
	lines := strings.Split(out, "\n")

	assert.Contains(t, out, "=== MOSTRADOR ===")
	assert.Contains(t, out, "#  42  18:30")
	assert.Contains(t, out, "CLIENTE: Carla")

	// Names uppercased and capped at 35 characters.
	assert.Contains(t, out, "2x "+strings.ToUpper("Waffle clasico con frutillas y extra de manjar")[:35])
	assert.Contains(t, out, "   + SIN HIELO")

	// No price anywhere on a kitchen ticket.
	assert.NotContains(t, out, "$")

	// Every line fits the paper.
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), DefaultWidth, "line too wide: %q", line)
	}
}

func TestKitchenTicketDeliveryHeader(t *testing.T) {
	f := NewFormatter("Mundo Waffles")
	o := sampleOrder()
	o.Channel = "delivery"

	out := f.KitchenTicket(o, nil)
	assert.Contains(t, out, "=== DELIVERY ===")
	assert.NotContains(t, out, "MOSTRADOR")
}

func TestCashReceipt(t *testing.T) {
	f := NewFormatter("Mundo Waffles")
	o := sampleOrder()
	o.ReceiptNumber = "B-000042"
	items := []ItemSnapshot{
		{Name: "Waffle clasico", Quantity: 2, UnitPrice: 5500},
		{Name: "Jugo natural", Quantity: 1, UnitPrice: 4500, Modifiers: []ModifierSnapshot{{Label: "sin hielo", ExtraPrice: 0}}},
	}

	out := f.CashReceipt(o, items, nil)

	assert.Contains(t, out, "Mundo Waffles")
	assert.Contains(t, out, "Mostrador")
	assert.Contains(t, out, "Pedido #: 42")
	assert.Contains(t, out, "Fecha: 14/03/2026 18:30")
	assert.Contains(t, out, "Comprobante: B-000042")
	assert.Contains(t, out, "  x2 @ $5.500 = $11.000")
	assert.Contains(t, out, "    - sin hielo: $0")
	assert.Contains(t, out, "Gracias por su compra!")

	// Counter receipts have no shipping block.
	assert.NotContains(t, out, "Envio:")

	// TOTAL right-aligned at full width.
	var totalLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "TOTAL:") {
			totalLine = line
		}
	}
	require.NotEmpty(t, totalLine)
	assert.Equal(t, DefaultWidth, len(totalLine))
	assert.True(t, strings.HasSuffix(totalLine, "$15.500"))
}

func TestCashReceiptDeliveryShipping(t *testing.T) {
	f := NewFormatter("Mundo Waffles")
	o := sampleOrder()
	o.Channel = "delivery"
	o.Total = 12000
	o.ShippingCost = 2500

	out := f.CashReceipt(o, nil, &CustomerSnapshot{Name: "Pedro Soto"})

	assert.Contains(t, out, "Delivery")
	assert.Contains(t, out, "Cliente: Pedro Soto")
	assert.Contains(t, out, "Subtotal:")
	assert.Contains(t, out, "Envio:")
	assert.Contains(t, out, "$14.500")
}

func TestDeliveryVoucher(t *testing.T) {
	f := NewFormatter("Mundo Waffles")
	o := sampleOrder()
	o.Channel = "delivery"
	o.Total = 12000
	o.ShippingCost = 2500
	o.EstimatedTime = "45 min"
	o.Comment = "sin timbre, llamar"
	customer := &CustomerSnapshot{
		Name:    "Pedro Soto",
		Phone:   "+56 9 1234 5678",
		Address: "Av. Providencia 1234, depto 56, Providencia, Santiago",
	}
	items := []ItemSnapshot{{Name: "Waffle clasico", Quantity: 2, UnitPrice: 6000}}

	out := f.DeliveryVoucher(o, items, customer)

	assert.Contains(t, out, "COMPROBANTE DELIVERY")
	assert.Contains(t, out, "Pedido #:     42")
	assert.Contains(t, out, "Fecha:        14/03/2026")
	assert.Contains(t, out, "Tiempo est.:  45 min")
	assert.Contains(t, out, "Nombre: Pedro Soto")
	assert.Contains(t, out, "Fono:   +56 9 1234 5678")
	assert.Contains(t, out, "Nota:   sin timbre, llamar")
	assert.Contains(t, out, "DETALLE DE PRODUCTOS")
	assert.Contains(t, out, "2x Waffle clasico")
	assert.Contains(t, out, "   $6.000 c/u = $12.000")
	assert.Contains(t, out, "Gracias por su preferencia!")

	// Long address wraps onto a second indented line.
	assert.Contains(t, out, "Dir:    Av. Providencia 1234, depto 56, Pr")
	assert.Contains(t, out, "\n        ovidencia, Santiago")
}

func TestDeliveryVoucherMissingCustomerFields(t *testing.T) {
	f := NewFormatter("Mundo Waffles")
	o := sampleOrder()
	o.Channel = "delivery"

	out := f.DeliveryVoucher(o, nil, &CustomerSnapshot{})
	assert.Contains(t, out, "Nombre: Sin nombre")
	assert.Contains(t, out, "Fono:   Sin telefono")
	assert.Contains(t, out, "Dir:    Sin direccion")

	out = f.DeliveryVoucher(o, nil, nil)
	assert.Contains(t, out, "Cliente no registrado")
}

func TestDelta(t *testing.T) {
	f := NewFormatter("Mundo Waffles")
	items := []ItemSnapshot{
		{Name: "Waffle clasico", Quantity: 1},
		{Name: "Jugo natural", Quantity: 2},
	}

	out := f.Delta("AGREGADOS", 7, items)
	assert.Contains(t, out, "=== AGREGADOS ===")
	assert.Contains(t, out, "Pedido #7")
	assert.Contains(t, out, "1x WAFFLE CLASICO")
	assert.Contains(t, out, "2x JUGO NATURAL")
	assert.NotContains(t, out, "$")

	out = f.Delta("ELIMINADOS", 7, items)
	assert.Contains(t, out, "=== ELIMINADOS ===")
}

func TestTruncateCountsRunes(t *testing.T) {
	// The cut must never land inside a multibyte rune.
	name := strings.Repeat("a", 34) + "ñoquis"
	got := truncate(strings.ToUpper(name), 35)
	require.True(t, utf8.ValidString(got))
	assert.Equal(t, 35, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "Ñ"))

	assert.Equal(t, "ñoquis", truncate("ñoquis", 10))
}

func TestKitchenTicketAccentedName(t *testing.T) {
	f := NewFormatter("Mundo Waffles")
	items := []ItemSnapshot{
		{Name: strings.Repeat("a", 34) + "ñoquis", Quantity: 1},
	}

	out := f.KitchenTicket(sampleOrder(), items)
	require.True(t, utf8.ValidString(out))
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "1x ") {
			assert.Equal(t, 35, utf8.RuneCountInString(strings.TrimPrefix(line, "1x ")))
		}
	}
}

func TestCenterCountsRunes(t *testing.T) {
	f := NewFormatter("Cafetería Ñandú")

	// 15 runes centered in 42 leaves 13 leading spaces, regardless of
	// how many bytes the accented characters take.
	assert.Equal(t, strings.Repeat(" ", 13)+"Cafetería Ñandú", f.center(f.Business))
}

func TestAmountLineCountsRunes(t *testing.T) {
	f := NewFormatter("Mundo Waffles")

	line := f.amountLine("Envío:", "$2.500")
	assert.Equal(t, DefaultWidth, utf8.RuneCountInString(line))
}

func TestWrapAddressCountsRunes(t *testing.T) {
	addr := strings.Repeat("ñ", 40)
	lines := wrapAddress(addr)
	require.Len(t, lines, 2)
	assert.Equal(t, "Dir:    "+strings.Repeat("ñ", 34), lines[0])
	assert.Equal(t, "        "+strings.Repeat("ñ", 6), lines[1])
}
