package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultWidth is the character width of a standard 80mm thermal printer.
const DefaultWidth = 42

// kitchenNameWidth bounds product names on kitchen tickets so that quantity
// plus name always fits on one line.
const kitchenNameWidth = 35

// Price formats an amount as integer pesos with a dot thousands separator,
// e.g. 1500000 -> "$1.500.000". Anything that cannot be read as a number
// formats as "$0"; a ticket with a garbled price still prints.
func Price(v interface{}) string {
	var n int64
	switch x := v.(type) {
	case int64:
		n = x
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case uint:
		n = int64(x)
	case float64:
		n = int64(x)
	case float32:
		n = int64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return "$0"
		}
		n = int64(f)
	default:
		return "$0"
	}

	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String()
}

// Formatter renders the printable documents. It is pure: every method turns
// snapshots into fixed-width text and nothing else. The same formatter runs
// inside the POS server and inside the relay agent.
type Formatter struct {
	Business string
	Width    int
}

// NewFormatter returns a formatter for the given business name at the
// standard thermal width.
func NewFormatter(business string) *Formatter {
	return &Formatter{Business: business, Width: DefaultWidth}
}

func (f *Formatter) width() int {
	if f.Width <= 0 {
		return DefaultWidth
	}
	return f.Width
}

// Width math counts runes, not bytes. Names and addresses carry accented
// characters and a byte slice can land mid-rune.
func (f *Formatter) center(s string) string {
	w := f.width()
	n := utf8.RuneCountInString(s)
	if n >= w {
		return truncate(s, w)
	}
	return strings.Repeat(" ", (w-n)/2) + s
}

func (f *Formatter) rule(ch byte) string {
	return strings.Repeat(string(ch), f.width())
}

// amountLine right-aligns a money value after its label.
func (f *Formatter) amountLine(label, amount string) string {
	pad := f.width() - utf8.RuneCountInString(label) - utf8.RuneCountInString(amount)
	if pad < 1 {
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + amount
}

func channelTitle(channel string) string {
	if channel == "delivery" {
		return "DELIVERY"
	}
	return "MOSTRADOR"
}

func parseTimestamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func formatDateTime(s string) string {
	if t, ok := parseTimestamp(s); ok {
		return t.Format("02/01/2006 15:04")
	}
	return s
}

func formatClock(s string) string {
	if t, ok := parseTimestamp(s); ok {
		return t.Format("15:04")
	}
	return ""
}

// KitchenTicket renders the compact comanda sent to the kitchen when an order
// is committed. It spends as little paper as possible: no separators, names
// uppercased and capped so quantity and name share one line.
func (f *Formatter) KitchenTicket(o OrderSnapshot, items []ItemSnapshot) string {
	lines := []string{""}
	lines = append(lines, f.center(fmt.Sprintf("=== %s ===", channelTitle(o.Channel))))
	lines = append(lines, fmt.Sprintf("#%4d  %s", o.ID, formatClock(o.OccurredAt)))
	if o.CustomerLabel != "" {
		lines = append(lines, "CLIENTE: "+truncate(o.CustomerLabel, 20))
	}
	lines = append(lines, "")
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%dx %s", it.Quantity, kitchenName(it.Name)))
		for _, m := range it.Modifiers {
			lines = append(lines, "   + "+truncate(strings.ToUpper(m.Label), kitchenNameWidth))
		}
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// CashReceipt renders the customer-facing receipt printed when payment is
// recorded. Mixed-case names, unit-price breakdowns, full separators.
func (f *Formatter) CashReceipt(o OrderSnapshot, items []ItemSnapshot, customer *CustomerSnapshot) string {
	lines := []string{
		f.center(f.Business),
		f.center(title(o.Channel)),
		f.rule('='),
		"",
		fmt.Sprintf("Pedido #: %d", o.ID),
		fmt.Sprintf("Fecha: %s", formatDateTime(o.OccurredAt)),
	}
	if o.ReceiptNumber != "" {
		lines = append(lines, fmt.Sprintf("Comprobante: %s", o.ReceiptNumber))
	}
	if o.CustomerLabel != "" {
		lines = append(lines, fmt.Sprintf("Cliente: %s", o.CustomerLabel))
	}
	if customer != nil && customer.Name != "" {
		lines = append(lines, fmt.Sprintf("Cliente: %s", customer.Name))
	}
	lines = append(lines, "", f.rule('='), "", "ITEMS:", "")

	for _, it := range items {
		lines = append(lines, truncate(it.Name, 30))
		lines = append(lines, fmt.Sprintf("  x%d @ %s = %s",
			it.Quantity, Price(it.UnitPrice), Price(it.Subtotal())))
		for _, m := range it.Modifiers {
			lines = append(lines, fmt.Sprintf("    - %s: %s", m.Label, Price(m.ExtraPrice)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, f.rule('='), "")
	if o.Channel == "delivery" {
		lines = append(lines,
			f.amountLine("Subtotal:", Price(o.Total)),
			f.amountLine("Envio:", Price(o.ShippingCost)),
		)
	}
	lines = append(lines, f.rule('-'))
	lines = append(lines, f.amountLine("TOTAL:", Price(o.Total+o.ShippingCost)))
	lines = append(lines, "", "")
	lines = append(lines, f.center("Gracias por su compra!"), "", "")
	return strings.Join(lines, "\n")
}

// DeliveryVoucher renders the courier voucher printed when a delivery order
// is dispatched. The customer block is the part the courier actually reads.
func (f *Formatter) DeliveryVoucher(o OrderSnapshot, items []ItemSnapshot, customer *CustomerSnapshot) string {
	lines := []string{""}
	lines = append(lines, f.center(f.Business))
	lines = append(lines, f.center(strings.Repeat("=", 20)))
	lines = append(lines, f.center("COMPROBANTE DELIVERY"), "")

	lines = append(lines, fmt.Sprintf("Pedido #:     %d", o.ID))
	if t, ok := parseTimestamp(o.OccurredAt); ok {
		lines = append(lines, fmt.Sprintf("Fecha:        %s", t.Format("02/01/2006")))
		lines = append(lines, fmt.Sprintf("Hora:         %s", t.Format("15:04")))
	}
	if o.EstimatedTime != "" {
		lines = append(lines, fmt.Sprintf("Tiempo est.:  %s", o.EstimatedTime))
	}
	lines = append(lines, "")

	lines = append(lines, f.rule('='), "CLIENTE", f.rule('='))
	if customer != nil {
		lines = append(lines, "Nombre: "+truncate(orDefault(customer.Name, "Sin nombre"), 34))
		lines = append(lines, "Fono:   "+orDefault(customer.Phone, "Sin telefono"))
		lines = append(lines, wrapAddress(orDefault(customer.Address, "Sin direccion"))...)
	} else {
		lines = append(lines, "Cliente no registrado")
	}
	if o.Comment != "" {
		lines = append(lines, "Nota:   "+truncate(o.Comment, 34))
	}
	lines = append(lines, "")

	lines = append(lines, f.rule('='), "DETALLE DE PRODUCTOS", f.rule('='))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%dx %s", it.Quantity, truncate(it.Name, 28)))
		lines = append(lines, fmt.Sprintf("   %s c/u = %s", Price(it.UnitPrice), Price(it.Subtotal())))
	}
	lines = append(lines, "", f.rule('='))

	lines = append(lines, f.amountLine("Subtotal:", Price(o.Total)))
	lines = append(lines, f.amountLine("Envio:", Price(o.ShippingCost)))
	lines = append(lines, f.rule('='))
	lines = append(lines, f.amountLine("TOTAL:", Price(o.Total+o.ShippingCost)))
	lines = append(lines, "")
	lines = append(lines, f.center("Gracias por su preferencia!"), "", "")
	return strings.Join(lines, "\n")
}

// Delta renders the agregados/eliminados tickets produced when an already
// committed order is edited: marker line, order id, the changed items, and a
// blank trailer. These must be visually distinct from the original comanda.
func (f *Formatter) Delta(marker string, orderID uint, items []ItemSnapshot) string {
	lines := []string{""}
	lines = append(lines, f.center(fmt.Sprintf("=== %s ===", strings.ToUpper(marker))))
	lines = append(lines, fmt.Sprintf("Pedido #%d", orderID))
	lines = append(lines, "")
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%dx %s", it.Quantity, kitchenName(it.Name)))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func kitchenName(name string) string {
	return truncate(strings.ToUpper(name), kitchenNameWidth)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func title(channel string) string {
	if channel == "delivery" {
		return "Delivery"
	}
	return "Mostrador"
}

// wrapAddress splits a long address over two indented lines.
func wrapAddress(addr string) []string {
	const line = 34
	runes := []rune(addr)
	if len(runes) <= line {
		return []string{"Dir:    " + addr}
	}
	rest := runes[line:]
	if len(rest) > line {
		rest = rest[:line]
	}
	return []string{"Dir:    " + string(runes[:line]), "        " + string(rest)}
}
