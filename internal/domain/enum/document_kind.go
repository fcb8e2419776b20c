package enum

// DocumentKind identifies the kind of document a print job carries. The wire
// values match what the print relay understands, including the Spanish names
// kept for compatibility with deployed relay agents.
type DocumentKind string

const (
	DocumentRaw        DocumentKind = "raw"        // pre-rendered text, print as-is
	DocumentPedido     DocumentKind = "pedido"     // full order receipt (legacy name)
	DocumentComanda    DocumentKind = "comanda"    // kitchen ticket
	DocumentAgregados  DocumentKind = "agregados"  // items added after the kitchen ticket went out
	DocumentEliminados DocumentKind = "eliminados" // items removed after the kitchen ticket went out
	DocumentDelivery   DocumentKind = "delivery"   // courier voucher
)

// Valid reports whether k is a kind the dispatcher and relay understand.
func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentRaw, DocumentPedido, DocumentComanda, DocumentAgregados, DocumentEliminados, DocumentDelivery:
		return true
	}
	return false
}

// PrintProfile names a group of printer targets serving one station.
type PrintProfile string

const (
	ProfileGeneral  PrintProfile = "general"
	ProfileDelivery PrintProfile = "delivery"
	ProfileCounter  PrintProfile = "counter"
	ProfileKitchen  PrintProfile = "kitchen"
)
