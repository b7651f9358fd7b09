package commands

import (
	"github.com/invopop/jsonschema"
)

// Definition describes a command for the platform's schema registry.
type Definition struct {
	Kind        Kind
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

var descriptions = map[Kind]string{
	KindAddItem:       "Tambah item baru ke daftar master",
	KindRemoveItem:    "Hapus item dari daftar master",
	KindDeposit:       "Deposit item ke gudang",
	KindWithdraw:      "Withdraw item dari gudang",
	KindListInventory: "Tampilkan isi gudang",
	KindHelp:          "Tampilkan bantuan",
}

// Description returns the one-line summary of k.
func (k Kind) Description() string { return descriptions[k] }

// InputSchema returns the argument schema of k without catalog choices.
func (k Kind) InputSchema() *jsonschema.Schema {
	switch k {
	case KindAddItem, KindRemoveItem:
		return ItemInputSchema
	case KindDeposit, KindWithdraw:
		return StockInputSchema
	}
	return NoInputSchema
}

// Registry returns all command definitions. The item argument of deposit and
// withdraw is restricted to choices, which callers fill from the catalog.
func Registry(choices []string) []Definition {
	defs := make([]Definition, 0, len(kinds))
	for _, k := range kinds {
		schema := k.InputSchema()
		if k == KindDeposit || k == KindWithdraw {
			schema = WithChoices(schema, ItemProperty, choices)
		}
		defs = append(defs, Definition{
			Kind:        k,
			Name:        k.PlatformName(),
			Description: k.Description(),
			InputSchema: schema,
		})
	}
	return defs
}
