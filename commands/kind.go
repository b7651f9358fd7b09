package commands

// Kind identifies one of the bot commands.
type Kind int

const (
	KindAddItem Kind = iota + 1
	KindRemoveItem
	KindDeposit
	KindWithdraw
	KindListInventory
	KindHelp
)

var kinds = []Kind{KindAddItem, KindRemoveItem, KindDeposit, KindWithdraw, KindListInventory, KindHelp}

// Kinds returns every command kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// String returns the stable identifier used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindAddItem:
		return "add-item"
	case KindRemoveItem:
		return "remove-item"
	case KindDeposit:
		return "deposit"
	case KindWithdraw:
		return "withdraw"
	case KindListInventory:
		return "list-inventory"
	case KindHelp:
		return "help"
	}
	return "unknown"
}

// PlatformName is the slash command name users type.
func (k Kind) PlatformName() string {
	switch k {
	case KindAddItem:
		return "tambah"
	case KindRemoveItem:
		return "hapus"
	case KindDeposit:
		return "deposit"
	case KindWithdraw:
		return "withdraw"
	case KindListInventory:
		return "inventory"
	case KindHelp:
		return "help"
	}
	return ""
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k >= KindAddItem && k <= KindHelp }

// LookupPlatformName maps a slash command name back to its kind.
func LookupPlatformName(name string) (Kind, bool) {
	for _, k := range kinds {
		if k.PlatformName() == name {
			return k, true
		}
	}
	return 0, false
}
