package commands

import (
	"strings"
)

var helpLines = map[Kind]string{
	KindAddItem:       "/tambah item - Tambah item baru ke daftar master.",
	KindRemoveItem:    "/hapus item - Hapus item dari daftar master.",
	KindDeposit:       "/deposit item quantity - Deposit item ke gudang.",
	KindWithdraw:      "/withdraw item quantity - Withdraw item dari gudang.",
	KindListInventory: "/inventory - Tampilkan isi gudang.",
	KindHelp:          "/help - Tampilkan pesan bantuan.",
}

// HelpText renders the usage message listing every command.
func HelpText() string {
	var b strings.Builder
	b.WriteString("**Perintah Bot Gudang**\n")
	for _, k := range kinds {
		b.WriteString("• ")
		b.WriteString(helpLines[k])
		b.WriteString("\n")
	}
	return b.String()
}
