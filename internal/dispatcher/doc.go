// Package dispatcher turns one command invocation into one text reply.
//
// Invariants:
//   - invocations are handled one at a time, including persistence and the
//     schema refresh that follows a catalog change
//   - a successful tambah or hapus always redeclares the command schemas with
//     the current catalog as the item choices; the outcome of that call is
//     reported on the Reply, never hidden
//
// Flow:
//
//	Invocation -> throttle -> type switch on commands.Command
//	  -> warehouse.Catalog / warehouse.Ledger -> [schema refresh] -> Reply
package dispatcher
