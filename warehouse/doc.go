// Package warehouse owns the shared inventory: the catalog of known item names
// and the ledger of quantities held for them.
//
// Invariants:
//   - catalog names are normalized (trimmed, lower-cased) and unique
//   - every ledger key is a catalog member and every quantity is > 0;
//     a missing ledger entry means zero stock
//   - a mutation is applied in memory only after its record was persisted
package warehouse
