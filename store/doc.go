// Package store persists the two warehouse records as JSON files.
//
// Persistence model:
//   - The catalog is a JSON array of item names, the ledger a JSON object of
//     item name to quantity. Each record lives in its own file.
//   - A missing file loads as the empty record. A file that does not decode is
//     a load failure; no partial data is returned.
//   - Save replaces the whole file. The two records share no transaction.
package store
