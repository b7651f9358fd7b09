// Package commands defines the closed set of bot commands.
//
// Includes:
//   - Kind: the six command kinds and their platform names.
//   - Command: one concrete type per kind carrying its typed arguments.
//   - Definition: name, description and JSON Schema of the arguments,
//     derived from Go structs with GenerateSchema[T]().
//   - Parse: decode raw JSON arguments into a Command.
package commands
