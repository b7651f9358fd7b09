// Package discord connects the dispatcher to Discord: it turns command
// definitions into slash command schemas, declares them, and answers
// interactions.
package discord
