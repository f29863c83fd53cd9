// Package astraaudit provides the command-line interface for the
// astra-audit tool. It configures subcommands (audit, baseline, rules,
// history, etc.), parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/ranga291257/astra/cmd/astraaudit"
//	func main() { astraaudit.Execute() }
package astraaudit
