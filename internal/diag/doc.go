// Package diag defines the diagnostic model shared by the lexer, the settings
// validator and the driver.
//
// Findings never abort processing: producers emit them through a Reporter and
// keep going. BagReporter collects them into a Bag with a size limit; Render
// prints them for the CLI.
//
// Codes are grouped by range: 1xxx lexical, 2xxx settings, 4xxx I/O.
package diag
