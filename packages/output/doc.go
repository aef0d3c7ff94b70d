// Package output renders run results for humans and machines.
//
// Formatters:
//   - Console: colored pass/fail lines with failure context and notes
//   - JSON: the interchange report consumed by the report tooling
//   - JUnit: XML for CI systems
//
// JSON and JUnit formatters accumulate results and emit everything on Flush.
package output
