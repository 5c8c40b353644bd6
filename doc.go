// Package kitty computes who owes whom in a group sharing costs. It turns a
// ledger of shared expenses into net balances per member and per subgroup,
// and reduces those balances to a short list of settling transfers.
//
// The pipeline is a chain of pure stages:
//   - Normalize canonicalizes raw names into Members (trimmed, case-folded).
//   - Cluster partitions members into explicit subgroups, or singletons for
//     members found in no subgroup.
//   - Allocate splits each expense between its participants, proportionally
//     to their weights, crediting the payer.
//   - Aggregate rolls member balances up to their subgroups.
//   - Minimize reduces balances to transfers, largest debtor paying largest
//     creditor first.
//
// Compute runs the whole pipeline over a Ledger and returns a Report. Inputs
// come from a JSONL ledger (DecodeLedger), an arbitrary JSON document read
// through JSONPath expressions (DecodeMapped), or tables (DecodeTables,
// DecodeMerged) such as spreadsheet sheets.
//
// Amounts are decimals kept at full precision, so that balances always sum
// to exactly zero. Rounding to the currency minor unit only happens when
// settling and when printing.
//
// This package serves as the foundational logic for the `kitty` command-line
// tool and its HTTP responder.
package kitty
