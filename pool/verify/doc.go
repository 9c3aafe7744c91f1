// Package verify provides validation functions for pool ledgers.
//
// # Overview
//
// A pool keeps its bookkeeping in block headers stored inside the pool bytes. This
// package walks those headers over a raw byte slice and checks that they describe a
// well-formed ledger. It is used by tests and by the stress command to confirm that
// concurrent mutation left the ledger intact.
//
// Checks performed by Ledger:
//   - Every claimed block has Length <= Extent
//   - No block runs past the end of the pool
//   - The unclaimed tail header has Length 0
//   - Every byte of the unclaimed tail is zero
//
// # Quick Start
//
//	if err := verify.Ledger(data); err != nil {
//	    fmt.Printf("Validation failed: %v\n", err)
//	}
//
// # ValidationError
//
// Failures are returned as *ValidationError:
//
//	var verr *verify.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Printf("Type: %s\n", verr.Type)
//	    fmt.Printf("Offset: 0x%X\n", verr.Offset)
//	    fmt.Printf("Message: %s\n", verr.Message)
//	}
package verify
