package fabricator

// Errors are raised only during fabrication; fabrication is all-or-nothing
// and no partial evaluator is ever returned. Their messages are part of the
// public contract: existing callers string-compare against them, so the
// text must never change.
var (
	// ErrEmpty means the input graph has no edges at all; there is
	// nothing to compile.
	ErrEmpty = &fabricationError{"no edges present, net invalid"}

	// ErrUnresolvable means a scheduling round made no progress: either a
	// required input id is absent from the declared input set, or the
	// graph contains a cycle through edges presented as ordinary
	// (non-recurrent).
	ErrUnresolvable = &fabricationError{"can't resolve dependencies, net invalid"}

	// ErrUnreachableOutput means the schedule terminated but a declared
	// output node was never produced by any stage.
	ErrUnreachableOutput = &fabricationError{"dependencies resolved but not all outputs computable, net invalid"}
)

type fabricationError struct{ message string }

func (e *fabricationError) Error() string { return e.message }
