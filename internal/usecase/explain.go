package usecase

import (
	"circuitdoc/internal/adapter/gate"
	"circuitdoc/internal/domain"
	"circuitdoc/internal/port"
)

// ExplainUseCase extracts a circuit description from source text.
type ExplainUseCase struct {
	scanner port.Scanner
}

// NewExplainUseCase creates a new explain use case.
func NewExplainUseCase(scanner port.Scanner) *ExplainUseCase {
	return &ExplainUseCase{scanner: scanner}
}

// Explain scans source in a single pass and renders one block per recognized
// gate call. Calls whose mnemonic is not in the gate catalog are dropped.
func (u *ExplainUseCase) Explain(source string) domain.Explanation {
	decl, calls := u.scanner.Scan(source)

	result := domain.ParseResult{
		CircuitName: decl.Name,
		QubitNum:    decl.QubitCount,
		Gates:       []domain.GateInvocation{},
	}
	var doc domain.Document

	for _, call := range calls {
		inv, block, ok := gate.Explain(call)
		if !ok {
			continue
		}
		result.Gates = append(result.Gates, inv)
		doc.Blocks = append(doc.Blocks, block)
	}

	return domain.Explanation{Result: result, Document: doc}
}
