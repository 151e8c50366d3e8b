package port

import "circuitdoc/internal/domain"

// Scanner recognizes the circuit declaration and gate calls in source text.
type Scanner interface {
	Scan(text string) (domain.CircuitDeclaration, []domain.GateCall)
}

// Explainer turns source text into a structured result and its document.
type Explainer interface {
	Explain(source string) domain.Explanation
}
