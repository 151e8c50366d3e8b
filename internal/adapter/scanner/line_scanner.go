package scanner

import (
	"regexp"
	"strconv"
	"strings"

	"circuitdoc/internal/domain"
)

// DefaultConstructor is the keyword that declares a circuit.
const DefaultConstructor = "QuantumCircuit"

// LineScanner recognizes a circuit declaration and the gate calls made on it,
// one line at a time. It never fails on unrecognized input.
type LineScanner struct {
	constructor string
	declRe      *regexp.Regexp
}

func NewLineScanner(constructor string) *LineScanner {
	if constructor == "" {
		constructor = DefaultConstructor
	}
	return &LineScanner{
		constructor: constructor,
		declRe:      regexp.MustCompile(`(\w+)\s*=\s*` + regexp.QuoteMeta(constructor) + `\((\d+)\)`),
	}
}

// Constructor returns the declaration keyword this scanner matches.
func (s *LineScanner) Constructor() string {
	return s.constructor
}

// Scan walks text line by line. The first declaration fixes the circuit name
// and qubit count; later declaration lines are consumed without rebinding.
// Gate calls are only recognized after a declaration.
func (s *LineScanner) Scan(text string) (domain.CircuitDeclaration, []domain.GateCall) {
	var decl domain.CircuitDeclaration
	var gateRe *regexp.Regexp
	calls := []domain.GateCall{}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := s.declRe.FindStringSubmatch(line); m != nil {
			if !decl.Known() {
				n, err := strconv.Atoi(m[2])
				if err != nil {
					continue
				}
				decl = domain.CircuitDeclaration{Name: m[1], QubitCount: n}
				gateRe = gatePattern(decl.Name)
			}
			continue
		}

		if gateRe == nil {
			continue
		}
		if m := gateRe.FindStringSubmatch(line); m != nil {
			calls = append(calls, domain.GateCall{
				Line:    i + 1,
				Method:  m[1],
				RawArgs: m[2],
			})
		}
	}

	return decl, calls
}

// gatePattern matches `<name>.<method>(<args>)` at the start of a line. The
// argument capture stops at the first closing parenthesis.
func gatePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `\.([a-zA-Z_][a-zA-Z0-9_]*)\((.*?)\)`)
}
