package domain

import (
	"strconv"
	"strings"
	"time"
)

// CircuitDeclaration is the first `<name> = <Constructor>(<n>)` line of a source file.
type CircuitDeclaration struct {
	Name       string
	QubitCount int
}

// Known reports whether a declaration has been seen.
func (d CircuitDeclaration) Known() bool {
	return d.Name != ""
}

// GateCall is a raw `<circuit>.<method>(<args>)` line as captured by the scanner.
type GateCall struct {
	Line    int
	Method  string
	RawArgs string
}

type GateInvocation struct {
	Name       string   `json:"name" msgpack:"name"`
	Qubits     []int    `json:"qubits" msgpack:"qubits"`
	Params     []string `json:"params,omitempty" msgpack:"params,omitempty"`
	Unresolved []string `json:"unresolved,omitempty" msgpack:"unresolved,omitempty"`
}

// ParseResult is the structured description of a circuit.
type ParseResult struct {
	CircuitName string           `json:"circuitName" msgpack:"circuit_name"`
	QubitNum    int              `json:"qubitNum" msgpack:"qubit_num"`
	Gates       []GateInvocation `json:"gates" msgpack:"gates"`
}

// Block is one rendered gate explanation: a level-3 heading and a sentence.
type Block struct {
	Heading     string `json:"heading" msgpack:"heading"`
	Explanation string `json:"explanation" msgpack:"explanation"`
}

// Document is the ordered list of explanation blocks for a circuit.
type Document struct {
	Blocks []Block `json:"blocks" msgpack:"blocks"`
}

// Markdown renders each block as heading, sentence and a blank separator line.
func (d Document) Markdown() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		sb.WriteString(b.Heading)
		sb.WriteByte('\n')
		sb.WriteString(b.Explanation)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// QubitList joins qubit indices the way headings display them.
func QubitList(qubits []int) string {
	parts := make([]string, len(qubits))
	for i, q := range qubits {
		parts[i] = strconv.Itoa(q)
	}
	return strings.Join(parts, ", ")
}

// Record is a stored explanation of one source file.
type Record struct {
	Path        string      `json:"path" msgpack:"path"`
	Hash        string      `json:"hash" msgpack:"hash"`
	ModTime     int64       `json:"mod_time" msgpack:"mod_time"`
	Result      ParseResult `json:"result" msgpack:"result"`
	Document    Document    `json:"document" msgpack:"document"`
	ExplainedAt time.Time   `json:"explained_at" msgpack:"explained_at"`
}

// Explanation pairs the structured result with its rendered document.
type Explanation struct {
	Result   ParseResult
	Document Document
}
