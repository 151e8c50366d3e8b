package gate

import (
	"math"
	"strconv"
	"strings"
)

// Arg is one comma-separated argument of a gate call.
type Arg struct {
	Text    string
	Value   float64
	Numeric bool
}

// Qubit returns the argument as a qubit index when it is a non-negative integer.
func (a Arg) Qubit() (int, bool) {
	if !a.Numeric || a.Value < 0 || a.Value > math.MaxInt32 || a.Value != math.Trunc(a.Value) {
		return 0, false
	}
	return int(a.Value), true
}

// SplitArgs splits raw argument text on commas and trims each piece. Empty
// pieces keep their position; a single trailing comma is ignored. Each piece
// is converted to a number when it parses as one.
func SplitArgs(raw string) []Arg {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, ",")
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var args []Arg
	for _, piece := range strings.Split(raw, ",") {
		arg := Arg{Text: strings.TrimSpace(piece)}
		if v, err := strconv.ParseFloat(arg.Text, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			arg.Value = v
			arg.Numeric = true
		}
		args = append(args, arg)
	}
	return args
}

// Slot is a qubit position of a gate call. Index is only meaningful when
// Resolved is set.
type Slot struct {
	Text     string
	Index    int
	Resolved bool
}

// Operands is the classified argument list of a gate call. Slots hold one
// entry per qubit argument in argument order, resolved or not.
type Operands struct {
	Slots  []Slot
	Params []string
}

// Qubits returns the resolved qubit indices in argument order.
func (o Operands) Qubits() []int {
	qubits := []int{}
	for _, s := range o.Slots {
		if s.Resolved {
			qubits = append(qubits, s.Index)
		}
	}
	return qubits
}

// Unresolved returns the text of qubit arguments that are not qubit indices.
// Empty arguments are left out.
func (o Operands) Unresolved() []string {
	var out []string
	for _, s := range o.Slots {
		if !s.Resolved && s.Text != "" {
			out = append(out, s.Text)
		}
	}
	return out
}

// Classify partitions args into parameters and qubit slots according to the
// arity rule.
func Classify(arity Arity, args []Arg) Operands {
	var params, qubits []Arg
	switch arity {
	case ThreeAnglesThenQubit:
		n := min(3, len(args))
		params, qubits = args[:n], args[n:]
		if len(qubits) > 1 {
			qubits = qubits[:1]
		}
	case AnglesThenQubit:
		if len(args) > 0 {
			params, qubits = args[:len(args)-1], args[len(args)-1:]
		}
	case AngleThenQubit:
		if len(args) > 0 {
			params, qubits = args[:1], args[1:]
		}
		if len(qubits) > 1 {
			qubits = qubits[:1]
		}
	case AngleThenQubits:
		if len(args) > 0 {
			params, qubits = args[:1], args[1:]
		}
	default:
		qubits = args
	}

	var ops Operands
	for _, p := range params {
		ops.Params = append(ops.Params, p.Text)
	}
	for _, q := range qubits {
		idx, ok := q.Qubit()
		ops.Slots = append(ops.Slots, Slot{Text: q.Text, Index: idx, Resolved: ok})
	}
	return ops
}
