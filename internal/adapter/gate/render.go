package gate

import (
	"fmt"
	"strconv"
	"strings"

	"circuitdoc/internal/domain"
)

const missing = "?"

// Render substitutes the placeholders of template with operand values.
// Only the first occurrence of each placeholder is replaced; unknown
// placeholders are left as written.
func Render(template string, ops Operands) string {
	var sb strings.Builder
	seen := make(map[string]bool)
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			break
		}
		name := rest[open+1 : open+end]
		if strings.IndexByte(name, '{') >= 0 {
			sb.WriteString(rest[:open+1])
			rest = rest[open+1:]
			continue
		}
		value, ok := placeholder(name, ops)
		sb.WriteString(rest[:open])
		if ok && !seen[name] {
			seen[name] = true
			sb.WriteString(value)
		} else {
			sb.WriteString(rest[open : open+end+1])
		}
		rest = rest[open+end+1:]
	}
	sb.WriteString(rest)
	return sb.String()
}

func placeholder(name string, ops Operands) (string, bool) {
	switch name {
	case "qubit", "control", "qubit1":
		return qubitAt(ops.Slots, 0), true
	case "target", "qubit2":
		return qubitAt(ops.Slots, 1), true
	case "qubit3":
		return qubitAt(ops.Slots, 2), true
	case "theta":
		return paramAt(ops.Params, 0), true
	case "phi":
		return paramAt(ops.Params, 1), true
	case "lambda":
		return paramAt(ops.Params, 2), true
	}
	return "", false
}

func slotLabel(s Slot) string {
	if !s.Resolved {
		return missing
	}
	return strconv.Itoa(s.Index)
}

func qubitAt(slots []Slot, i int) string {
	if i < len(slots) {
		return "qubit " + slotLabel(slots[i])
	}
	return "qubit " + missing
}

func paramAt(params []string, i int) string {
	if i < len(params) && params[i] != "" {
		return params[i]
	}
	return missing
}

// Heading returns the level-3 heading naming the gate and its qubit slots.
// Unresolved slots are shown as "?" in their position.
func Heading(display string, slots []Slot) string {
	if len(slots) == 0 {
		return fmt.Sprintf("### %s Gate", display)
	}
	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = slotLabel(s)
	}
	return fmt.Sprintf("### %s Gate on %s", display, strings.Join(labels, ", "))
}

// Explain classifies a captured gate call and renders its explanation.
// It reports false when the mnemonic is not in the catalog.
func Explain(call domain.GateCall) (domain.GateInvocation, domain.Block, bool) {
	entry, ok := Lookup(call.Method)
	if !ok {
		return domain.GateInvocation{}, domain.Block{}, false
	}
	ops := Classify(entry.Arity, SplitArgs(call.RawArgs))
	inv := domain.GateInvocation{
		Name:       entry.Display,
		Qubits:     ops.Qubits(),
		Params:     ops.Params,
		Unresolved: ops.Unresolved(),
	}
	block := domain.Block{
		Heading:     Heading(entry.Display, ops.Slots),
		Explanation: Render(entry.Template, ops),
	}
	return inv, block, true
}
