package gate

import "sort"

// Arity decides how a gate's raw arguments split into parameters and qubits.
type Arity int

const (
	// QubitsOnly treats every argument as a qubit index.
	QubitsOnly Arity = iota
	// AngleThenQubit takes the first argument as the angle and the second as
	// the qubit. Further arguments are ignored.
	AngleThenQubit
	// AngleThenQubits takes the first argument as the angle, the rest as
	// control and target qubits.
	AngleThenQubits
	// ThreeAnglesThenQubit takes theta, phi and lambda, then the target qubit.
	ThreeAnglesThenQubit
	// AnglesThenQubit takes every argument but the last as a parameter.
	AnglesThenQubit
)

func (a Arity) String() string {
	switch a {
	case QubitsOnly:
		return "qubits"
	case AngleThenQubit:
		return "angle+qubit"
	case AngleThenQubits:
		return "angle+qubits"
	case ThreeAnglesThenQubit:
		return "3-angle+qubit"
	case AnglesThenQubit:
		return "n-angle+qubit"
	default:
		return "unknown"
	}
}

// Entry describes one gate mnemonic.
type Entry struct {
	Mnemonic string
	Display  string
	Template string
	Arity    Arity
}

var catalog = map[string]Entry{
	// single-qubit
	"h":   {Display: "Hadamard", Template: "Hadamard transforms {qubit} from a definite state (like |0⟩ or |1⟩) into a superposition of both."},
	"x":   {Display: "Pauli-X", Template: "Pauli-X flips the state of {qubit}, like a quantum NOT gate: |0⟩ becomes |1⟩ and vice versa."},
	"y":   {Display: "Pauli-Y", Template: "Pauli-Y flips {qubit} and also adds a phase of i to the |1⟩ component."},
	"z":   {Display: "Pauli-Z", Template: "Pauli-Z flips the phase of {qubit}'s |1⟩ component, changing it to -|1⟩."},
	"id":  {Display: "Identity", Template: "Identity gate leaves {qubit} unchanged, which is useful as a placeholder."},
	"s":   {Display: "S", Template: "S gate adds a 90° (π/2) phase to {qubit}'s |1⟩ state."},
	"sdg": {Display: "S†", Template: "S† (S-dagger) removes a 90° (π/2) phase from {qubit}'s |1⟩ state."},
	"t":   {Display: "T", Template: "T gate adds a 45° (π/4) phase to {qubit}'s |1⟩ state."},
	"tdg": {Display: "T†", Template: "T† (T-dagger) removes a 45° (π/4) phase from {qubit}'s |1⟩ state."},
	"sx":  {Display: "SX", Template: "SX applies the square root of Pauli-X to {qubit}, half of a bit flip."},

	// multi-qubit
	"cx":    {Display: "CNOT", Template: "CNOT flips the target {target} if the control {control} is in state |1⟩."},
	"cy":    {Display: "Controlled-Y", Template: "Controlled-Y applies Pauli-Y to the target {target} if the control {control} is |1⟩."},
	"cz":    {Display: "Controlled-Z", Template: "Controlled-Z flips the phase of the target {target} if the control {control} is |1⟩."},
	"ch":    {Display: "Controlled-H", Template: "Controlled-Hadamard puts the target {target} into superposition if the control {control} is |1⟩."},
	"ccx":   {Display: "Toffoli", Template: "Toffoli (CCX) flips the target {qubit3} only if **both** controls {qubit1} and {qubit2} are |1⟩."},
	"swap":  {Display: "SWAP", Template: "SWAP exchanges the quantum states between {qubit1} and {qubit2}."},
	"cswap": {Display: "Fredkin", Template: "Fredkin (CSWAP) exchanges {qubit2} and {qubit3} only if the control {qubit1} is |1⟩."},

	// rotations
	"rx":  {Display: "RX", Template: "RX rotates {qubit} around the X-axis by {theta}.", Arity: AngleThenQubit},
	"ry":  {Display: "RY", Template: "RY rotates {qubit} around the Y-axis by {theta}.", Arity: AngleThenQubit},
	"rz":  {Display: "RZ", Template: "RZ rotates {qubit} around the Z-axis by {theta}.", Arity: AngleThenQubit},
	"p":   {Display: "Phase", Template: "Phase gate adds a phase of {theta} to {qubit}'s |1⟩ state.", Arity: AngleThenQubit},
	"crx": {Display: "CRX", Template: "CRX rotates the target {target} around the X-axis by {theta} if the control {control} is |1⟩.", Arity: AngleThenQubits},
	"cry": {Display: "CRY", Template: "CRY rotates the target {target} around the Y-axis by {theta} if the control {control} is |1⟩.", Arity: AngleThenQubits},
	"crz": {Display: "CRZ", Template: "CRZ rotates the target {target} around the Z-axis by {theta} if the control {control} is |1⟩.", Arity: AngleThenQubits},

	// universal single-qubit
	"u":  {Display: "U", Template: "U rotates {qubit} with angles θ = {theta}, φ = {phi}, and λ = {lambda}.", Arity: ThreeAnglesThenQubit},
	"u3": {Display: "U3", Template: "U3 rotates {qubit} with angles θ = {theta}, φ = {phi}, and λ = {lambda}.", Arity: ThreeAnglesThenQubit},
	"u1": {Display: "U1", Template: "U1 applies a pure Z rotation (a phase shift) of {theta} to {qubit}.", Arity: AnglesThenQubit},
	"u2": {Display: "U2", Template: "U2 is a π/2 rotation around the Bloch sphere for {qubit}, with φ = {theta} and λ = {phi}.", Arity: AnglesThenQubit},

	"measure": {Display: "Measurement", Template: "Measurement collapses {qubit} into classical 0 or 1 based on probability."},
}

func init() {
	for k, e := range catalog {
		e.Mnemonic = k
		catalog[k] = e
	}
}

// Lookup returns the catalog entry for a mnemonic. Matching is exact.
func Lookup(mnemonic string) (Entry, bool) {
	e, ok := catalog[mnemonic]
	return e, ok
}

// Entries returns every catalog entry ordered by mnemonic.
func Entries() []Entry {
	entries := make([]Entry, 0, len(catalog))
	for _, e := range catalog {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Mnemonic < entries[j].Mnemonic
	})
	return entries
}
