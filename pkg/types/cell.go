package types

// CellInput references a previously created cell that this transaction
// consumes. Since is reserved for relative/absolute lock-time rules and is
// not interpreted by the type-lock verifier.
type CellInput struct {
	PreviousOutput Outpoint `json:"previous_output"`
	Since          uint64   `json:"since"`
}

// CellOutput is a cell produced by a transaction. Type is optional: a cell
// with no type script cannot hold an SpvInfo/SpvClient and is invisible to
// classification.
type CellOutput struct {
	Capacity uint64  `json:"capacity"`
	Lock     Script  `json:"lock"`
	Type     *Script `json:"type,omitempty"`
}

// HasType reports whether the cell carries a type script.
func (c CellOutput) HasType() bool {
	return c.Type != nil
}

// WitnessArgs carries the lock/input/output witness payloads attached to a
// transaction input. The type-lock verifier reads InputType (the
// SpvBootstrap payload on create) and OutputType (the SpvUpdate payload on
// update and reorg); it never reads Lock.
type WitnessArgs struct {
	Lock       []byte `json:"lock,omitempty"`
	InputType  []byte `json:"input_type,omitempty"`
	OutputType []byte `json:"output_type,omitempty"`
}
