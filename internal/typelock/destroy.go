package typelock

import "fmt"

// VerifyDestroy validates tear-down of a ring instance: exactly
// 1+clients_count own-type inputs, ascending-contiguous like Create's
// outputs, and zero own-type outputs. No field of any client or info cell
// is inspected; an accompanying lock governs whether the released
// capacity goes where it should.
func VerifyDestroy(cl Classification, clientsCount uint8) error {
	n := int(clientsCount)
	if len(cl.Inputs) != 1+n {
		return fmt.Errorf("%w: got %d own-type inputs, want %d", ErrDestroyNotEnoughCells, len(cl.Inputs), 1+n)
	}
	if err := requireContiguous(cl.Inputs, ErrDestroyShouldBeOrdered); err != nil {
		return err
	}
	if len(cl.Outputs) != 0 {
		return fmt.Errorf("%w: got %d own-type outputs, want 0", ErrDestroyOutputsNotEmpty, len(cl.Outputs))
	}
	return nil
}
