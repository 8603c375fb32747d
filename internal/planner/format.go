package planner

import (
	"fmt"
	"io"
)

// WritePlan prints a plan in the classic layout: a header with the starting
// experience followed by one "<quantity> <material> " line per step.
func WritePlan(w io.Writer, plan *Plan) error {
	if _, err := fmt.Fprintf(w, "\nStarting from %dxp, you will need:\n\n", plan.StartXP); err != nil {
		return err
	}
	for _, step := range plan.Steps {
		if _, err := fmt.Fprintf(w, "%d %s \n", step.Quantity, step.Material); err != nil {
			return err
		}
	}
	return nil
}
