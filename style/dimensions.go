package style

import (
	"slices"

	"blox/common"
)

// Dimensions lists device, orientation and pseudo names known to the host.
// Empty list leaves the dimension unrestricted.
type Dimensions struct {
	Devices      []string
	Orientations []string
	Pseudos      []string
}

// Validate checks that every component of ctx is known.
func (d Dimensions) Validate(ctx Context) common.Validation[Context] {
	switch {
	case ctx.Device == "" || ctx.Orientation == "" || ctx.Pseudo == "":
		return common.Invalid[Context]("incomplete style context %q", ctx)
	case len(d.Devices) > 0 && !slices.Contains(d.Devices, ctx.Device):
		return common.Invalid[Context]("unknown device %q", ctx.Device)
	case len(d.Orientations) > 0 && !slices.Contains(d.Orientations, ctx.Orientation):
		return common.Invalid[Context]("unknown orientation %q", ctx.Orientation)
	case len(d.Pseudos) > 0 && !slices.Contains(d.Pseudos, ctx.Pseudo):
		return common.Invalid[Context]("unknown pseudo state %q", ctx.Pseudo)
	}
	return common.Valid(ctx)
}
