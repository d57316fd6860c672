package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/NilFoundation/energyctl/internal/abi"
	"github.com/NilFoundation/energyctl/internal/contracts"
	"github.com/NilFoundation/energyctl/internal/types"
	"github.com/fatih/color"
)

var labelColor = color.New(color.FgCyan)

// Outcome is the result of one dispatched command.
type Outcome struct {
	Descriptor contracts.Descriptor
	// TxHash is empty for queries.
	TxHash     string
	NewAddress *types.Address
	Values     []abi.Value
}

// Value renders the result alone: the new address for deploy, the decoded return values otherwise.
func (o *Outcome) Value() string {
	if o.NewAddress != nil {
		return o.NewAddress.String()
	}
	result := o.Descriptor.Result
	switch {
	case result.Empty() || (len(o.Values) == 0 && !result.Multi):
		return "()"
	case result.Multi:
		items := make([]string, len(o.Values))
		for i, v := range o.Values {
			items[i] = abi.Format(v)
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	return abi.Format(o.Values[0])
}

func (o *Outcome) label() string {
	if o.NewAddress != nil {
		return "new address"
	}
	return "Result"
}

func (o *Outcome) String() string {
	return o.label() + ": " + o.Value()
}

// Render writes the outcome line. In quiet mode only the value is printed.
func (o *Outcome) Render(w io.Writer, quiet bool) error {
	var err error
	if quiet {
		_, err = fmt.Fprintln(w, o.Value())
	} else {
		_, err = fmt.Fprintf(w, "%s: %s\n", labelColor.Sprint(o.label()), o.Value())
	}
	return err
}
