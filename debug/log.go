package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/xmlmap/encode"
	"github.com/signadot/xmlmap/ir"
)

type XML struct{ *ir.Node }

func (y XML) String() string {
	x := y.Node
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(x, buf, encode.EncodeWire(true)); err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", x)
	}
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			args[i] = XML{x}.String()
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
