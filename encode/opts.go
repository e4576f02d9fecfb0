package encode

type EncodeOption func(*EncState)

func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// EncodeDecl emits an XML declaration before the document element.
func EncodeDecl(v bool) EncodeOption {
	return func(es *EncState) { es.decl = v }
}

// IsWire reports whether opts select compact output.
func IsWire(opts ...EncodeOption) bool {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.wire
}
