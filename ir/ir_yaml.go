package ir

import (
	"github.com/goccy/go-yaml"
)

// MarshalYAML presents y as an ordered mapping so that goccy/go-yaml keeps
// attribute and child order.
func (y *Node) MarshalYAML() (any, error) {
	res := yaml.MapSlice{{Key: "name", Value: y.Name()}}
	if len(y.Attrs) != 0 {
		attrs := make(yaml.MapSlice, len(y.Attrs))
		for i, a := range y.Attrs {
			attrs[i] = yaml.MapItem{Key: a.Name, Value: a.Value}
		}
		res = append(res, yaml.MapItem{Key: "attrs", Value: attrs})
	}
	if y.Text != "" {
		res = append(res, yaml.MapItem{Key: "text", Value: y.Text})
	}
	if len(y.CData) != 0 {
		res = append(res, yaml.MapItem{Key: "cdata", Value: y.CData})
	}
	if len(y.Children) != 0 {
		res = append(res, yaml.MapItem{Key: "children", Value: y.Children})
	}
	return res, nil
}

func ToYAML(node *Node) ([]byte, error) {
	return yaml.Marshal(node)
}
