package ir

import (
	json "github.com/goccy/go-json"
)

type irBase struct {
	Name     string   `json:"name"`
	Attrs    []Attr   `json:"attrs,omitempty"`
	Text     string   `json:"text,omitempty"`
	CData    []string `json:"cdata,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

func (a Attr) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{a.Name, a.Value})
}

func (a *Attr) UnmarshalJSON(d []byte) error {
	var pair [2]string
	if err := json.Unmarshal(d, &pair); err != nil {
		return err
	}
	a.Name, a.Value = pair[0], pair[1]
	return nil
}

func (y *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(&irBase{
		Name:     y.Name(),
		Attrs:    y.Attrs,
		Text:     y.Text,
		CData:    y.CData,
		Children: y.Children,
	})
}

func (y *Node) UnmarshalJSON(d []byte) error {
	tmp := &irBase{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	y.Prefix, y.Tag = SplitName(tmp.Name)
	y.Attrs = tmp.Attrs
	y.Text = tmp.Text
	y.CData = tmp.CData
	y.Children = nil
	y.Append(tmp.Children...)
	return nil
}

func ToJSON(node *Node) ([]byte, error) {
	return json.MarshalIndent(node, "", "  ")
}

func FromJSON(d []byte) (*Node, error) {
	res := &Node{}
	if err := json.Unmarshal(d, res); err != nil {
		return nil, err
	}
	return res, nil
}
