package gomap

import (
	"fmt"
	"strings"
)

// TagKey is the struct tag key read by the schema provider.
const TagKey = "xml"

// fieldTag is the interpretation of one field's struct tag.
type fieldTag struct {
	Name     string
	Omit     bool
	Required bool
	Attrs    bool
	CData    bool
}

// ParseStructTag parses a struct tag string and returns a map of key-value pairs.
// Handles comma-separated values: `xml:"key1=value1,key2=value2,flag"`
// Supports quoted values with spaces: `xml:"key='value with spaces'"`
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)

	if tag == "" {
		return result, nil
	}

	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false

	for i := 0; i < len(tag); i++ {
		char := tag[i]

		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case (char == ',' || char == ' ') && !inSingleQuote && !inDoubleQuote:
			part := strings.TrimSpace(current.String())
			if part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("invalid tag: unterminated quote in %q", tag)
	}

	part := strings.TrimSpace(current.String())
	if part != "" {
		parts = append(parts, part)
	}

	for _, part := range parts {
		// Check if it's a key=value pair or just a flag
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			value := strings.TrimSpace(part[idx+1:])
			if key == "" {
				return nil, fmt.Errorf("invalid tag: empty key in %q", part)
			}
			result[key] = unquoteValue(value)
		} else {
			result[part] = ""
		}
	}

	return result, nil
}

// unquoteValue removes surrounding single or double quotes from a value.
func unquoteValue(value string) string {
	if len(value) >= 2 {
		if (value[0] == '\'' && value[len(value)-1] == '\'') ||
			(value[0] == '"' && value[len(value)-1] == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

var tagFlags = map[string]bool{
	"required": true,
	"attrs":    true,
	"cdata":    true,
	"omit":     true,
	"-":        true,
}

// parseFieldTag reads `xml:"name,flag..."`. The name may be given bare, as
// encoding/xml does, or as field=name.
func parseFieldTag(tag string) (*fieldTag, error) {
	res := &fieldTag{}
	parsed, err := ParseStructTag(tag)
	if err != nil {
		return nil, err
	}
	for k, v := range parsed {
		switch {
		case k == "field":
			if res.Name != "" && res.Name != v {
				return nil, fmt.Errorf("invalid tag %q: more than one name", tag)
			}
			res.Name = v
		case tagFlags[k]:
			if v != "" {
				return nil, fmt.Errorf("invalid tag %q: flag %s takes no value", tag, k)
			}
			switch k {
			case "required":
				res.Required = true
			case "attrs":
				res.Attrs = true
			case "cdata":
				res.CData = true
			case "omit", "-":
				res.Omit = true
			}
		case v == "":
			if res.Name != "" && res.Name != k {
				return nil, fmt.Errorf("invalid tag %q: more than one name", tag)
			}
			res.Name = k
		default:
			return nil, fmt.Errorf("invalid tag %q: unknown key %s", tag, k)
		}
	}
	if res.Attrs && res.CData {
		return nil, fmt.Errorf("invalid tag %q: attrs and cdata are exclusive", tag)
	}
	return res, nil
}
