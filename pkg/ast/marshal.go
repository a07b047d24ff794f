package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Marshal encodes n as a document node: its fields plus the "Type" discriminator.
func Marshal(n Node) ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	body, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", n.Kind(), err)
	}
	var b bytes.Buffer
	b.Grow(len(body) + len(n.Kind()) + 12)
	b.WriteString(`{"Type":`)
	kind, _ := json.Marshal(string(n.Kind()))
	b.Write(kind)
	if rest := bytes.TrimSpace(body[1:]); len(rest) > 1 {
		b.WriteByte(',')
		b.Write(rest)
	} else {
		b.WriteByte('}')
	}
	return b.Bytes(), nil
}

// MarshalIndent is Marshal with indentation, for files meant to be edited by hand.
func MarshalIndent(n Node, prefix, indent string) ([]byte, error) {
	raw, err := Marshal(n)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
