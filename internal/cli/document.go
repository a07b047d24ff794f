package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReadDocument resolves a document argument. "-" reads stdin, text starting
// with '{' is taken as inline JSON, anything else is a file path.
// YAML files are converted to JSON.
func ReadDocument(arg string, stdin io.Reader) ([]byte, error) {
	switch {
	case arg == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return bytes.TrimSpace(data), nil
	case strings.HasPrefix(strings.TrimSpace(arg), "{"):
		return []byte(arg), nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", arg, err)
		}
		return json.Marshal(v)
	}
	return data, nil
}
