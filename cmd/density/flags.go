package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/terranova/density/pkg/domain"
)

// parseVec reads "x,y,z". Missing trailing components are zero.
func parseVec(s string) (domain.Vec3, error) {
	var out [3]float64
	parts := strings.Split(s, ",")
	if len(parts) > 3 {
		return domain.Vec3{}, fmt.Errorf("invalid point %q: want x,y,z", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.Vec3{}, fmt.Errorf("invalid point %q: %w", s, err)
		}
		out[i] = v
	}
	return domain.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// parseSize reads "sx,sy,sz".
func parseSize(s string) ([3]int, error) {
	var out [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("invalid size %q: want sx,sy,sz", s)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return out, fmt.Errorf("invalid size %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseInputs reads the --inputs JSON object. An empty string yields nil.
func parseInputs(s string) (*domain.ContextInputs, error) {
	if s == "" {
		return nil, nil
	}
	var v domain.InputValues
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("invalid --inputs: %w", err)
	}
	return v.Context(), nil
}
