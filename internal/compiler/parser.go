package compiler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/schema"
)

// DefaultMaxDepth bounds node nesting in a document.
const DefaultMaxDepth = 512

// Parser is responsible for converting raw bytes into a node tree.
type Parser struct {
	maxDepth int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the nesting limit. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes a single node document.
func Parse(data []byte) (ast.Node, error) {
	return NewParser().Parse(data)
}

// Parse decodes a single node document.
func (p *Parser) Parse(data []byte) (ast.Node, error) {
	raw, err := decodeJSON(data, p.maxDepth)
	if err != nil {
		return nil, err
	}
	return p.ParseValue(raw)
}

// ParseValue builds a node from an already decoded JSON value.
func (p *Parser) ParseValue(raw any) (ast.Node, error) {
	return p.node(raw, "$", 1)
}

// ParseDocument accepts a bare node or one of the editor envelopes:
// a world structure ({"Density": node}) or a biome ({"Terrain": {"Density": node}}).
func (p *Parser) ParseDocument(data []byte) (ast.Node, error) {
	raw, err := decodeJSON(data, p.maxDepth)
	if err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, mismatch("$", "expected object, got %s", describe(raw))
	}
	if _, ok := obj["Type"]; ok {
		return p.node(obj, "$", 1)
	}
	if root, ok := obj["Density"]; ok {
		return p.node(root, "$.Density", 1)
	}
	if terrain, ok := obj["Terrain"].(map[string]any); ok {
		if root, ok := terrain["Density"]; ok {
			return p.node(root, "$.Terrain.Density", 1)
		}
	}
	return nil, &domain.SchemaError{Kind: domain.SchemaNoDensity, Path: "$", Detail: "expected a node, a Density field or Terrain.Density"}
}

func decodeJSON(data []byte, maxDepth int) (any, error) {
	if err := checkNesting(data, maxNesting(maxDepth)); err != nil {
		return nil, err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		kind := domain.SchemaSyntax
		if strings.Contains(err.Error(), "exceeded max depth") {
			kind = domain.SchemaTooDeep
		}
		return nil, &domain.SchemaError{Kind: kind, Path: "$", Detail: err.Error()}
	}
	return raw, nil
}

// maxNesting is the JSON container nesting allowed for a node depth limit.
// One node level costs at most three containers: a Switch case list, the
// case object and the node object.
func maxNesting(maxDepth int) int {
	return 3*maxDepth + 8
}

// checkNesting rejects documents nested deeper than limit before they are
// decoded. Syntax errors are left to the decoder, which reports them with offsets.
func checkNesting(data []byte, limit int) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		d, ok := tok.(json.Delim)
		if !ok {
			continue
		}
		switch d {
		case '{', '[':
			depth++
			if depth > limit {
				return &domain.SchemaError{
					Kind:   domain.SchemaTooDeep,
					Path:   "$",
					Detail: fmt.Sprintf("JSON nesting exceeds %d", limit),
				}
			}
		default:
			depth--
		}
	}
}

// located carries a nested raw value through mapstructure so the decode hook
// knows where it sits in the document.
type located struct {
	path  string
	raw   any
	depth int
}

func (p *Parser) node(raw any, path string, depth int) (ast.Node, error) {
	if depth > p.maxDepth {
		return nil, &domain.SchemaError{
			Kind:   domain.SchemaTooDeep,
			Path:   path,
			Detail: fmt.Sprintf("nesting exceeds %d", p.maxDepth),
		}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, mismatch(path, "expected node object, got %s", describe(raw))
	}
	typ, ok := obj["Type"].(string)
	if !ok {
		return nil, mismatch(path+".Type", "expected string discriminator, got %s", describe(obj["Type"]))
	}
	kind := ast.Kind(typ)
	n, ok := ast.New(kind)
	if !ok {
		return nil, &domain.SchemaError{Kind: domain.SchemaUnknownType, Path: path, Detail: fmt.Sprintf("%q", typ)}
	}

	sh := shapeOf(kind)
	fields := make(map[string]any, len(obj))
	for key, value := range obj {
		if _, known := sh.fields[key]; known && value != nil {
			fields[key] = value
		}
	}
	if err := schema.Validate(sh.schema, fields); err != nil {
		return nil, fieldError(path, err)
	}

	for key, value := range fields {
		switch sh.fields[key] {
		case fieldInputs, fieldCases:
			items := value.([]any)
			wrapped := make([]any, len(items))
			for i, item := range items {
				wrapped[i] = located{path: fmt.Sprintf("%s.%s[%d]", path, key, i), raw: item, depth: depth}
			}
			fields[key] = wrapped
		case fieldScalar:
		default:
			fields[key] = located{path: path + "." + key, raw: value, depth: depth}
		}
	}

	var hookErr error
	hook := mapstructure.DecodeHookFuncType(func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		loc, ok := data.(located)
		if !ok {
			return data, nil
		}
		out, err := p.nested(loc, to)
		if err != nil && hookErr == nil {
			hookErr = err
		}
		return out, err
	})
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		DecodeHook: hook,
		Result:     n,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder for %s: %w", kind, err)
	}
	if err := dec.Decode(fields); err != nil {
		if hookErr != nil {
			return nil, hookErr
		}
		return nil, mismatch(path, "%v", err)
	}
	return n, nil
}

func (p *Parser) nested(loc located, to reflect.Type) (any, error) {
	switch to {
	case inputType:
		return p.input(loc.raw, loc.path, loc.depth)
	case curveType:
		return parseCurve(loc.raw, loc.path)
	case positionsType:
		return parsePositions(loc.raw, loc.path)
	case vectorType:
		return p.vector(loc.raw, loc.path, loc.depth)
	case caseType:
		return p.switchCase(loc.raw, loc.path, loc.depth)
	}
	return nil, mismatch(loc.path, "unexpected target %s", to)
}

func (p *Parser) input(raw any, path string, depth int) (ast.Input, error) {
	switch v := raw.(type) {
	case nil:
		return ast.Input{}, nil
	case float64:
		return ast.Lit(v), nil
	case map[string]any:
		n, err := p.node(v, path, depth+1)
		if err != nil {
			return ast.Input{}, err
		}
		return ast.Of(n), nil
	default:
		return ast.Input{}, mismatch(path, "expected number or node, got %s", describe(raw))
	}
}

func (p *Parser) switchCase(raw any, path string, depth int) (ast.SwitchCase, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return ast.SwitchCase{}, mismatch(path, "expected switch case object, got %s", describe(raw))
	}
	var c ast.SwitchCase
	switch state := obj["CaseState"].(type) {
	case nil:
	case string:
		c.CaseState = state
	default:
		return c, mismatch(path+".CaseState", "expected string, got %s", describe(state))
	}
	in, err := p.input(obj["Density"], path+".Density", depth)
	if err != nil {
		return c, err
	}
	c.Density = in
	return c, nil
}

func (p *Parser) vector(raw any, path string, depth int) (*ast.Vector, error) {
	obj := raw.(map[string]any)
	typ, _ := obj["Type"].(string)
	switch typ {
	case "":
		v, err := parseVec(obj, path)
		return &ast.Vector{Value: v}, err
	case ast.VectorConstant:
		value, ok := obj["Value"].(map[string]any)
		if !ok {
			return nil, mismatch(path+".Value", "expected vector object, got %s", describe(obj["Value"]))
		}
		v, err := parseVec(value, path+".Value")
		return &ast.Vector{Provider: ast.VectorConstant, Value: v}, err
	case ast.VectorDensityGradient:
		in, err := p.input(obj["Density"], path+".Density", depth)
		if err != nil {
			return nil, err
		}
		out := &ast.Vector{Provider: ast.VectorDensityGradient, Density: in}
		if d, ok := obj["SampleDistance"]; ok && d != nil {
			f, ok := d.(float64)
			if !ok {
				return nil, mismatch(path+".SampleDistance", "expected number, got %s", describe(d))
			}
			out.SampleDistance = &f
		}
		return out, nil
	}
	return nil, &domain.SchemaError{Kind: domain.SchemaInvalidValue, Path: path + ".Type", Detail: fmt.Sprintf("unknown vector provider %q", typ)}
}

func parseVec(obj map[string]any, path string) (ast.Vec, error) {
	var v ast.Vec
	for _, c := range []struct {
		key string
		dst *float64
	}{{"X", &v.X}, {"Y", &v.Y}, {"Z", &v.Z}} {
		raw, ok := obj[c.key]
		if !ok || raw == nil {
			continue
		}
		f, ok := raw.(float64)
		if !ok {
			return v, mismatch(path+"."+c.key, "expected number, got %s", describe(raw))
		}
		*c.dst = f
	}
	return v, nil
}

func parseCurve(raw any, path string) (*ast.Curve, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil, &domain.SchemaError{Kind: domain.SchemaInvalidValue, Path: path, Detail: "empty curve name"}
		}
		return &ast.Curve{Name: v}, nil
	case float64:
		return &ast.Curve{Constant: &v}, nil
	case []any:
		points, err := parsePairs(v, path)
		return &ast.Curve{Points: points}, err
	case map[string]any:
		typ, _ := v["Type"].(string)
		switch typ {
		case "Constant":
			f, ok := v["Value"].(float64)
			if !ok {
				return nil, mismatch(path+".Value", "expected number, got %s", describe(v["Value"]))
			}
			return &ast.Curve{Constant: &f}, nil
		case "", "Manual", "Linear", "Smooth":
			items, ok := v["Points"].([]any)
			if !ok && v["Points"] != nil {
				return nil, mismatch(path+".Points", "expected array, got %s", describe(v["Points"]))
			}
			points, err := parsePairs(items, path+".Points")
			return &ast.Curve{Points: points, Smooth: typ == "Smooth"}, err
		}
		return nil, &domain.SchemaError{Kind: domain.SchemaInvalidValue, Path: path + ".Type", Detail: fmt.Sprintf("unknown curve type %q", typ)}
	}
	return nil, mismatch(path, "expected curve, got %s", describe(raw))
}

func parsePairs(items []any, path string) ([][2]float64, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make([][2]float64, len(items))
	for i, item := range items {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return nil, mismatch(fmt.Sprintf("%s[%d]", path, i), "expected [x, y] pair")
		}
		x, okx := pair[0].(float64)
		y, oky := pair[1].(float64)
		if !okx || !oky {
			return nil, mismatch(fmt.Sprintf("%s[%d]", path, i), "expected numeric pair")
		}
		out[i] = [2]float64{x, y}
	}
	return out, nil
}

func parsePositions(raw any, path string) (*ast.Positions, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil, &domain.SchemaError{Kind: domain.SchemaInvalidValue, Path: path, Detail: "empty positions name"}
		}
		return &ast.Positions{Name: v}, nil
	case []any:
		points, err := parsePoints(v, path)
		return &ast.Positions{Points: points}, err
	case map[string]any:
		typ, _ := v["Type"].(string)
		switch typ {
		case "List", "":
			items, _ := v["Points"].([]any)
			points, err := parsePoints(items, path+".Points")
			return &ast.Positions{Points: points}, err
		case "Grid":
			g := &ast.GridPositions{Spacing: 1}
			if s, ok := v["Spacing"].(float64); ok {
				g.Spacing = s
			}
			if g.Spacing <= 0 {
				return nil, &domain.SchemaError{Kind: domain.SchemaInvalidValue, Path: path + ".Spacing", Detail: "spacing must be positive"}
			}
			if j, ok := v["Jitter"].(float64); ok {
				g.Jitter = j
			}
			if s, ok := v["Seed"].(string); ok {
				g.Seed = s
			}
			return &ast.Positions{Grid: g}, nil
		}
		return nil, &domain.SchemaError{Kind: domain.SchemaInvalidValue, Path: path + ".Type", Detail: fmt.Sprintf("unknown positions type %q", typ)}
	}
	return nil, mismatch(path, "expected positions, got %s", describe(raw))
}

func parsePoints(items []any, path string) ([]ast.Vec, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]ast.Vec, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, mismatch(fmt.Sprintf("%s[%d]", path, i), "expected point object, got %s", describe(item))
		}
		v, err := parseVec(obj, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func fieldError(path string, err error) error {
	kind := domain.SchemaTypeMismatch
	key, reason := "", err.Error()
	for _, e := range schema.ValidationErrors(err) {
		var verr *schema.ValidationError
		if errors.As(e, &verr) {
			key, reason = verr.Key, verr.Reason
			if errors.Is(verr, schema.ErrNotAllowed) {
				kind = domain.SchemaInvalidValue
			}
			break
		}
	}
	return &domain.SchemaError{Kind: kind, Path: path + "." + key, Detail: reason}
}

func mismatch(path, format string, args ...any) error {
	return &domain.SchemaError{Kind: domain.SchemaTypeMismatch, Path: path, Detail: fmt.Sprintf(format, args...)}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}
