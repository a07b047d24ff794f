package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrUnknownType    = errors.New("unknown node type")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrTooDeep        = errors.New("document too deep")
	ErrInvalidValue   = errors.New("invalid value")
	ErrSyntax         = errors.New("malformed json")
	ErrMissingDensity = errors.New("document has no density root")

	ErrDuplicateExport  = errors.New("duplicate export")
	ErrUnresolvedImport = errors.New("unresolved import")
	ErrCyclicImport     = errors.New("cyclic import")
	ErrUnresolvedAsset  = errors.New("unresolved asset")
	ErrMalformedNode    = errors.New("malformed node")

	ErrUnhandledSwitchCase = errors.New("unhandled switch case")
	ErrContextMismatch     = errors.New("cache scope does not match evaluation context")
	ErrMissingContextInput = errors.New("missing context input")
	ErrDepthExceeded       = errors.New("evaluation depth exceeded")
	ErrUnsupportedNode     = errors.New("unsupported node")

	// ErrNotFound is returned by stores when a key has no entry.
	ErrNotFound = errors.New("not found")
)

// SchemaErrorKind classifies parse-time failures.
type SchemaErrorKind string

const (
	SchemaUnknownType  SchemaErrorKind = "UnknownType"
	SchemaTypeMismatch SchemaErrorKind = "TypeMismatch"
	SchemaTooDeep      SchemaErrorKind = "TooDeep"
	SchemaInvalidValue SchemaErrorKind = "InvalidValue"
	SchemaSyntax       SchemaErrorKind = "Syntax"
	SchemaNoDensity    SchemaErrorKind = "MissingDensity"
)

// SchemaError is returned when a document cannot be turned into a node tree.
type SchemaError struct {
	Kind   SchemaErrorKind
	Path   string // JSONPath-like location, e.g. $.Inputs[1].Scale
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("schema %s at %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("schema %s at %s: %s", e.Kind, e.Path, e.Detail)
}

func (e *SchemaError) Is(target error) bool {
	switch e.Kind {
	case SchemaUnknownType:
		return target == ErrUnknownType
	case SchemaTypeMismatch:
		return target == ErrTypeMismatch
	case SchemaTooDeep:
		return target == ErrTooDeep
	case SchemaInvalidValue:
		return target == ErrInvalidValue
	case SchemaSyntax:
		return target == ErrSyntax
	case SchemaNoDensity:
		return target == ErrMissingDensity
	}
	return false
}

// ResolveErrorKind classifies reference-resolution failures.
type ResolveErrorKind string

const (
	ResolveDuplicateExport  ResolveErrorKind = "DuplicateExport"
	ResolveUnresolvedImport ResolveErrorKind = "UnresolvedImport"
	ResolveCyclicImport     ResolveErrorKind = "CyclicImport"
	ResolveUnresolvedAsset  ResolveErrorKind = "UnresolvedAsset"
	ResolveMalformed        ResolveErrorKind = "Malformed"
)

// ResolveError is returned when a parsed tree cannot be linked into a program.
type ResolveError struct {
	Kind ResolveErrorKind
	// Names lists the export names involved. For a cycle it is the full path,
	// first name repeated at the end.
	Names  []string
	Detail string
}

func (e *ResolveError) Error() string {
	var b strings.Builder
	b.WriteString("resolve ")
	b.WriteString(string(e.Kind))
	if len(e.Names) > 0 {
		sep := ", "
		if e.Kind == ResolveCyclicImport {
			sep = " -> "
		}
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Names, sep))
		b.WriteString("]")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *ResolveError) Is(target error) bool {
	switch e.Kind {
	case ResolveDuplicateExport:
		return target == ErrDuplicateExport
	case ResolveUnresolvedImport:
		return target == ErrUnresolvedImport
	case ResolveCyclicImport:
		return target == ErrCyclicImport
	case ResolveUnresolvedAsset:
		return target == ErrUnresolvedAsset
	case ResolveMalformed:
		return target == ErrMalformedNode
	}
	return false
}

// EvalErrorKind classifies failures of a single evaluation.
type EvalErrorKind string

const (
	EvalUnhandledSwitchCase EvalErrorKind = "UnhandledSwitchCase"
	EvalContextMismatch     EvalErrorKind = "ContextMismatch"
	EvalMissingContextInput EvalErrorKind = "MissingContextInput"
	EvalDepthExceeded       EvalErrorKind = "DepthExceeded"
	EvalUnresolvedImport    EvalErrorKind = "UnresolvedImport"
	EvalUnsupportedNode     EvalErrorKind = "UnsupportedNode"
)

// EvalError aborts the current sample. Other samples of the same grid are unaffected.
type EvalError struct {
	Kind   EvalErrorKind
	Node   string // kind of the node that failed
	Detail string
}

func (e *EvalError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("eval %s in %s", e.Kind, e.Node)
	}
	return fmt.Sprintf("eval %s in %s: %s", e.Kind, e.Node, e.Detail)
}

func (e *EvalError) Is(target error) bool {
	switch e.Kind {
	case EvalUnhandledSwitchCase:
		return target == ErrUnhandledSwitchCase
	case EvalContextMismatch:
		return target == ErrContextMismatch
	case EvalMissingContextInput:
		return target == ErrMissingContextInput
	case EvalDepthExceeded:
		return target == ErrDepthExceeded
	case EvalUnresolvedImport:
		return target == ErrUnresolvedImport
	case EvalUnsupportedNode:
		return target == ErrUnsupportedNode
	}
	return false
}
