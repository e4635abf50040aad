package catalog

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/skeinproject/skein/internal/hs"
)

// CompileCatalog parses a CUE value into a Catalog.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the catalog struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`catalog: functions: { ... }`)
//	cat, err := CompileCatalog(v.LookupPath(cue.ParsePath("catalog")))
func CompileCatalog(v cue.Value) (*Catalog, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	fnsVal := v.LookupPath(cue.ParsePath("functions"))
	if !fnsVal.Exists() {
		return nil, &CompileError{
			Field:   "functions",
			Message: "functions section is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := fnsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	cat := &Catalog{entries: make(map[string]Entry)}
	for iter.Next() {
		name := iter.Label()
		entry, err := compileEntry(name, iter.Value())
		if err != nil {
			return nil, err
		}
		cat.entries[name] = entry
		cat.order = append(cat.order, name)
	}

	if len(cat.entries) == 0 {
		return nil, &CompileError{
			Field:   "functions",
			Message: "at least one function is required",
			Pos:     fnsVal.Pos(),
		}
	}
	return cat, nil
}

// compileEntry parses a single function entry. The signature is
// mandatory and must parse as a Haskell type; doc is optional.
func compileEntry(name string, v cue.Value) (Entry, error) {
	entry := Entry{Name: name}

	sigVal := v.LookupPath(cue.ParsePath("signature"))
	if !sigVal.Exists() {
		return entry, &CompileError{
			Field:   fmt.Sprintf("functions.%s.signature", name),
			Message: "signature is required",
			Pos:     v.Pos(),
		}
	}
	sig, err := sigVal.String()
	if err != nil {
		return entry, formatCUEError(err)
	}
	typ, err := hs.ParseType(sig)
	if err != nil {
		return entry, &CompileError{
			Field:   fmt.Sprintf("functions.%s.signature", name),
			Message: err.Error(),
			Pos:     sigVal.Pos(),
		}
	}
	entry.Signature = sig
	entry.Type = typ

	docVal := v.LookupPath(cue.ParsePath("doc"))
	if docVal.Exists() {
		doc, err := docVal.String()
		if err != nil {
			return entry, formatCUEError(err)
		}
		entry.Doc = doc
	}
	return entry, nil
}

// CompileString compiles CUE source text holding a top-level catalog
// struct. Convenience for tests and embedded catalogs.
func CompileString(src string) (*Catalog, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	catVal := v.LookupPath(cue.ParsePath("catalog"))
	if !catVal.Exists() {
		return nil, &CompileError{
			Field:   "catalog",
			Message: "no catalog struct found",
			Pos:     v.Pos(),
		}
	}
	return CompileCatalog(catVal)
}

// CompileError represents a catalog compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
