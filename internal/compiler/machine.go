package compiler

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/ntm/internal/ir"
	"github.com/roach88/ntm/internal/machine"
	"github.com/roach88/ntm/internal/parser"
)

//go:embed schema.cue
var schemaSrc string

// Definition is a loaded machine: its transitions plus descriptive metadata.
type Definition struct {
	Name        string
	Description string
	Source      string // file the definition was loaded from, if any
	Transitions []ir.Transition
}

// Table builds the immutable transition table for the definition.
func (d *Definition) Table() *machine.Table {
	return machine.NewTable(d.Transitions)
}

// CompileMachine parses a CUE value into a Definition.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The value is unified with the embedded #Machine schema first, so unknown
// fields, missing fields and bad directions are reported with CUE positions:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`transitions: [{from: "start", read: "0", to: "accept", write: "0", move: "S"}]`)
//	def, err := CompileMachine(v)
func CompileMachine(v cue.Value) (*Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	schema := v.Context().CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Machine")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	def := &Definition{}
	if nameVal := unified.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		def.Name = name
	}
	if descVal := unified.LookupPath(cue.ParsePath("description")); descVal.Exists() {
		desc, err := descVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		def.Description = desc
	}

	// Positions come from the caller's value so errors point into their file.
	iter, err := v.LookupPath(cue.ParsePath("transitions")).List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		t, err := compileTransition(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		def.Transitions = append(def.Transitions, t)
	}

	return def, nil
}

// CompileSource compiles CUE source text. filename is used in positions.
func CompileSource(src []byte, filename string) (*Definition, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	def, err := CompileMachine(v)
	if err != nil {
		return nil, err
	}
	def.Source = filename
	if def.Name == "" {
		def.Name = baseName(filename)
	}
	return def, nil
}

// LoadFile loads a machine definition. Files ending in .cue are compiled
// with CUE; anything else is read as the plain-text transition format.
func LoadFile(path string) (*Definition, error) {
	if filepath.Ext(path) == ".cue" {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read machine file: %w", err)
		}
		return CompileSource(src, path)
	}

	transitions, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return &Definition{
		Name:        baseName(path),
		Source:      path,
		Transitions: transitions,
	}, nil
}

// compileTransition reads one list element already validated by the schema.
func compileTransition(v cue.Value, index int) (ir.Transition, error) {
	field := func(name string) (cue.Value, string, error) {
		fv := v.LookupPath(cue.ParsePath(name))
		s, err := fv.String()
		if err != nil {
			return fv, "", formatCUEError(err)
		}
		return fv, s, nil
	}
	symbol := func(name string) (ir.Symbol, error) {
		fv, s, err := field(name)
		if err != nil {
			return 0, err
		}
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) || r == utf8.RuneError {
			return 0, &CompileError{
				Field:   fmt.Sprintf("transitions[%d].%s", index, name),
				Message: fmt.Sprintf("symbol %q must be exactly one character", s),
				Pos:     fv.Pos(),
			}
		}
		return ir.Symbol(r), nil
	}

	_, from, err := field("from")
	if err != nil {
		return ir.Transition{}, err
	}
	_, to, err := field("to")
	if err != nil {
		return ir.Transition{}, err
	}
	read, err := symbol("read")
	if err != nil {
		return ir.Transition{}, err
	}
	write, err := symbol("write")
	if err != nil {
		return ir.Transition{}, err
	}
	moveVal, move, err := field("move")
	if err != nil {
		return ir.Transition{}, err
	}
	dir, err := ir.ParseDirection(move)
	if err != nil {
		return ir.Transition{}, &CompileError{
			Field:   fmt.Sprintf("transitions[%d].move", index),
			Message: err.Error(),
			Pos:     moveVal.Pos(),
		}
	}

	return ir.Transition{
		From:  ir.State(from),
		Read:  read,
		To:    ir.State(to),
		Write: write,
		Dir:   dir,
	}, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
