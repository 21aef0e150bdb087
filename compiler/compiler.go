// Package compiler turns declaration trees into validated schemas and drives
// code generation for them.
//
//	s, err := compiler.CompileFile("shapes.proto")
//	if err != nil {
//	    return err
//	}
//	for _, m := range s.Messages() {
//	    src, err := gen.Generate(m, cfg)
//	    ...
//	}
package compiler

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/syssam/protoval/compiler/gen"
	"github.com/syssam/protoval/compiler/load"
	"github.com/syssam/protoval/schema"
)

// Compile builds the schema of a declaration tree.
//
// Every message is built in source order and every field problem (unknown
// rule, bad id, duplicate id or name, duplicate message) is collected. The
// message references of every field that was built are resolved after all
// messages are declared, so that forward references work. Any failure
// returns a *SchemaError holding every problem, and no schema.
func Compile(tree load.Tree) (*schema.Schema, error) {
	c := &compilation{
		filename: tree.Filename(),
		declared: make(map[string]load.Position),
	}
	var messages []*schema.Message
	for _, node := range tree.Messages() {
		if m := c.message(node); m != nil {
			messages = append(messages, m)
		}
	}
	c.resolve()
	if len(c.errs) > 0 {
		return nil, &SchemaError{Filename: c.filename, Errors: c.errs}
	}
	return schema.NewSchema(tree.Package(), messages), nil
}

// CompileFile parses and compiles the IDL file at path.
func CompileFile(path string) (*schema.Schema, error) {
	tree, err := load.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(tree)
}

// CompileSource parses and compiles an IDL source read from r.
func CompileSource(name string, r io.Reader) (*schema.Schema, error) {
	tree, err := load.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return Compile(tree)
}

// Generate compiles the IDL file at path and writes the code of all its
// messages to cfg.Target. If cfg.Package is empty, the last element of the
// package declared in the source is used.
func Generate(ctx context.Context, path string, cfg *gen.Config, opts ...gen.WriterOption) error {
	if cfg == nil {
		return gen.NewConfigError("Config", nil, "config cannot be nil")
	}
	s, err := CompileFile(path)
	if err != nil {
		return err
	}
	c := *cfg
	if c.Package == "" {
		ns := s.Namespace()
		c.Package = ns[strings.LastIndex(ns, ".")+1:]
	}
	if err := c.Validate(); err != nil {
		return err
	}
	w := gen.NewWriter(&c, opts...)
	if err := w.Write(ctx, s); err != nil {
		return fmt.Errorf("generate %s: %w", path, err)
	}
	return nil
}

// compilation holds the state of one Compile call.
type compilation struct {
	filename string
	declared map[string]load.Position
	refs     []Reference
	errs     []error
}

// message builds one message. It returns nil for a duplicate declaration.
func (c *compilation) message(node load.MessageNode) *schema.Message {
	name := node.Name()
	if first, ok := c.declared[name]; ok {
		c.errs = append(c.errs, &DuplicateMessageError{Message: name, First: first, Pos: node.Pos()})
		return nil
	}
	c.declared[name] = node.Pos()

	var fields []*schema.Field
	for _, fn := range node.Fields() {
		if f := c.field(name, fn); f != nil {
			fields = append(fields, f)
		}
	}
	m := schema.NewMessage(name, fields)
	if !m.Valid() {
		c.errs = append(c.errs, &InvalidMessageError{Message: name, Pos: node.Pos(), Collisions: m.Collisions()})
	}
	return m
}

// field builds one field, recording an error and returning nil if its rule
// or id is invalid.
func (c *compilation) field(msg string, fn load.FieldNode) *schema.Field {
	rule, ok := schema.ParseFieldRule(fn.Rule())
	if !ok {
		c.errs = append(c.errs, &UnknownFieldRuleError{Message: msg, Field: fn.Name(), Rule: fn.Rule(), Pos: fn.Pos()})
		return nil
	}
	id, err := strconv.ParseInt(fn.ID(), 10, 32)
	if err != nil {
		c.errs = append(c.errs, &InvalidFieldIDError{Message: msg, Field: fn.Name(), ID: fn.ID(), Pos: fn.Pos(), Cause: err})
		return nil
	}
	typ := schema.ResolveType(fn.Type())
	if typ.IsMessage() {
		c.refs = append(c.refs, Reference{Message: msg, Field: fn.Name(), Type: typ.Message, Pos: fn.Pos()})
	}
	return schema.NewField(rule, typ, fn.Name(), int32(id))
}

// resolve checks that every referenced message is declared.
func (c *compilation) resolve() {
	var (
		err  *UnresolvedTypeReferenceError
		seen = make(map[string]struct{})
	)
	for _, ref := range c.refs {
		if _, ok := c.declared[ref.Type]; ok {
			continue
		}
		if err == nil {
			err = &UnresolvedTypeReferenceError{}
		}
		if _, ok := seen[ref.Type]; !ok {
			seen[ref.Type] = struct{}{}
			err.Names = append(err.Names, ref.Type)
		}
		err.Sites = append(err.Sites, ref)
	}
	if err != nil {
		c.errs = append(c.errs, err)
	}
}
