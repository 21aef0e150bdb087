package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/protoval/schema"
)

// File is the generated source of one message.
type File struct {
	Name    string // file name, relative to the target directory
	Message string
	Content []byte
}

// Result holds the files generated for a schema, in schema order. Messages
// that failed to generate have no file.
type Result struct {
	Files  []*File
	Failed []string // names of the messages that failed
}

// Generate renders the source of a single message. It is a pure function of
// its inputs: the same message and configuration always yield the same bytes.
func Generate(msg *schema.Message, cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := cfg.emitter()
	f, err := e.Emit(msg, cfg)
	if err != nil {
		var genErr *GenerationError
		if errors.As(err, &genErr) {
			return nil, err
		}
		return nil, NewGenerationError(msg.Name(), "", fmt.Sprintf("emitter %s", e.Name()), err)
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, &GenerationError{
			Type:    msg.Name(),
			File:    Filename(msg),
			Message: "render output",
			Cause:   err,
		}
	}
	return buf.Bytes(), nil
}

// GenerateSchema renders every message of s concurrently, with at most
// cfg.Workers messages in flight. A message that fails does not stop the
// others: the result holds the files of all messages that succeeded and the
// returned error joins every failure.
//
// Messages are also checked against each other. A message that declares a
// package-level identifier or a file name already taken by an earlier
// message fails with a *GenerationError.
func GenerateSchema(ctx context.Context, s *schema.Schema, cfg *Config) (*Result, error) {
	if cfg == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var (
		msgs  = s.Messages()
		files = make([]*File, len(msgs))
		errs  = make([]error, len(msgs))
		pkg   = make(map[string]string)
		names = make(map[string]string)
	)
	for i, msg := range msgs {
		errs[i] = claim(msg, pkg, names)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, msg := range msgs {
		if errs[i] != nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := Generate(msg, cfg)
			if err != nil {
				errs[i] = err
				return nil
			}
			files[i] = &File{Name: Filename(msg), Message: msg.Name(), Content: b}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	for i, f := range files {
		if f != nil {
			res.Files = append(res.Files, f)
		} else {
			res.Failed = append(res.Failed, msgs[i].Name())
		}
	}
	return res, errors.Join(errs...)
}

// claim records the package identifiers and file name of msg, failing if an
// earlier message already took one of them.
func claim(msg *schema.Message, pkg, files map[string]string) error {
	name := Filename(msg)
	if prev, ok := files[name]; ok {
		return &GenerationError{
			Type:    msg.Name(),
			File:    name,
			Message: fmt.Sprintf("file name collides with message %s", prev),
		}
	}
	idents := packageIdents(msg)
	for _, id := range idents {
		if prev, ok := pkg[id]; ok {
			return NewGenerationError(msg.Name(), "", fmt.Sprintf("identifier %s collides with message %s", id, prev), nil)
		}
	}
	files[name] = msg.Name()
	for _, id := range idents {
		pkg[id] = msg.Name()
	}
	return nil
}
