package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/protoval/compiler"
	"github.com/syssam/protoval/schema"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Compile IDL files and report their errors without generating code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs []error
			for _, path := range args {
				s, err := compiler.CompileFile(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d messages)\n", path, s.Len())
			}
			return errors.Join(errs...)
		},
	}
}

func describeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "describe [--format text|json] FILE",
		Short: "Print the compiled schema of an IDL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := compiler.CompileFile(args[0])
			if err != nil {
				return err
			}
			switch format {
			case "text":
				return describeText(cmd.OutOrStdout(), s)
			case "json":
				return describeJSON(cmd.OutOrStdout(), s)
			default:
				return fmt.Errorf("unknown format %q; use text or json", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	return cmd
}

func describeText(w io.Writer, s *schema.Schema) error {
	if s.Namespace() != "" {
		if _, err := fmt.Fprintf(w, "package %s;\n", s.Namespace()); err != nil {
			return err
		}
	}
	for _, m := range s.Messages() {
		if _, err := fmt.Fprintf(w, "\nmessage %s {\n", m.Name()); err != nil {
			return err
		}
		for _, f := range m.Fields() {
			if _, err := fmt.Fprintf(w, "  %s;\n", f); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
	}
	return nil
}

type (
	schemaJSON struct {
		Package  string        `json:"package,omitempty"`
		Messages []messageJSON `json:"messages"`
	}
	messageJSON struct {
		Name   string      `json:"name"`
		Fields []fieldJSON `json:"fields"`
	}
	fieldJSON struct {
		ID       int32  `json:"id"`
		Name     string `json:"name"`
		Rule     string `json:"rule"`
		Type     string `json:"type"`
		Message  bool   `json:"message,omitempty"`
		Accessor string `json:"accessor"`
		Setter   string `json:"setter"`
	}
)

func describeJSON(w io.Writer, s *schema.Schema) error {
	out := schemaJSON{Package: s.Namespace(), Messages: []messageJSON{}}
	for _, m := range s.Messages() {
		mj := messageJSON{Name: m.Name(), Fields: []fieldJSON{}}
		for _, f := range m.Fields() {
			mj.Fields = append(mj.Fields, fieldJSON{
				ID:       f.ID(),
				Name:     f.Name(),
				Rule:     f.Rule().String(),
				Type:     f.Type().String(),
				Message:  f.Type().IsMessage(),
				Accessor: f.Accessor(),
				Setter:   f.Setter(),
			})
		}
		out.Messages = append(out.Messages, mj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
