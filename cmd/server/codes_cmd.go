package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/miphreal/drf-tweaks/internal/codes"
)

// codeEntry is the printable form of a catalog entry.
type codeEntry struct {
	Value   int            `json:"value" yaml:"value"`
	Name    string         `json:"name" yaml:"name"`
	Message *string        `json:"message" yaml:"message"`
	Data    map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that code values and names are unique",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return checkCodes(cmd.OutOrStdout(), codes.All())
		},
	}
}

func newCodesCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Print the response code catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCodes(cmd.OutOrStdout(), codes.Default().Codes(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, yaml)")
	return cmd
}

func checkCodes(w io.Writer, list []codes.Code) error {
	errs := codes.Check(list)
	for _, err := range errs {
		fmt.Fprintln(w, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	fmt.Fprintf(w, "%d codes, no collisions\n", len(list))
	return nil
}

func printCodes(w io.Writer, list []codes.Code, format string) error {
	entries := make([]codeEntry, 0, len(list))
	for _, c := range list {
		e := codeEntry{Value: c.Value(), Name: c.Name()}
		if msg, ok := c.Message(); ok {
			e.Message = &msg
		}
		if c.HasData() {
			e.Data = c.Data()
		}
		entries = append(entries, e)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
