package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"gsettings-codegen/internal/accessor"
	"gsettings-codegen/internal/compile"
	"gsettings-codegen/internal/request"
)

var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the resolved accessor specs for inspection",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		req, err := request.LoadFile(requestPath)
		if err != nil {
			return err
		}

		res, err := compile.Run(req, logger)
		if err != nil {
			return err
		}

		switch dumpFormat {
		case "text":
			dumpText(res.Specs)
		case "json":
			data, err := json.MarshalIndent(res.Specs, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding specs: %w", err)
			}

			fmt.Println(string(data))
		case "spew":
			spew.Fdump(os.Stdout, res.Specs)
		default:
			return fmt.Errorf("unknown format %q (want text, json, or spew)", dumpFormat)
		}

		return nil
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format: text, json, or spew")

	rootCmd.AddCommand(dumpCmd)
}

func dumpText(specs []accessor.Spec) {
	for _, s := range specs {
		fmt.Printf("%s (%s)\n", s.Key, s.TypeCode)
		fmt.Printf("  get %s() %s\n", s.Names.Getter, s.RetType)
		fmt.Printf("  set %s(%s)", s.Names.Setter, s.ArgType)

		if s.ReadOnly {
			fmt.Printf("  [read-only]")
		}

		fmt.Println()

		if s.SetName != "" {
			fmt.Printf("  value set %s\n", s.SetName)
		}

		if s.Doc.Default != "" {
			fmt.Printf("  default %s\n", s.Doc.Default)
		}
	}
}
