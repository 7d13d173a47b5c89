package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gsettings-codegen/internal/compile"
	"gsettings-codegen/internal/request"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile the schema and request without writing output",
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

		skipped := len(res.Doc.Schema.Keys) - len(res.Specs)

		fmt.Printf("Schema valid\n")
		fmt.Printf("  Schema:     %s\n", res.Doc.Schema.ID)
		fmt.Printf("  Keys:       %d (%d skipped)\n", len(res.Doc.Schema.Keys), skipped)
		fmt.Printf("  Value sets: %d\n", len(res.Registry.Sets()))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
