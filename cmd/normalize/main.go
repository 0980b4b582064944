package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"legalaid-backend/models"
	"legalaid-backend/normalizer"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var (
		hint        string
		payloadOnly bool
	)

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Normalize a saved model reply into a structured legal record",
		Long: `normalize reads raw model text from a file, or stdin when no file is
given, and prints the normalized record as indented JSON.

Hints: fir, judgment, petition, contract, other, legal-status, penalty.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := stdin
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			raw, err := io.ReadAll(io.LimitReader(in, normalizer.MaxInputBytes+1))
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			record := normalizer.Normalize(string(raw), models.ParseSchemaHint(hint))

			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			if payloadOnly {
				return enc.Encode(record.Payload())
			}
			return enc.Encode(record)
		},
	}

	cmd.Flags().StringVar(&hint, "hint", string(models.HintOther), "record shape to normalize into")
	cmd.Flags().BoolVar(&payloadOnly, "payload", false, "print only the typed record, without hint and source")
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	return cmd
}
