package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var refContentType string

var referencesCmd = &cobra.Command{
	Use:   "references",
	Short: "Manage reference recordings",
	Long: `Reference recordings are native pronunciations the reference strategy
compares against. They are stored as references/<word>.wav in the
configured storage backend.`,
}

var referencesPutCmd = &cobra.Command{
	Use:   "put <word> <file>",
	Short: "Store a reference recording for a word",
	Long: `Decode a recording, resample it to the analysis rate and store it as
the reference for word.

Examples:
  pronounce references put red recordings/red.wav
  pronounce references put hello hello.m4a --content-type audio/m4a`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		word, file := args[0], args[1]
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		a, err := newTaskApp(cmd.Context())
		if err != nil {
			return err
		}
		return a.RunTask(cmd.Context(), func(ctx context.Context) error {
			buf, err := a.Decoders.Decode(ctx, data, refContentType, filepath.Base(file))
			if err != nil {
				return err
			}
			if err := a.References.Put(ctx, word, buf); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored reference for %q (%.2fs)\n", word, buf.Duration())
			return nil
		})
	},
}

var referencesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List words that have a reference recording",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newTaskApp(cmd.Context())
		if err != nil {
			return err
		}
		return a.RunTask(cmd.Context(), func(ctx context.Context) error {
			words, err := a.References.Words(ctx)
			if err != nil {
				return err
			}
			for _, w := range words {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		})
	},
}

func init() {
	referencesPutCmd.Flags().StringVar(&refContentType, "content-type", "", "audio MIME type (default from the file extension)")
	referencesCmd.AddCommand(referencesPutCmd)
	referencesCmd.AddCommand(referencesListCmd)
}
