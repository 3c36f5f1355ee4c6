package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kbukum/pronounce/assessment"
)

var (
	assessTarget      string
	assessStrategy    string
	assessContentType string
)

var assessCmd = &cobra.Command{
	Use:   "assess <file>",
	Short: "Score one recording and print the result",
	Long: `Score one recording of a target word and print the result as JSON.

The decoder is chosen from --content-type, or from the file extension when
it is not given. The command exits non-zero when the assessment failed.

Examples:
  pronounce assess red.wav --target red
  pronounce assess hello.mp3 --target hello --strategy rule`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		a, err := newTaskApp(cmd.Context())
		if err != nil {
			return err
		}

		var res *assessment.Result
		err = a.RunTask(cmd.Context(), func(ctx context.Context) error {
			res = a.Assessor.Assess(ctx, assessment.Request{
				Audio:       data,
				ContentType: assessContentType,
				Filename:    filepath.Base(args[0]),
				TargetWord:  assessTarget,
				Strategy:    assessStrategy,
			})
			return nil
		})
		if err != nil {
			return err
		}
		if err := printJSON(cmd, res); err != nil {
			return err
		}
		if res.Failed() {
			return res.Err()
		}
		return nil
	},
}

func init() {
	assessCmd.Flags().StringVarP(&assessTarget, "target", "t", "", "target word")
	assessCmd.Flags().StringVarP(&assessStrategy, "strategy", "s", "", "scoring strategy: auto, rule, model or reference (default from config)")
	assessCmd.Flags().StringVar(&assessContentType, "content-type", "", "audio MIME type, e.g. audio/wav")
	_ = assessCmd.MarkFlagRequired("target")
}
