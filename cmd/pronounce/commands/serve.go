package commands

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/pronounce/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP assessment service",
	Long: `Run the HTTP assessment service until SIGINT or SIGTERM.

Routes:
  GET  /                             service banner
  POST /analyze/                     multipart file + target_word
  POST /analyze-color-pronunciation  multipart audio + colorName
  POST /assess                       JSON with base64 audio
  POST /analyze-speech               JSON with base64 WAV and target text
  GET  /words, /words/:word          word catalog
  GET  /health, /ready, /info        probes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return a.Run(cmd.Context())
	},
}
