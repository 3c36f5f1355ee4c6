package commands

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/pronounce/vocabulary"
)

var (
	wordsCategory string
	wordsJSON     bool
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List the word catalog",
	Long: `List the built-in words merged with the catalog at vocabulary.path.

Examples:
  pronounce words
  pronounce words --category colors --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := vocabulary.Load(cfg.Vocabulary.Path)
		if err != nil {
			return err
		}
		words := catalog.List(wordsCategory)
		if wordsJSON {
			return printJSON(cmd, words)
		}
		return printYAML(cmd, words)
	},
}

func init() {
	wordsCmd.Flags().StringVar(&wordsCategory, "category", "", "only words in this category")
	wordsCmd.Flags().BoolVar(&wordsJSON, "json", false, "print JSON instead of YAML")
}
