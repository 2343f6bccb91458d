// Package commands implements the leadscout command line: offline access to
// the classifier, both text source adapters and operator token issuance.
package commands

import (
	"github.com/spf13/cobra"

	"leadscout/internal/identity/classifier"
	"leadscout/internal/identity/ports"
	"leadscout/internal/recognition/tesseract"
)

type app struct {
	keywordsFile string
	languages    []string
	classifier   *classifier.Classifier

	newRecognizer func(languages []string) ports.Recognizer
}

func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree backed by the tesseract engine.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{
		newRecognizer: func(languages []string) ports.Recognizer {
			return tesseract.New(tesseract.WithLanguages(languages...))
		},
	})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "leadscout",
		Short:         "Extract contact candidates from messaging screenshots and pages",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := classifier.DefaultConfig()
			if a.keywordsFile != "" {
				var err error
				cfg, err = classifier.LoadConfigFile(a.keywordsFile)
				if err != nil {
					return err
				}
			}
			a.classifier = classifier.New(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.keywordsFile, "keywords", "", "YAML keyword file replacing or extending the built-in set")

	root.AddCommand(classifyCmd(a), scanCmd(a), domCmd(a), tokenCmd())
	return root
}
