package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"leadscout/internal/identity/adapters/screenshot"
	"leadscout/internal/identity/classifier"
	"leadscout/internal/identity/models"
	platformstrings "leadscout/pkg/platform/strings"
)

func scanCmd(a *app) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Recognize a conversation-list screenshot and print the candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			adapter := screenshot.New()
			if _, err := adapter.ValidateImage(data); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			result, err := a.newRecognizer(a.languages).Recognize(ctx, data)
			if err != nil {
				return fmt.Errorf("recognize %s: %w", args[0], err)
			}

			classified := a.classifier.ClassifyUnits(adapter.Units(result), classifier.ProfileScreenshot)
			tokens := platformstrings.DedupeBy(models.Tokens(classified), models.CandidateToken.NormalizedValue)
			out := cmd.OutOrStdout()
			for _, t := range tokens {
				fmt.Fprintf(out, "%s\t%s\n", t.Kind, t.RawValue)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&a.languages, "lang", []string{"eng", "por"}, "tesseract languages")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "recognition timeout")
	return cmd
}
