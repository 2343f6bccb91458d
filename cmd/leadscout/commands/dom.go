package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"leadscout/internal/identity/adapters/dom"
)

func domCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dom <file.html>",
		Short: "Print the display name of the conversation open in an HTML snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := dom.New(a.classifier).Extract(cmd.Context(), f)
			if err != nil {
				return err
			}
			if !res.Found() {
				return fmt.Errorf("no display name found in %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", res.Token.Kind, res.Token.RawValue, res.Locator)
			return nil
		},
	}
}
