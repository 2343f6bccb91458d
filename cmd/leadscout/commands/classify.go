package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"leadscout/internal/identity/classifier"
)

func classifyCmd(a *app) *cobra.Command {
	var profile string
	cmd := &cobra.Command{
		Use:   "classify [file|-]",
		Short: "Classify each input line and print the verdict",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseProfile(profile)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return classifyLines(a.classifier, p, in, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&profile, "profile", classifier.ProfileScreenshot.Name, "classifier profile: screenshot or dom")
	return cmd
}

func parseProfile(name string) (classifier.Profile, error) {
	switch name {
	case classifier.ProfileScreenshot.Name:
		return classifier.ProfileScreenshot, nil
	case classifier.ProfileDOM.Name:
		return classifier.ProfileDOM, nil
	default:
		return classifier.Profile{}, fmt.Errorf("unknown profile %q", name)
	}
}

// classifyLines prints "accept\t<kind>\t<value>" or "reject\t<reason>\t<line>".
func classifyLines(c *classifier.Classifier, p classifier.Profile, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		res := c.Classify(line, p)
		if res.Accepted() {
			fmt.Fprintf(out, "accept\t%s\t%s\n", res.Token.Kind, res.Token.RawValue)
			continue
		}
		fmt.Fprintf(out, "reject\t%s\t%s\n", res.RejectionReason, line)
	}
	return scanner.Err()
}
