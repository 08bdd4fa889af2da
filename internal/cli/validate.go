package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masterymap/pkg/errors"
	"github.com/matzehuels/masterymap/pkg/knowledge"
	"github.com/matzehuels/masterymap/pkg/pipeline"
)

// validateCommand creates the validate command. It builds the registry the
// way render does and reports its shape without drawing anything.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		flags  profileFlags
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a profile's topics, mastery table and edges",
		Long: `Check a profile without rendering it.

Unknown topics, self-loops, duplicate codes and out-of-range levels are
errors. Duplicate edges and prerequisite cycles are warnings, which
--strict turns into errors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := flags.load()
			if err != nil {
				return err
			}
			reg, err := pipeline.Prepare(prof, flags.mapping)
			if err != nil {
				printError("%s is invalid", prof.Name)
				return err
			}

			warnings := reg.Lint()
			printRegistry(reg, warnings, prof.Fill, prof.Label)

			if len(warnings) > 0 {
				if strict {
					return errors.New(errors.ErrCodeInvalidInput, "%d warning(s) in %s", len(warnings), prof.Name)
				}
				printWarning("%s is valid with %d warning(s)", prof.Name, len(warnings))
				return nil
			}
			printSuccess("%s is valid", prof.Name)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}

func printRegistry(reg *knowledge.Registry, warnings []knowledge.Warning, fill, label func(knowledge.Level) string) {
	counts := reg.CountByLevel()
	for _, cl := range reg.Clusters() {
		printKeyValue(cl.Division, fmt.Sprintf("%d topics", len(cl.Topics)))
	}

	var parts []string
	for _, l := range knowledge.Levels {
		parts = append(parts, swatch(fill(l), fmt.Sprintf("%s %d", label(l), counts[l])))
	}
	printKeyValue("Levels", strings.Join(parts, " "))
	printStats(reg.Len(), len(reg.Divisions()), len(reg.Edges()), 0)

	for _, w := range warnings {
		printWarning("%s", w)
	}
}
