package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masterymap/pkg/pipeline"
	"github.com/matzehuels/masterymap/pkg/render/dot"
)

// dotCommand creates the dot command, which prints the Graphviz source that
// render would rasterise.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		flags  profileFlags
		legend bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Print the Graphviz source of the diagram or legend",
		Example: `  masterymap dot -p classic | dot -Tsvg > map.svg
  masterymap dot --legend -o legend.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := flags.load()
			if err != nil {
				return err
			}

			var src string
			if legend {
				src = dot.Legend(prof)
			} else {
				reg, err := pipeline.Prepare(prof, flags.mapping)
				if err != nil {
					return err
				}
				src = dot.Diagram(reg, prof)
			}

			if output == "" {
				_, err := io.WriteString(cmd.OutOrStdout(), src)
				return err
			}
			if err := os.WriteFile(output, []byte(src), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote %s source", map[bool]string{true: "legend", false: "diagram"}[legend])
			printFile(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&legend, "legend", false, "print the legend instead of the diagram")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}
