package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masterymap/pkg/knowledge"
	"github.com/matzehuels/masterymap/pkg/profile"
)

// profilesCommand creates the profiles command group.
func (c *CLI) profilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "List, inspect and export profiles",
	}

	cmd.AddCommand(c.profilesListCommand())
	cmd.AddCommand(c.profilesShowCommand())
	cmd.AddCommand(c.profilesExportCommand())

	return cmd
}

func completeProfiles(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return profile.Names(), cobra.ShellCompDirectiveNoFileComp
}

func (c *CLI) profilesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(StyleDim).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return StyleTitle.Padding(0, 1)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				}).
				Headers("NAME", "LEGEND", "LABELS", "DESCRIPTION")

			for _, name := range profile.Names() {
				p, err := profile.Builtin(name)
				if err != nil {
					return err
				}
				mark := "no"
				if p.Legend {
					mark = "yes"
				}
				if name == profile.Default {
					name += " *"
				}
				t.Row(name, mark, strings.Join(p.Labels, ", "), p.Description)
			}

			fmt.Fprintln(out, t.Render())
			printDetail("* default")
			return nil
		},
	}
}

func (c *CLI) profilesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show <name|file.toml>",
		Short:             "Show a profile's settings and colours",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProfile(args[0])
			if err != nil {
				return err
			}
			showProfile(p)
			return nil
		},
	}
}

func (c *CLI) profilesExportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:               "export <name>",
		Short:             "Write a built-in profile as TOML, as a starting point for a custom one",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile.Builtin(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				return profile.Encode(cmd.OutOrStdout(), p)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := profile.Encode(f, p); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printSuccess("Exported %s", p.Name)
			printFile(output)
			printNextStep("Render it", "masterymap render -f "+output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

// resolveProfile treats arg as a file when it ends in .toml and as a
// built-in name otherwise.
func resolveProfile(arg string) (*profile.Profile, error) {
	if strings.HasSuffix(arg, ".toml") {
		return profile.Load(arg)
	}
	return profile.Builtin(arg)
}

func showProfile(p *profile.Profile) {
	fmt.Fprintln(out, StyleTitle.Render(p.Name))
	if p.Description != "" {
		printDetail("%s", p.Description)
	}
	fmt.Fprintln(out)

	printKeyValue("Output", p.Output)
	if p.Title != "" {
		printKeyValue("Title", p.Title)
	}
	printKeyValue("Legend", fmt.Sprintf("%t", p.Legend))
	printKeyValue("Shape", p.Shape)
	printKeyValue("Label mode", string(p.LabelMode))
	if p.Splines != "" {
		printKeyValue("Splines", p.Splines)
	}
	if p.Floor != 0 {
		printKeyValue("Floor", p.Label(p.Floor))
	}
	if p.Theme.Font != "" {
		printKeyValue("Font", p.Theme.Font)
	}
	printKeyValue("Topics", fmt.Sprintf("%d", len(p.Topics)))
	printKeyValue("Edges", fmt.Sprintf("%d", len(p.Edges)))

	var swatches []string
	for _, l := range knowledge.Levels {
		swatches = append(swatches, swatch(p.Fill(l), p.Label(l)))
	}
	printKeyValue("Levels", strings.Join(swatches, " "))
}
