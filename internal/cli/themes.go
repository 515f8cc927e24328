package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/plotforge/plotforge/pkg/theme"
)

// newThemesCmd creates the themes command for listing and inspecting palettes.
func newThemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List and inspect built-in palettes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemesList()
		},
	}

	cmd.AddCommand(newThemesShowCmd())
	return cmd
}

// runThemesList prints every built-in palette with its required color swatches.
func runThemesList() error {
	fmt.Println(StyleTitle.Render("Built-in palettes"))
	printNewline()

	for _, name := range theme.Names() {
		provider, err := theme.Builtin(name)
		if err != nil {
			continue
		}
		colors, err := provider.Colors(theme.RequiredKeys...)
		if err != nil {
			continue
		}

		line := "  " + StyleValue.Render(fmt.Sprintf("%-10s", name))
		for _, key := range theme.RequiredKeys {
			line += " " + swatch(colors[key])
		}
		if name == theme.DefaultPalette {
			line += " " + StyleDim.Render("(default)")
		}
		fmt.Println(line)
	}

	printNewline()
	printNextStep("Inspect a palette", "plotforge themes show ocean")
	return nil
}

// newThemesShowCmd creates the "themes show" subcommand.
func newThemesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name|file.toml]",
		Short: "Show all colors of a palette or theme file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemesShow(args[0])
		},
	}
}

// runThemesShow prints the full color mapping of a theme reference,
// including the derived axis, grid, and label colors.
func runThemesShow(ref string) error {
	provider, err := theme.Resolve(ref)
	if err != nil {
		return err
	}
	colors, err := provider.Colors()
	if err != nil {
		return err
	}
	derived, err := theme.Derived(colors)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(ref))
	printNewline()

	keys := make([]string, 0, len(derived))
	for k := range derived {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		printColor(key, derived[key])
	}

	printNewline()
	printNextStep("Render with this theme", fmt.Sprintf("plotforge render data.csv --theme %s", ref))
	return nil
}
