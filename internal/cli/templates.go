package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alnah/go-summary/internal/template"
)

// TemplatesCmd creates the templates command listing the preset catalog.
func TemplatesCmd(env *Env) *cobra.Command {
	var prompts bool

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List summary presets",
		Example: `  summary templates
  summary templates --prompts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplates(env, prompts)
		},
	}

	cmd.Flags().BoolVar(&prompts, "prompts", false, "Show the instruction each preset fills in")
	return cmd
}

func runTemplates(env *Env, prompts bool) error {
	w := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	for _, t := range template.All() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Title, t.Description)
		if prompts {
			_, _ = fmt.Fprintf(w, "\t%s\t\n", t.Prompt)
		}
	}
	return w.Flush()
}
