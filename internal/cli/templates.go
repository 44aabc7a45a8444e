package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func templatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List petition types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, t := range reg.All() {
				note := ""
				if t.PerMember {
					note = "  (one page per member)"
				}
				fmt.Fprintf(w, "%-10s %s%s\n", t.ID, t.Name, note)
			}
			return nil
		},
	}
}
