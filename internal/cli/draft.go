package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aerissecure/votive/config"
	"github.com/aerissecure/votive/draft"
)

func draftCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "draft",
		Short: "Save and restore petition forms",
	}
	c.AddCommand(draftSaveCmd(a), draftListCmd(a), draftShowCmd(a), draftDeleteCmd(a))
	return c
}

func draftSaveCmd(a *app) *cobra.Command {
	var (
		formPath string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Store a form file as a draft",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := config.LoadForm(formPath)
			if err != nil {
				return err
			}
			if name == "" {
				reg, err := a.registry()
				if err != nil {
					return err
				}
				name = draft.DefaultName(f, reg, time.Now())
			}
			d, err := a.drafts().Save(cmd.Context(), name, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", d.ID, d.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formPath, "form", "f", "", "form file (.yaml, .toml or .json)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "draft name (default: first member, petition type and date)")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func draftListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List drafts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			drafts, err := a.drafts().List(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(drafts) == 0 {
				fmt.Fprintln(w, "(no drafts)")
				return nil
			}
			for _, d := range drafts {
				fmt.Fprintf(w, "%s  %s  %s\n", d.ID, d.CreatedAt.Local().Format("2006-01-02 15:04"), d.Name)
			}
			return nil
		},
	}
}

func draftShowCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a draft's form as YAML, or write it to a form file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.drafts().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out != "" {
				return config.SaveForm(out, d.Form)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(d.Form)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the form to this file instead")
	return cmd
}

func draftDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.drafts().Delete(cmd.Context(), args[0])
		},
	}
}
