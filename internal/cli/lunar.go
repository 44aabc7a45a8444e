package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aerissecure/votive/lunar"
	"github.com/aerissecure/votive/member"
)

func lunarCmd(a *app) *cobra.Command {
	var (
		sex string
		on  string
	)

	cmd := &cobra.Command{
		Use:   "lunar DATE",
		Short: "Convert a solar date (YYYY-MM-DD) and show the attributes for that birth date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := time.Parse(time.DateOnly, args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q: want YYYY-MM-DD", args[0])
			}
			ceremony := time.Now()
			if on != "" {
				if ceremony, err = time.Parse(time.DateOnly, on); err != nil {
					return fmt.Errorf("invalid --on date %q: want YYYY-MM-DD", on)
				}
			}

			conv := lunar.NewConverter(lunar.WithLogger(a.log))
			calc := lunar.NewCalculator(lunar.DefaultTables())

			d := conv.SolarToLunar(birth)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Âm lịch:  %s\n", d)
			fmt.Fprintf(w, "Năm:      %s\n", calc.StemBranch(d.Year))
			if sex == "" {
				return nil
			}

			s, err := lunar.ParseSex(sex)
			if err != nil {
				return err
			}
			obs := conv.SolarToLunar(ceremony)
			m, err := member.NewBuilder(conv, calc).Build(member.Person{BirthDate: birth, Sex: s}, obs.Year)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Năm lễ:   %s (%d)\n", calc.StemBranch(obs.Year), obs.Year)
			fmt.Fprintf(w, "Tuổi:     %d\n", m.Age)
			fmt.Fprintf(w, "Sao:      %s\n", m.GuardianStar)
			fmt.Fprintf(w, "Hạn:      %s\n", m.Affliction)
			if m.CyclicStatus != "" {
				fmt.Fprintf(w, "Vận:      %s %s\n", m.CyclicStatus, m.CyclicStar)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sex, "sex", "", "male|female; adds guardian star and affliction")
	cmd.Flags().StringVar(&on, "on", "", "ceremony date (default today)")
	return cmd
}
