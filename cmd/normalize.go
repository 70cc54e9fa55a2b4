package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcaptcha/internal/decimal"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "normalize VALUE",
		Short:   "Print a number without insignificant zeros",
		Example: `  mathcaptcha normalize 10.123000   # 10.123`,
		Args:    cobra.ExactArgs(1),
		// Needs no config.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := decimal.Normalize(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}
