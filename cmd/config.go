package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathcaptcha/internal/config"
)

func newConfigCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration after merging defaults, the --config file and
MATHCAPTCHA_* environment variables. The output is itself a valid
config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Marshal(e.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
