package commands

import "github.com/spf13/cobra"

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install, replace, and remove packages to match the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := options(cmd)
			opts.AssumeYes, _ = cmd.Flags().GetBool("yes")

			_, err := c.app.Install(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Apply the plan without asking for confirmation")
	return cmd
}
