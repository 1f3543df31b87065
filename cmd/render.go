package cmd

import (
	"github.com/spf13/cobra"

	"exposure/pkg/apperrors"
	"exposure/pkg/scanservice"
)

func createRenderCmd(root *rootOptions) *cobra.Command {
	opts := &outputOptions{}
	var input string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a saved scan report",
		Long:  `Renders a report previously saved as JSON (e.g. with scan --format json) without contacting the scan service.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return apperrors.NewValidationError("input", "--input is required")
			}
			if err := opts.validate(); err != nil {
				return err
			}
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}

			static, err := scanservice.LoadStatic(input)
			if err != nil {
				return err
			}
			return runScan(cmd, cfg, static, static.Target(), opts)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path of the saved report JSON")
	opts.addFlags(cmd)

	return cmd
}
