package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SafeGiantJacket/renewaldesk/config"
	"github.com/SafeGiantJacket/renewaldesk/pkg/buildinfo"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveOutputFormat(nil)
			if err != nil {
				return err
			}
			if format != config.OutputFormatText {
				return writeFormatted(os.Stdout, format, buildinfo.Get())
			}
			fmt.Println("renew", buildinfo.String())
			fmt.Println("go:", buildinfo.Get().GoVersion)
			return nil
		},
	}
}
