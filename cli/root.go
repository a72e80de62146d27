package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalvas/apidoc/api"
	"github.com/vitalvas/apidoc/metadata"
)

// Execute runs the CLI of an application documenting config.
func Execute(config *api.Config, opts ...metadata.Option) error {
	return NewRootCmd(config, opts...).Execute()
}

// NewRootCmd constructs the root command. Applications embed it, or only the
// generate command, in their own binaries since endpoints are declared in code.
func NewRootCmd(config *api.Config, opts ...metadata.Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "apidoc",
		Short:         "Generate OpenAPI documents from Go request and response types",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.SetFlagErrorFunc(flagError)

	cmd.AddCommand(NewGenerateCmd(config, opts...))

	return cmd
}

func flagError(c *cobra.Command, err error) error {
	return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
}
