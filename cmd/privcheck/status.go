package main

import (
	"github.com/spf13/cobra"

	"github.com/isseis/go-escalate/privilege"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the privilege state of this process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			status := privilege.GetStatus(rt.System, rt.privilegeConfig().Wrapper)
			rt.logger.Debug("Status collected", "state", status.State, "wrapper_found", status.WrapperFound)
			return writeReport(cmd.OutOrStdout(), rt.outputFormat, report{RunID: rt.RunID, Status: status}, rt.color)
		},
	}
}
