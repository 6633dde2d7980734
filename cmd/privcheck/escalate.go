package main

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/isseis/go-escalate/internal/environment"
	"github.com/isseis/go-escalate/internal/logging"
	"github.com/isseis/go-escalate/privilege"
)

const (
	phaseBefore = "before"
	phaseAfter  = "after"
)

func newEscalateCommand() *cobra.Command {
	var (
		prefixes  []string
		wildcards []string
	)

	cmd := &cobra.Command{
		Use:   "escalate",
		Short: "Re-run this command with root privileges",
		Long: `Escalate reports the current privilege state, obtains root privileges
and reports again. A plain user re-executes privcheck through the wrapper;
the parent then exits with the child's exit code. A setuid binary claims
root in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if rt.System == nil {
				return &logging.PreExecutionError{
					Type:      logging.ErrorTypeSystemError,
					Message:   "privilege escalation is not available on this platform",
					Component: "privilege",
					RunID:     rt.RunID,
					Err:       privilege.ErrPlatformNotSupported,
				}
			}

			cfg := rt.privilegeConfig()
			sel := escalationSelection(rt.profile.Selection(), prefixes, wildcards)

			out := cmd.OutOrStdout()
			before := privilege.GetStatus(rt.System, cfg.Wrapper)
			if err := writeReport(out, rt.outputFormat, report{Phase: phaseBefore, RunID: rt.RunID, Status: before}, rt.color); err != nil {
				return err
			}

			esc := privilege.New(cfg,
				privilege.WithSystem(rt.System),
				privilege.WithLogger(rt.logger),
				privilege.WithAudit(rt.logger))
			state, err := esc.Escalate(sel)
			if err != nil {
				return &logging.PreExecutionError{
					Type:      logging.ErrorTypeEscalation,
					Message:   "failed to escalate privileges",
					Component: "privilege",
					RunID:     rt.RunID,
					Err:       err,
				}
			}
			rt.logger.Info("Running with root privileges", "initial_state", state)

			after := privilege.GetStatus(rt.System, cfg.Wrapper)
			return writeReport(out, rt.outputFormat, report{Phase: phaseAfter, RunID: rt.RunID, Status: after}, rt.color)
		},
	}

	cmd.Flags().StringSliceVar(&prefixes, "env-prefix", nil, "Forward variables starting with these prefixes (overrides the profile)")
	cmd.Flags().StringSliceVar(&wildcards, "env-wildcard", nil, "Forward variables matching these glob patterns (overrides the profile)")
	cmd.MarkFlagsMutuallyExclusive("env-prefix", "env-wildcard")

	return cmd
}

// escalationSelection returns the variables forwarded to the child. Flags
// override the profile. A non-empty selection also forwards the run ID; an
// empty one stays empty so pkexec gets no env command line.
func escalationSelection(profile environment.Selection, prefixes, wildcards []string) environment.Selection {
	sel := profile
	switch {
	case len(prefixes) > 0:
		sel = environment.Prefixes(prefixes...)
	case len(wildcards) > 0:
		sel = environment.Wildcards(wildcards...)
	}
	if sel.IsEmpty() {
		return sel
	}
	// The run ID name contains no glob metacharacters, so it selects
	// exactly itself in either mode. Patterns may be shared with the
	// profile or the flag values.
	sel.Patterns = append(slices.Clone(sel.Patterns), logging.RunIDEnvVar)
	return sel
}
