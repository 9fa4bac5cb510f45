// Package flags provides helpers for binding standardized flags to Cobra commands.
package flags

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/temirov/relkit/internal/utils"
)

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview operations without making changes"
	// WorkingDirectoryFlagName exposes the shared directory flag name.
	WorkingDirectoryFlagName = "cwd"
	// WorkingDirectoryFlagUsage describes the shared directory flag purpose.
	WorkingDirectoryFlagUsage = "Directory to operate on (defaults to the current working directory)"
)

// BindDryRunFlag attaches the dry-run flag to the command as a persistent flag.
func BindDryRunFlag(command *cobra.Command, defaultValue bool) {
	if command == nil {
		return
	}
	command.PersistentFlags().Bool(DryRunFlagName, defaultValue, DryRunFlagUsage)
}

// BindWorkingDirectoryFlag attaches the directory flag to the command.
func BindWorkingDirectoryFlag(command *cobra.Command) {
	if command == nil {
		return
	}
	command.Flags().String(WorkingDirectoryFlagName, "", WorkingDirectoryFlagUsage)
}

// WorkingDirectoryValue returns the trimmed directory flag value, or an empty string when unset.
func WorkingDirectoryValue(command *cobra.Command) (string, error) {
	if command == nil || command.Flags().Lookup(WorkingDirectoryFlagName) == nil {
		return "", nil
	}
	flagValue, flagError := command.Flags().GetString(WorkingDirectoryFlagName)
	if flagError != nil {
		return "", flagError
	}
	return strings.TrimSpace(flagValue), nil
}

// ChangedBool reports the value of a boolean flag and whether the user set it,
// consulting local, inherited, and root persistent flag sets.
func ChangedBool(command *cobra.Command, flagName string) (bool, bool) {
	if command == nil {
		return false, false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.Flags(),
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil || !flagSet.Changed(flagName) {
			continue
		}
		flagValue, flagError := flagSet.GetBool(flagName)
		if flagError != nil {
			continue
		}
		return flagValue, true
	}

	return false, false
}

// DryRunValue resolves the effective dry-run toggle: an explicit flag wins,
// then root execution flags carried in the command context, then the
// configured value.
func DryRunValue(command *cobra.Command, configuredValue bool) bool {
	if flagValue, flagChanged := ChangedBool(command, DryRunFlagName); flagChanged {
		return flagValue
	}
	if command == nil {
		return configuredValue
	}
	executionFlags, executionFlagsAvailable := utils.NewCommandContextAccessor().ExecutionFlags(command.Context())
	if executionFlagsAvailable && executionFlags.DryRunSet {
		return executionFlags.DryRun
	}
	return configuredValue
}
