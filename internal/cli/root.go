package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NetAngels/openssh-wrapper/internal/errors"
	"github.com/NetAngels/openssh-wrapper/internal/ui"
	"github.com/NetAngels/openssh-wrapper/pkg/sshwrap"
)

// Global flags available to all subcommands.
var (
	configFlag  string
	noColorFlag bool
)

// remoteExitCode carries the remote command's exit status from runCommand
// to Execute, so the process can mirror it.
var remoteExitCode int

var rootCmd = &cobra.Command{
	Use:   "sshwrap",
	Short: "Run commands and copy files over OpenSSH",
	Long: `sshwrap wraps the system ssh and scp binaries to run commands and
copy files on remote hosts, without reimplementing the SSH protocol.

Connection defaults can be stored per host in .sshwrap.yaml; flags
always win over the config file.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag || machineMode {
			ui.DisableColors()
			return
		}
		ui.ConfigureColors()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default: .sshwrap.yaml)")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits the process. The exit status
// mirrors the remote command where one ran: its exit code on success
// paths, 255 for connection failures, 1 for everything else.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		os.Exit(remoteExitCode)
	}

	if machineMode {
		WriteJSONFromError(os.Stdout, err)
	} else {
		fmt.Fprintln(os.Stderr, ui.Fail(err.Error()))
	}

	if errors.IsCode(err, errors.ErrConnection) {
		os.Exit(sshwrap.ExitConnectionFailure)
	}
	os.Exit(1)
}
