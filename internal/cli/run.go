package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NetAngels/openssh-wrapper/pkg/sshwrap"
)

var (
	runFlags        ConnectionFlags
	runInterpreter  string
	runForwardAgent bool
)

var runCmd = &cobra.Command{
	Use:   "run <host> <command>...",
	Short: "Run a command on a remote host",
	Long: `Run a command on the remote host through the system ssh binary.

The command text is piped to the remote interpreter's stdin, so shell
syntax works without local quoting gymnastics. The process exits with
the remote command's exit code, or 255 when the connection itself fails.

Examples:
  sshwrap run web.example.com "uptime"
  sshwrap run -l deploy web.example.com "systemctl restart app"
  sshwrap run --interpreter /usr/bin/python3 web.example.com "print('hi')"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(args[0], strings.Join(args[1:], " "))
	},
}

func init() {
	AddConnectionFlags(runCmd, &runFlags)
	runCmd.Flags().StringVar(&runInterpreter, "interpreter", "", "remote interpreter to pipe the command to (default /bin/bash)")
	runCmd.Flags().BoolVarP(&runForwardAgent, "forward-agent", "A", false, "forward the SSH agent")

	rootCmd.AddCommand(runCmd)
}

// runResult is the --json payload for a completed remote command.
type runResult struct {
	Host     string `json:"host"`
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

func runCommand(host, command string) error {
	opts, profile, err := resolveOptions(host, runFlags)
	if err != nil {
		return err
	}

	conn, err := sshwrap.NewConnection(host, opts)
	if err != nil {
		return err
	}

	interpreter := firstOf(runInterpreter, profile.Interpreter)
	forwardAgent := runForwardAgent || profile.ForwardAgent

	result, err := conn.RunWith(context.Background(), command, sshwrap.RunOptions{
		Interpreter:  interpreter,
		ForwardAgent: forwardAgent,
	})
	if err != nil {
		return err
	}

	if MachineMode() {
		remoteExitCode = result.ExitCode
		return WriteJSONSuccess(os.Stdout, runResult{
			Host:     host,
			Command:  command,
			ExitCode: result.ExitCode,
			Stdout:   result.Text(),
			Stderr:   result.ErrText(),
		})
	}

	if len(result.Stdout) > 0 {
		os.Stdout.Write(result.Stdout)
		os.Stdout.Write([]byte("\n"))
	}
	if len(result.Stderr) > 0 {
		os.Stderr.Write(result.Stderr)
		os.Stderr.Write([]byte("\n"))
	}

	remoteExitCode = result.ExitCode
	return nil
}
