package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NetAngels/openssh-wrapper/internal/errors"
	"github.com/NetAngels/openssh-wrapper/internal/ui"
	"github.com/NetAngels/openssh-wrapper/pkg/sshwrap"
)

var (
	copyFlags     ConnectionFlags
	copyMode      string
	copyOwner     string
	copyStdinName string
)

var copyCmd = &cobra.Command{
	Use:   "copy <host> <source>... <target>",
	Short: "Copy files to a remote host",
	Long: `Copy local files to the remote host through the system scp binary.

Directories are copied recursively. A single "-" source reads from
stdin; use --name to control the file name it lands under on the
remote side.

Examples:
  sshwrap copy web.example.com deploy.tar.gz /tmp
  sshwrap copy web.example.com app.conf --mode 0600 /etc/app/
  cat dump.sql | sshwrap copy db.example.com - --name dump.sql /var/backups`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		host := args[0]
		sources := args[1 : len(args)-1]
		target := args[len(args)-1]
		return copyCommand(host, sources, target)
	},
}

func init() {
	AddConnectionFlags(copyCmd, &copyFlags)
	copyCmd.Flags().StringVar(&copyMode, "mode", "", "chmod copied files to this mode (e.g. 0644)")
	copyCmd.Flags().StringVar(&copyOwner, "owner", "", "chown copied files to this owner (e.g. user:group)")
	copyCmd.Flags().StringVar(&copyStdinName, "name", "stdin", "remote file name for a - (stdin) source")

	rootCmd.AddCommand(copyCmd)
}

// copyResult is the --json payload for a completed transfer.
type copyResult struct {
	Host    string   `json:"host"`
	Sources []string `json:"sources"`
	Target  string   `json:"target"`
}

func copyCommand(host string, args []string, target string) error {
	sources, err := buildSources(args)
	if err != nil {
		return err
	}

	opts, _, err := resolveOptions(host, copyFlags)
	if err != nil {
		return err
	}

	conn, err := sshwrap.NewConnection(host, opts)
	if err != nil {
		return err
	}

	err = conn.CopyWith(context.Background(), sources, target, sshwrap.CopyOptions{
		Mode:  copyMode,
		Owner: copyOwner,
	})
	if err != nil {
		return err
	}

	if MachineMode() {
		return WriteJSONSuccess(os.Stdout, copyResult{Host: host, Sources: args, Target: target})
	}

	fmt.Println(ui.Success(fmt.Sprintf("Copied %d file(s) to %s:%s", len(args), host, target)))
	return nil
}

// buildSources maps command arguments to copy sources, translating a
// single "-" into a stdin stream.
func buildSources(args []string) ([]sshwrap.Source, error) {
	sources := make([]sshwrap.Source, 0, len(args))
	stdinUsed := false
	for _, arg := range args {
		if arg != "-" {
			sources = append(sources, sshwrap.PathSource(arg))
			continue
		}
		if stdinUsed {
			return nil, errors.New(errors.ErrValidation,
				"stdin can only be used as a source once",
				"Pass - at most once in the source list")
		}
		stdinUsed = true
		sources = append(sources, sshwrap.StreamSource(os.Stdin, copyStdinName))
	}
	return sources, nil
}
