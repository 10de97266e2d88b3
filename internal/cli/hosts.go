package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/NetAngels/openssh-wrapper/internal/ui"
	"github.com/NetAngels/openssh-wrapper/pkg/sshwrap"
)

var hostsConfigFlag string

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List hosts from the SSH client config",
	Long: `List the Host entries from ~/.ssh/config (or another ssh_config
file given with --ssh-config). Wildcard patterns are skipped; entries
after a Match directive are not parsed.

Examples:
  sshwrap hosts
  sshwrap hosts -F ./ssh_config
  sshwrap hosts --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return hostsCommand()
	},
}

func init() {
	hostsCmd.Flags().StringVarP(&hostsConfigFlag, "ssh-config", "F", "", "ssh_config file to read (default ~/.ssh/config)")

	rootCmd.AddCommand(hostsCmd)
}

func hostsCommand() error {
	path := hostsConfigFlag
	if path == "" {
		path = sshwrap.DefaultSSHConfigPath()
	}

	hosts, err := sshwrap.ListHosts(path)
	if err != nil {
		return err
	}

	if MachineMode() {
		return WriteJSONSuccess(os.Stdout, hosts)
	}

	if len(hosts) == 0 {
		fmt.Printf("No hosts found in %s\n", path)
		return nil
	}

	nameStyle := lipgloss.NewStyle().Bold(true)
	for _, h := range hosts {
		fmt.Printf("%s\n", nameStyle.Render(h.Alias))
		fmt.Printf("  %s\n", ui.Muted(h.Description()))
	}
	return nil
}
