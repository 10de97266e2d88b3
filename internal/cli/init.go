package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/NetAngels/openssh-wrapper/internal/config"
	"github.com/NetAngels/openssh-wrapper/internal/ui"
)

var (
	initHostFlag  string
	initLoginFlag string
	initForce     bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .sshwrap.yaml configuration",
	Long: `Create a .sshwrap.yaml file in the current directory with an
example host profile to edit.

Examples:
  sshwrap init
  sshwrap init --host web.example.com --login deploy
  sshwrap init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initHostFlag, initLoginFlag, initForce)
	},
}

func init() {
	initCmd.Flags().StringVar(&initHostFlag, "host", "", "host to pre-fill in the config")
	initCmd.Flags().StringVar(&initLoginFlag, "login", "", "login to pre-fill for the host")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	rootCmd.AddCommand(initCmd)
}

func initCommand(host, login string, force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	cfg := config.Starter(host, login)
	if err := config.Write(cfg, configPath, force); err != nil {
		return err
	}

	fmt.Println(ui.Success("Created " + configPath))
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  edit " + config.ConfigFileName + "        - Fill in your hosts")
	fmt.Println("  sshwrap run <host> <cmd>  - Run a remote command")
	fmt.Println("  sshwrap hosts             - List ~/.ssh/config entries")
	return nil
}
