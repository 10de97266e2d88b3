// Package cli implements the sshwrap command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to the pkg/sshwrap library for the actual work:
//
//	sshwrap run <host> <command>          - Run a command over SSH
//	sshwrap copy <host> <src>... <target> - Copy files with scp
//	sshwrap hosts                         - List hosts from ~/.ssh/config
//	sshwrap init                          - Create .sshwrap.yaml config
//	sshwrap version                       - Print version information
//
// Global flags (--config, --json, --no-color) are defined on the root
// command. Connection flags (--login, --port, --identity, ...) are shared
// by run and copy via AddConnectionFlags; values from .sshwrap.yaml fill
// in anything the flags leave unset.
package cli
