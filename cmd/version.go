/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/techscan/pkg/buildinfo"
)

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the techscan version",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().Bool("extended", false, "Show detailed build information")
	cmd.Flags().Bool("json", false, "Output version information in JSON format")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	out := cmd.OutOrStdout()
	info := buildinfo.Get()

	if jsonOutput {
		jsonData, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode version info: %w", err)
		}
		_, err = fmt.Fprintln(out, string(jsonData))
		return err
	}

	if _, err := fmt.Fprintf(out, "techscan %s\n", info.Version); err != nil {
		return err
	}
	if !extended {
		return nil
	}

	if info.ModuleVersion != "" {
		_, _ = fmt.Fprintf(out, "Module: %s\n", info.ModuleVersion)
	}
	if info.Commit != "" {
		_, _ = fmt.Fprintf(out, "Commit: %s\n", info.Commit)
	}
	_, _ = fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
	_, err := fmt.Fprintf(out, "Platform: %s/%s\n", info.Platform, info.Arch)
	return err
}
