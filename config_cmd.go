package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/looker-cli/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration after all overrides",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented config file with default values",
		Args:  cobra.NoArgs,
		// The config may be missing or broken; that is why we are here.
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE:        runConfigInit,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	if cc.Flags.JSON {
		return printJSON(cc.Out, cc.Cfg)
	}

	return config.RenderEffective(cc.Cfg, cc.Out)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	path := cc.Flags.ConfigPath
	if path == "" {
		path = config.ReadEnvOverrides().ConfigPath
	}

	if path == "" {
		path = config.DefaultConfigPath()
	}

	if path == "" {
		return fmt.Errorf("cannot determine config path; pass --config")
	}

	if err := config.WriteTemplate(path, cc.Logger); err != nil {
		return err
	}

	fmt.Fprintf(cc.Out, "Created %s\n", path)

	return nil
}
