// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/util"
)

// Command: config [subcommand]
//
// Subcommands:
//
//	show (default)    Display the effective configuration
//	get <key>         Print one value
//	set <key> <value> Change a value in the config file
//	path              Print the config file location
//	keys              List every accepted key
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and modify configuration",
		Example: `  devconsole config show
  devconsole config set console.theme light
  devconsole config set log.level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, a.cfg, a.cfgPath, false)
		},
	}

	var asTOML bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, a.cfg, a.cfgPath, asTOML)
		},
	}
	show.Flags().BoolVar(&asTOML, "toml", false, "Print as TOML")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Get(args[0])
			if err != nil {
				return &CommandError{Command: "config", Action: "get", Reason: args[0], Err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a value in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(cmd, a.cfgPath, args[0], args[1])
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.cfgPath)
			return nil
		},
	}

	keys := &cobra.Command{
		Use:   "keys",
		Short: "List every configuration key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(config.Keys(), "\n"))
			return nil
		},
	}

	cmd.AddCommand(show, get, set, path, keys)
	return cmd
}

// showConfig prints every key grouped by its TOML table.
func showConfig(cmd *cobra.Command, cfg *config.Config, path string, asTOML bool) error {
	out := cmd.OutOrStdout()
	if asTOML {
		return toml.NewEncoder(out).Encode(cfg)
	}

	keys := config.Keys()
	width := 0
	for _, k := range keys {
		if w := util.StringWidth(k); w > width {
			width = w
		}
	}
	fmt.Fprintln(out, TitleStyle.Render("devconsole configuration"))
	section := ""
	for _, k := range keys {
		v, err := cfg.Get(k)
		if err != nil {
			return err
		}
		if table, _, _ := strings.Cut(k, "."); table != section {
			section = table
			fmt.Fprintln(out)
			fmt.Fprintln(out, SectionStyle.Render("["+table+"]"))
		}
		fmt.Fprintf(out, "%s  %s\n", RenderLabel(k, width), ValueStyle.Render(fmt.Sprintf("%q", fmt.Sprint(v))))
	}
	if path != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, DimStyle.Render("File: "+path))
	}
	return nil
}

// setConfig changes key in the file at path. The file is read again so
// flag overrides are not written back.
func setConfig(cmd *cobra.Command, path, key, value string) error {
	cfg, err := loadConfig(path)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := cfg.Set(key, value); err != nil {
		return &CommandError{Command: "config", Action: "set", Reason: key, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := config.Save(cfg, path); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", SuccessStyle.Render("Set"), key, value)
	return nil
}
