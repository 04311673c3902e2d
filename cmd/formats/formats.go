// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package formats implements the formats command, which lists the target
// formats the convert command accepts.
package formats

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/fetchmux/fetchmux/internal/ctxlog"
	"github.com/fetchmux/fetchmux/internal/mediafmt"
)

const formatsFileFlag = "formats-file"

// FormatsCmd lists the known target formats and their transcoder flags.
var FormatsCmd = &cli.Command{
	Name:        "formats",
	Description: `List the target formats available to the convert command.`,
	Usage:       "fetchmux formats [--formats-file <file>]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      formatsFileFlag,
			Usage:     "YAML file with extra format profiles, merged over the builtin set",
			TakesFile: true,
			OnlyOnce:  true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	table, err := loadTable(cmd.String(formatsFileFlag))
	if err != nil {
		ctxlog.Logger(ctx).Error("failed to load formats file", "error", err)
		return cli.Exit(err.Error(), 1)
	}

	for _, name := range table.Names() {
		p, _ := table.Lookup(name)
		fmt.Fprintf(cmd.Writer, "%-10s %-6s %s\n", p.Name, p.Extension, strings.Join(p.Args, " "))
	}

	return nil
}

func loadTable(path string) (*mediafmt.Table, error) {
	if path == "" {
		return mediafmt.Builtin(), nil
	}

	return mediafmt.Load(afero.NewOsFs(), path)
}
