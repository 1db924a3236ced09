// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	fetchCmdUsage = "fetch"
	fetchCmdShort = "download the KAS statistics tables and write tidy JSON datasets"
	fetchCmdLong  = `Download the KAS statistics tables and write tidy JSON datasets.
	One invocation performs one best-effort batch run: monthly imports, the
	electricity balance, the four fuel balances, the two tourism tables, and
	optionally imports by partner country. Every run ends with a kas_sources.json
	manifest describing what was fetched.

	The trade and energy tables abort the run when they fail; every other table
	is skipped with a logged error so one broken table does not lose the rest.`

	fetchCmdExample = `# Fetch the last 24 months into ./data
	kasfetch fetch

	# Fetch the full history of every table and all partner countries
	kasfetch fetch --all --partners ALL

	# Keep a SQLite copy of every dataset next to the JSON files
	kasfetch fetch --sqlite data/kas.db`

	inspectCmdUsageTemplate = "inspect [%s]"
	inspectCmdShort         = "dump the raw PxWeb payloads of one table for debugging"
	inspectCmdLong          = `Dump the raw PxWeb payloads of one table for debugging.
	For the chosen table (or every table with 'all') the command writes the
	metadata, the posted request body, and the raw data cube as received from
	the API into the debug directory, and prints a summary of the table
	dimensions, value codes, and available months.`

	inspectCmdExample = `# Inspect the trade table, last 6 months
	kasfetch inspect trade --months 6

	# Dump every table into a custom directory
	kasfetch inspect all --out /tmp/kas_debug`
)

// FetchCmd returns the Cobra command that runs one batch fetch.
func FetchCmd() *cobra.Command {
	flags := &fetchFlags{}
	cmd := &cobra.Command{
		Use:     fetchCmdUsage,
		Short:   heredoc.Doc(fetchCmdShort),
		Long:    heredoc.Doc(fetchCmdLong),
		Example: heredoc.Doc(fetchCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// InspectCmd returns the Cobra command that dumps raw API payloads.
func InspectCmd() *cobra.Command {
	flags := &inspectFlags{}
	allTables := slices.Sorted(maps.Keys(availableTables))
	cmd := &cobra.Command{
		Use:     fmt.Sprintf(inspectCmdUsageTemplate, strings.Join(allTables, "|")),
		Short:   heredoc.Doc(inspectCmdShort),
		Long:    heredoc.Doc(inspectCmdLong),
		Example: heredoc.Doc(inspectCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: validArgsFunc(availableTables),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
