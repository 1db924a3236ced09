// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var (
	errNoTable        = errors.New("no table name provided")
	errUnknownTable   = errors.New("unknown table name provided")
	errConflictFlags  = errors.New("conflicting flags provided")
	errInvalidMonths  = errors.New("months must be zero or positive")
	errNoPartnerMatch = errors.New("no partner matches found")
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoTable):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errUnknownTable), errors.Is(err, errConflictFlags):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

func validArgsFunc(tables map[string]string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var comps []string
		if len(args) == 0 {
			for name, description := range tables {
				if strings.HasPrefix(name, toComplete) {
					comps = append(comps, cobra.CompletionWithDesc(name, description))
				}
			}
		}

		return comps, cobra.ShellCompDirectiveNoFileComp
	}
}

// splitList splits a comma separated flag value dropping empty entries.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}

	return items
}
