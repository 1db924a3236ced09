// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/kosovotools/kasfetch/internal/fetch"
)

const (
	outFlagName  = "out"
	outFlagUsage = "Directory where the dataset JSON files are written"
	defaultOut   = "data"

	monthsFlagName  = "months"
	monthsFlagUsage = "Limit every series to the last N months"
	defaultMonths   = 24

	allFlagName  = "all"
	allFlagUsage = "Fetch every available month instead of the trailing window"

	partnersFlagName  = "partners"
	partnersFlagUsage = "Comma separated partner country codes or labels for the imports-by-partner table, or ALL"

	noPartnersFlagName  = "no-partners"
	noPartnersFlagUsage = "Skip the imports-by-partner table"

	langFlagName  = "lang"
	langFlagUsage = "PxWeb language code"
	defaultLang   = "en"

	tablesFlagName  = "tables"
	tablesFlagUsage = "Path to a YAML file overriding the built-in table paths"

	sqliteFlagName  = "sqlite"
	sqliteFlagUsage = "If set, additionally persist every dataset into this SQLite database"

	debugOutFlagUsage = "Directory for the debug JSON dumps"
	defaultDebugOut   = "data/_kas_debug"
)

// fetchFlags holds the flags for the "fetch" command.
type fetchFlags struct {
	out        string
	months     int
	all        bool
	partners   string
	noPartners bool
	lang       string
	tables     string
	sqlite     string
}

// addFlags adds the cli flags to the cobra command.
func (f *fetchFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.out, outFlagName, defaultOut, outFlagUsage)
	flags.IntVar(&f.months, monthsFlagName, defaultMonths, monthsFlagUsage)
	flags.BoolVar(&f.all, allFlagName, false, allFlagUsage)
	flags.StringVar(&f.partners, partnersFlagName, "", partnersFlagUsage)
	flags.BoolVar(&f.noPartners, noPartnersFlagName, false, noPartnersFlagUsage)
	flags.StringVar(&f.lang, langFlagName, defaultLang, langFlagUsage)
	flags.StringVar(&f.tables, tablesFlagName, "", tablesFlagUsage)
	flags.StringVar(&f.sqlite, sqliteFlagName, "", sqliteFlagUsage)
}

// toOptions converts the fetch flags to fetchOptions.
func (f *fetchFlags) toOptions(cmd *cobra.Command) (*fetchOptions, error) {
	months := f.months
	if f.all {
		months = 0
	}

	var partners []string
	switch {
	case f.noPartners:
		partners = nil
	case f.partners == "":
		partners = []string{fetch.AllPartners}
	default:
		partners = splitList(f.partners)
	}

	return &fetchOptions{
		out:         f.out,
		months:      months,
		partners:    partners,
		lang:        f.lang,
		tables:      f.tables,
		sqlite:      f.sqlite,
		all:         f.all,
		noPartners:  f.noPartners,
		monthsSet:   cmd.Flags().Changed(monthsFlagName),
		partnersSet: cmd.Flags().Changed(partnersFlagName),
	}, nil
}

// inspectFlags holds the flags for the "inspect" command.
type inspectFlags struct {
	out      string
	months   int
	partners string
	lang     string
}

// addFlags adds the cli flags to the cobra command.
func (f *inspectFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.out, outFlagName, defaultDebugOut, debugOutFlagUsage)
	flags.IntVar(&f.months, monthsFlagName, 0, monthsFlagUsage)
	flags.StringVar(&f.partners, partnersFlagName, "", partnersFlagUsage)
	flags.StringVar(&f.lang, langFlagName, defaultLang, langFlagUsage)
}

// toOptions converts the inspect flags to inspectOptions enriching it with the
// passed arguments.
func (f *inspectFlags) toOptions(cmd *cobra.Command, args []string) (*inspectOptions, error) {
	table := ""
	if len(args) > 0 {
		table = strings.ToLower(args[0])
	}

	var partners []string
	if f.partners != "" {
		partners = splitList(f.partners)
	}

	return &inspectOptions{
		table:    table,
		out:      f.out,
		months:   f.months,
		partners: partners,
		lang:     f.lang,
		writer:   cmd.OutOrStdout(),
	}, nil
}
