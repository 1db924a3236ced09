// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/kosovotools/kasfetch/internal/catalog"
	"github.com/kosovotools/kasfetch/internal/fetch"
	"github.com/kosovotools/kasfetch/internal/pxweb"
	"github.com/kosovotools/kasfetch/internal/store"
	"github.com/kosovotools/kasfetch/internal/store/dir"
	"github.com/kosovotools/kasfetch/internal/store/sqlite"
)

// fetchOptions holds the options set for the current fetch run.
type fetchOptions struct {
	out      string
	months   int
	partners []string
	lang     string
	tables   string
	sqlite   string

	all         bool
	noPartners  bool
	monthsSet   bool
	partnersSet bool
}

// validate validates the fetch options and returns an error if something is wrong.
func (o *fetchOptions) validate() error {
	if o.months < 0 {
		return fmt.Errorf("%w: %d", errInvalidMonths, o.months)
	}

	if o.all && o.monthsSet {
		return fmt.Errorf("%w: --%s and --%s", errConflictFlags, allFlagName, monthsFlagName)
	}

	if o.noPartners && o.partnersSet {
		return fmt.Errorf("%w: --%s and --%s", errConflictFlags, noPartnersFlagName, partnersFlagName)
	}

	return nil
}

// execute runs one batch fetch based on the fetch options.
func (o *fetchOptions) execute(ctx context.Context) error {
	tables := catalog.Default()
	if o.tables != "" {
		if err := tables.LoadOverrides(o.tables); err != nil {
			return err
		}
	}

	client, err := pxweb.NewClient()
	if err != nil {
		return err
	}

	datasets := dir.NewStore(o.out)
	if o.sqlite != "" {
		db, err := sqlite.NewStore(ctx, o.sqlite)
		if err != nil {
			return err
		}
		defer db.Close()

		datasets = store.Multi(datasets, db)
	}

	fetcher := fetch.New(client, tables, datasets, fetch.Options{
		Lang:   o.lang,
		Months: o.months,
	})

	return fetcher.Run(ctx, o.partners)
}

// inspectOptions holds the options set for the current inspect run.
type inspectOptions struct {
	table    string
	out      string
	months   int
	partners []string
	lang     string

	writer io.Writer
}

// validate validates the inspect options and returns an error if something is wrong.
func (o *inspectOptions) validate() error {
	if o.table == "" {
		return errNoTable
	}

	if o.months < 0 {
		return fmt.Errorf("%w: %d", errInvalidMonths, o.months)
	}

	if o.table == allTablesName {
		return nil
	}

	if _, ok := availableTables[o.table]; !ok {
		return fmt.Errorf("%w: %s", errUnknownTable, o.table)
	}

	return nil
}

// execute dumps the raw API payloads for the selected tables.
func (o *inspectOptions) execute(ctx context.Context) error {
	client, err := pxweb.NewClient()
	if err != nil {
		return err
	}

	names := []string{o.table}
	if o.table == allTablesName {
		names = inspectOrder
	}

	tables := catalog.Default()
	for _, name := range names {
		if err := o.inspectTable(ctx, client, tables, name); err != nil {
			return err
		}
	}

	return nil
}
