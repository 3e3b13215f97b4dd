package main

import (
	"strconv"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/spf13/cobra"
)

var classesProfile string

func init() {
	cmd := newClassesCmd()
	cmd.Flags().StringVarP(&classesProfile, "profile", "p", "", "Only show this profile (fast, precise)")
	rootCmd.AddCommand(cmd)
}

func newClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "Print size-class tables",
		Long: `The classes command prints the size-class table of each profile: the
payload range of every class and the search strategy used for it.

Example:
  arenactl classes
  arenactl classes --profile fast
  arenactl classes --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses()
		},
	}
}

type classRow struct {
	Class    int    `json:"class"`
	Min      int    `json:"min"`
	Max      int    `json:"max,omitempty"` // omitted for the overflow class
	Strategy string `json:"strategy"`
}

type profileTable struct {
	Profile string     `json:"profile"`
	Mode    string     `json:"mode"`
	Classes []classRow `json:"classes"`
}

func runClasses() error {
	profiles := []alloc.Profile{alloc.ProfileFast, alloc.ProfilePrecise}
	if classesProfile != "" {
		p, err := alloc.ProfileByName(classesProfile)
		if err != nil {
			return err
		}
		profiles = []alloc.Profile{p}
	}

	tables := make([]profileTable, 0, len(profiles))
	for _, p := range profiles {
		tables = append(tables, buildTable(p))
	}

	if jsonOut {
		return printJSON(tables)
	}

	for i, t := range tables {
		if i > 0 {
			printInfo("\n")
		}
		printInfo("%s (%d classes)\n", t.Profile, len(t.Classes))
		for _, r := range t.Classes {
			bound := "inf"
			if r.Max > 0 {
				bound = strconv.Itoa(r.Max)
			}
			printInfo("  SC[%2d] %5d..%-5s %s\n", r.Class, r.Min, bound, r.Strategy)
		}
	}
	return nil
}

func buildTable(p alloc.Profile) profileTable {
	t := profileTable{Profile: p.Name, Mode: p.Mode.String()}
	lo := 1
	for cls := range p.NumClasses() {
		hi, finite := p.UpperBound(cls)
		row := classRow{Class: cls, Min: lo, Strategy: strategyFor(p, cls)}
		if finite {
			row.Max = hi
			lo = hi + 1
		}
		t.Classes = append(t.Classes, row)
	}
	return t
}

func strategyFor(p alloc.Profile, cls int) string {
	switch {
	case p.Mode == alloc.ModeFast:
		return "head"
	case cls <= p.FirstFitMaxClass:
		return "first-fit"
	default:
		return "best-fit"
	}
}
