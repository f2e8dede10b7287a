package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sonikatlas/sonik/pkg/patch"
	"github.com/sonikatlas/sonik/pkg/synth"
)

func runStyles(w io.Writer, catalog *patch.Catalog) error {
	router := synth.DefaultRouter()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STYLE\tPATCH\tDIFFICULTY\tPROGRAM")
	for _, s := range catalog.Styles() {
		difficulty := ""
		if p, ok := catalog.Patch(s.PatchID); ok {
			difficulty = string(p.Difficulty)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.PatchID, difficulty, router.Select(s.PatchID).Name())
	}
	return tw.Flush()
}
