package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"git.home.luguber.info/inful/siteimport/internal/linkreport"
	"git.home.luguber.info/inful/siteimport/internal/record"
)

func printResults(out io.Writer, results []*record.Result) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(out, "Nothing to import.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STATUS\tKIND\tSOURCE\tPERMALINK\tPATH")
	for _, r := range results {
		status := "ok"
		switch {
		case r.HasError():
			status = "error"
		case r.Collision:
			status = "exists"
		}
		target := r.RelativePath
		if r.HasError() {
			target = r.Message()
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", status, r.Kind, r.SourcePermalink, dash(r.Permalink), target)
	}
	_ = tw.Flush()
}

func printSummary(out io.Writer, s runSummary, dryRun bool) {
	suffix := ""
	if dryRun {
		suffix = " (dry run, nothing written)"
	}
	_, _ = fmt.Fprintf(out, "\n%s%s\n", s, suffix)
}

func printFindings(out io.Writer, findings []linkreport.Finding) {
	_, _ = fmt.Fprintf(out, "\n%d links still point at the source site:\n", len(findings))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PATH\tTAG\tURL")
	for _, f := range findings {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Path, f.Tag, f.URL)
	}
	_ = tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
