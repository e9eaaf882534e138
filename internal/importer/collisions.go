package importer

import "git.home.luguber.info/inful/siteimport/internal/record"

// flagSharedPaths marks every successful result whose output path is shared
// with another result of the same run. Paths that existed before the run
// were flagged during transform.
func flagSharedPaths(results []*record.Result) {
	counts := make(map[string]int, len(results))
	for _, res := range results {
		if !res.HasError() {
			counts[res.RelativePath]++
		}
	}
	for _, res := range results {
		if !res.HasError() && counts[res.RelativePath] > 1 {
			res.Collision = true
		}
	}
}
