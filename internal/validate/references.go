package validate

import (
	"github.com/fyrsmithlabs/annocheck/internal/annotation"
)

// References loads an annotation file and returns the distinct references its
// supporting-text entries cite, in document order.
func References(path string) ([]string, error) {
	file, err := annotation.Load(path)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var refs []string
	for _, job := range collectJobs(file) {
		if _, ok := seen[job.reference]; ok {
			continue
		}
		seen[job.reference] = struct{}{}
		refs = append(refs, job.reference)
	}
	return refs, nil
}
