package reducers

import "slices"

// dedupe returns list without repeats, or nil when list is empty.
func dedupe(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, s := range list {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
