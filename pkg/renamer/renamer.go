package renamer

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// rule is one compiled whole-word substitution.
type rule struct {
	old string
	new string
	re  *regexp.Regexp
}

// rules holds all substitutions in deterministic order: parameter renames
// first, then command renames, each sorted by old name. Built once at
// process start.
var rules []rule

func init() {
	rules = buildRules()
}

func buildRules() []rule {
	out := make([]rule, 0, len(ParameterRenames)+len(CommandRenames))
	for _, m := range []map[string]string{ParameterRenames, CommandRenames} {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, rule{
				old: k,
				new: m[k],
				re:  regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`),
			})
		}
	}
	return out
}

// Change records one applied rename within a file.
type Change struct {
	Old   string `json:"old"`
	New   string `json:"new"`
	Count int    `json:"count"`
}

// Apply performs all whole-word substitutions on content and returns the
// rewritten text along with the renames that matched. Applying the result
// again is a no-op: no new name maps onto another deprecated name.
func Apply(content string) (string, []Change) {
	var changes []Change
	for _, r := range rules {
		matches := r.re.FindAllStringIndex(content, -1)
		if len(matches) == 0 {
			continue
		}
		content = r.re.ReplaceAllLiteralString(content, r.new)
		changes = append(changes, Change{Old: r.old, New: r.new, Count: len(matches)})
	}
	return content, changes
}

// Result describes the outcome of rewriting one file.
type Result struct {
	Path    string   `json:"path"`
	Changed bool     `json:"changed"`
	Renames []Change `json:"renames,omitempty"`

	// Before and After hold the decoded content, kept for diff previews.
	Before string `json:"-"`
	After  string `json:"-"`
}

// Rewriter rewrites script files in place using the rename maps.
type Rewriter struct {
	// Encoding is the text encoding of the script files (required).
	Encoding encoding.Encoding
	// DryRun leaves files untouched and only reports what would change.
	DryRun bool
}

// RewriteFile reads path in the configured encoding, applies the rename
// maps and, when something matched and DryRun is off, writes the file back
// in the same encoding preserving its mode.
func (r *Rewriter) RewriteFile(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stating %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	raw, err := io.ReadAll(transform.NewReader(f, r.Encoding.NewDecoder()))
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	before := string(raw)
	after, changes := Apply(before)

	result := &Result{
		Path:    path,
		Changed: after != before,
		Renames: changes,
		Before:  before,
		After:   after,
	}

	if !result.Changed || r.DryRun {
		return result, nil
	}

	var encoded strings.Builder
	w := transform.NewWriter(&encoded, r.Encoding.NewEncoder())
	if _, err := io.WriteString(w, after); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(encoded.String()), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	return result, nil
}
