package rules

import (
	"fmt"
	"path/filepath"
)

// Classification is the verdict for a single file name.
type Classification int

const (
	Hollow Classification = iota
	FullCopy
	Excluded
)

var classNames = [...]string{
	Hollow:   "hollow",
	FullCopy: "full",
	Excluded: "excluded",
}

func (c Classification) String() string {
	if c >= 0 && int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Names of the two rule sets, as they appear in settings files.
const (
	FullCopySetName = "full_copy_rules"
	ExcludeSetName  = "exclude_rules"
)

// RuleSet pairs the exclude and full-copy sets. It is immutable once built.
type RuleSet struct {
	exclude *Set
	full    *Set
}

// New compiles both rule sets. The exclude set is compiled first, matching
// evaluation order, so the returned PatternError names the first set that
// would have been consulted.
func New(full, exclude []string) (*RuleSet, error) {
	ex, err := Compile(ExcludeSetName, exclude)
	if err != nil {
		return nil, err
	}
	fc, err := Compile(FullCopySetName, full)
	if err != nil {
		return nil, err
	}
	return &RuleSet{exclude: ex, full: fc}, nil
}

// Classify returns the verdict for name. Only the base name is matched.
// Exclusion always wins over full copy.
func (r *RuleSet) Classify(name string) Classification {
	base := filepath.Base(name)
	if r.exclude.Match(base) {
		return Excluded
	}
	if r.full.Match(base) {
		return FullCopy
	}
	return Hollow
}

// Exclude returns the compiled exclude set.
func (r *RuleSet) Exclude() *Set { return r.exclude }

// Full returns the compiled full-copy set.
func (r *RuleSet) Full() *Set { return r.full }

func (r *RuleSet) String() string {
	return fmt.Sprintf("%s=%d %s=%d", FullCopySetName, r.full.Len(), ExcludeSetName, r.exclude.Len())
}
