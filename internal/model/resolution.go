package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RejectKind classifies why a candidate was rejected or degraded.
type RejectKind int

// Available RejectKind values.
const (
	// RejectPrereqMissing marks a declared prerequisite fileset that is not
	// installed.
	RejectPrereqMissing RejectKind = iota
	// RejectPrereqOutOfRange marks an installed level outside the declared
	// [min, max] range.
	RejectPrereqOutOfRange
	// RejectFileLocked marks a file already owned by an installed fix.
	RejectFileLocked
	// RejectTemporalInterlock marks a file already claimed by a more recent
	// candidate in the same batch.
	RejectTemporalInterlock
)

// MarshalYAML renders the kind as its string form in stored reports.
func (k RejectKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML accepts the string form written by MarshalYAML.
func (k *RejectKind) UnmarshalYAML(value *yaml.Node) error {
	for candidate := RejectPrereqMissing; candidate <= RejectTemporalInterlock; candidate++ {
		if candidate.String() == value.Value {
			*k = candidate
			return nil
		}
	}

	return fmt.Errorf("unknown reject kind %q", value.Value)
}

func (k RejectKind) String() string {
	switch k {
	case RejectPrereqMissing:
		return "prerequisite-missing"
	case RejectPrereqOutOfRange:
		return "prerequisite-out-of-range"
	case RejectFileLocked:
		return "file-locked"
	case RejectTemporalInterlock:
		return "temporal-interlock"
	}

	return "unknown"
}

// Reject is one rejection entry. A candidate with several files locked by
// installed fixes yields one entry per locked file.
type Reject struct {
	Kind   RejectKind `yaml:"kind"`
	Reason string     `yaml:"reason"`
}

// Resolution is the outcome of one resolver run: the strict installation
// order, the full rejection list and the user-facing messages accumulated
// along the way. Rejections are data, never errors.
type Resolution struct {
	// Install holds the candidate paths in the order they must be installed,
	// most recently packaged first. Consumers must preserve this order.
	Install []Path `yaml:"install"`
	// Rejects is sorted lexicographically by reason string.
	Rejects []Reject `yaml:"rejects,omitempty"`
	// Messages are human-readable diagnostics for the operator.
	Messages []string `yaml:"messages,omitempty"`
}

// RejectReasons returns just the reason strings, in Rejects order.
func (r Resolution) RejectReasons() []string {
	reasons := make([]string, 0, len(r.Rejects))
	for _, reject := range r.Rejects {
		reasons = append(reasons, reject.Reason)
	}

	return reasons
}
