// Package compat decides whether a storage client library needs bucket
// validation when a bucket handle is acquired.
//
// Older client releases return handles for buckets that do not exist and
// only fail on first use; validating up front gives them the same failure
// point as newer releases.
package compat

import (
	"github.com/hashicorp/go-version"

	"github.com/jmgilman/objfs/errors"
)

// DefaultThreshold is the first client version that no longer needs
// bucket validation.
const DefaultThreshold = "2.25.0"

// Policy compares client versions against a threshold. It is immutable.
type Policy struct {
	threshold *version.Version
}

// New returns a policy for threshold. An empty threshold selects
// DefaultThreshold.
func New(threshold string) (*Policy, error) {
	if threshold == "" {
		threshold = DefaultThreshold
	}
	v, err := version.NewVersion(threshold)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig,
			"invalid validation threshold", map[string]interface{}{"threshold": threshold})
	}
	return &Policy{threshold: v}, nil
}

// Threshold returns the threshold version as given.
func (p *Policy) Threshold() string {
	return p.threshold.Original()
}

// RequiresValidation reports whether clientVersion is strictly below the
// threshold. Components are compared numerically, so 2.3.0 is below 2.25.0.
// A version that cannot be parsed requires validation.
func (p *Policy) RequiresValidation(clientVersion string) bool {
	v, err := version.NewVersion(clientVersion)
	if err != nil {
		return true
	}
	return v.LessThan(p.threshold)
}
