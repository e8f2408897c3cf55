// Package uri parses and formats object storage addresses of the form
// scheme://bucket/key.
//
// The key is taken verbatim: no URL decoding is applied, so glob
// metacharacters such as ? and [ survive parsing.
package uri

import (
	"strings"

	"github.com/jmgilman/objfs/errors"
)

// Recognized schemes. S3N and S3A are legacy aliases of S3 and are
// preserved when an address is formatted.
const (
	SchemeS3  = "s3"
	SchemeS3N = "s3n"
	SchemeS3A = "s3a"
)

const schemeSep = "://"

// Address identifies an object, a key prefix or a whole bucket.
// The zero value is not a valid address.
type Address struct {
	Scheme string
	Bucket string
	// Key may be empty (the whole bucket) and may contain glob characters.
	Key string
}

// Parse splits s into scheme, bucket and key.
//
// It fails with errors.CodeInvalidAddress if the scheme is not one of
// s3, s3n or s3a, or if the bucket is empty.
func Parse(s string) (Address, error) {
	scheme, rest, ok := strings.Cut(s, schemeSep)
	if !ok {
		return Address{}, invalid(s, "missing scheme")
	}
	if !IsSupportedScheme(scheme) {
		return Address{}, invalid(s, "unsupported scheme")
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Address{}, invalid(s, "missing bucket")
	}

	return Address{Scheme: scheme, Bucket: bucket, Key: key}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsSupportedScheme reports whether scheme is s3, s3n or s3a.
func IsSupportedScheme(scheme string) bool {
	switch scheme {
	case SchemeS3, SchemeS3N, SchemeS3A:
		return true
	}
	return false
}

// IsURI reports whether s starts with any scheme:// prefix, supported or not.
func IsURI(s string) bool {
	scheme, _, ok := strings.Cut(s, schemeSep)
	if !ok || scheme == "" {
		return false
	}
	for i, r := range scheme {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// String returns the canonical form scheme://bucket/key.
func (a Address) String() string {
	return a.Scheme + schemeSep + a.Bucket + "/" + a.Key
}

// IsRoot reports whether the address names a whole bucket.
func (a Address) IsRoot() bool {
	return a.Key == ""
}

// WithKey returns a copy of a with its key replaced.
func (a Address) WithKey(key string) Address {
	a.Key = key
	return a
}

func invalid(s, reason string) errors.Error {
	return errors.WithContext(
		errors.Newf(errors.CodeInvalidAddress, "invalid address %q: %s", s, reason),
		"address", s,
	)
}
