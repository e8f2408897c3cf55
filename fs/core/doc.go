// Package core provides the contract shared by every filesystem provider.
//
// A provider answers the same handful of questions about paths: which
// files match a pattern, what they contain, how large they are, whether
// one exists. Local disks, in-memory trees and object stores all implement
// FS, so callers can route a path to whichever provider claims it and
// treat the results uniformly.
//
// # Usage Example
//
//	for p, err := range filesystem.Ls(ctx, "s3://walrus/data/*") {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(p)
//	}
//
// # Lazy Sequences
//
// Listings and line streams are iter.Seq2 values. Nothing happens until
// the sequence is ranged over, and breaking out of the loop releases the
// provider's resources (listing requests, open streams).
//
// # Errors
//
// Providers return errors from the objfs errors package. Missing paths
// also match ErrNotExist, so errors.Is(err, core.ErrNotExist) works
// regardless of the provider.
package core
