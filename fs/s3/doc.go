// Package s3 provides a POSIX-like filesystem over S3-compatible object
// storage.
//
// Object stores are flat: a bucket holds keys, and "data/bar/baz" is just a
// key that happens to contain slashes. FS layers directory-like listing,
// glob selection, streaming reads with transparent decompression, size
// aggregation and deletion on top of any Client.
//
// # Addresses
//
// Every path is an address of the form s3://bucket/key. The legacy schemes
// s3n and s3a are accepted and preserved in listed addresses.
//
// # Listing
//
//	for addr, err := range filesystem.List(ctx, "s3://walrus/*/baz") {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(addr)
//	}
//
// A key without glob characters that names an object lists just that
// object. Otherwise the key is treated as a pattern, and a key that names a
// "directory" lists everything beneath it. Results are in ascending key
// order. A missing bucket or prefix lists nothing.
//
// # Reading
//
// OpenRead and Cat decompress by suffix: .gz, .bz2 and .zst by default.
//
// # Client Versions
//
// Client libraries older than the configured threshold (default 2.25.0)
// get their bucket validated whenever a handle is acquired. Versions are
// compared numerically.
package s3
