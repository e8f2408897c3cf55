package s3

import (
	"context"
	"iter"
	"strings"
	"time"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/fs/glob"
	"github.com/jmgilman/objfs/fs/uri"
	"github.com/jmgilman/objfs/internal/logging"
	"github.com/jmgilman/objfs/internal/metrics"
)

// Object is a listed object resolved to its full address.
type Object struct {
	Address      uri.Address
	Size         uint64
	LastModified time.Time
}

// List yields the addresses of the objects selected by address.
// See Objects for the selection rules.
func (f *FS) List(ctx context.Context, address string) iter.Seq2[uri.Address, error] {
	return func(yield func(uri.Address, error) bool) {
		for obj, err := range f.Objects(ctx, address) {
			if !yield(obj.Address, err) || err != nil {
				return
			}
		}
	}
}

// Objects yields the objects selected by address in ascending key order.
//
// If the key has no glob characters and an object is stored at exactly
// that key, only that object is yielded. Otherwise every object whose key
// matches the key as a pattern, or lies beneath it as a directory, is
// yielded. An empty key selects the whole bucket.
//
// A missing bucket or prefix yields nothing. Any other failure is yielded
// as the last element. A backend that lists a key at or below the key
// before it fails the listing with CodeInternal.
func (f *FS) Objects(ctx context.Context, address string) iter.Seq2[Object, error] {
	return func(yield func(Object, error) bool) {
		addr, err := uri.Parse(address)
		if err != nil {
			f.metrics.Error(metrics.OpList, string(errors.GetCode(err)))
			yield(Object{}, err)
			return
		}

		pattern, dir, err := compileSelection(addr.Key)
		if err != nil {
			yield(Object{}, f.fail(metrics.OpList, addr, err))
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		start := time.Now()
		var pages, listed int
		var failure error
		defer func() {
			logging.LogOperation(ctx, f.logger, metrics.OpList, addr.String(), time.Since(start), failure,
				"pages", pages, "objects", listed)
		}()

		b, err := f.acquire(ctx, addr)
		if err != nil {
			if !errors.Is(err, core.ErrNotExist) {
				failure = f.fail(metrics.OpList, addr, err)
				yield(Object{}, failure)
			}
			return
		}

		exact := !pattern.HasMagic() && addr.Key != ""
		first := true
		var prev string

		for page, err := range b.List(ctx, pattern.LiteralPrefix()) {
			if err != nil {
				if !errors.Is(err, core.ErrNotExist) {
					failure = f.fail(metrics.OpList, addr, err)
					yield(Object{}, failure)
				}
				return
			}
			pages++
			f.metrics.ListPage()

			for _, rec := range page {
				if !first && rec.Key <= prev {
					failure = f.fail(metrics.OpList, addr, errors.WithContextMap(
						errors.Newf(errors.CodeInternal, "storage listed keys out of order: %q after %q", rec.Key, prev),
						map[string]interface{}{"bucket": b.Name()}))
					yield(Object{}, failure)
					return
				}
				prev = rec.Key

				if first && exact && rec.Key == addr.Key {
					listed++
					f.metrics.ObjectListed()
					yield(toObject(addr, rec), nil)
					return
				}
				first = false

				if !pattern.Match(rec.Key) && !dir.Match(rec.Key) {
					continue
				}
				listed++
				f.metrics.ObjectListed()
				if !yield(toObject(addr, rec), nil) {
					return
				}
			}
		}
	}
}

// compileSelection compiles key as a pattern along with its directory
// form, which matches everything beneath key.
func compileSelection(key string) (*glob.Pattern, *glob.Pattern, error) {
	pattern, err := glob.Compile(key)
	if err != nil {
		return nil, nil, err
	}

	dirKey := key + "/*"
	if key == "" || strings.HasSuffix(key, "/") {
		dirKey = key + "*"
	}
	dir, err := glob.Compile(dirKey)
	if err != nil {
		return nil, nil, err
	}

	return pattern, dir, nil
}

func toObject(addr uri.Address, rec ObjectRecord) Object {
	return Object{
		Address:      addr.WithKey(rec.Key),
		Size:         rec.Size,
		LastModified: rec.LastModified,
	}
}
