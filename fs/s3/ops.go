package s3

import (
	"context"
	"time"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/internal/logging"
	"github.com/jmgilman/objfs/internal/metrics"
)

// Du returns the total size of the objects selected by address, using the
// same selection as Objects. Nothing selected is 0. Object contents are
// never read. Any listing failure fails the whole call.
func (f *FS) Du(ctx context.Context, address string) (uint64, error) {
	var total uint64
	for obj, err := range f.Objects(ctx, address) {
		if err != nil {
			return 0, err
		}
		total += obj.Size
	}
	return total, nil
}

// Remove deletes the object stored at exactly address. Glob keys are not
// expanded and fail with errors.CodeInvalidAddress. A missing object,
// including one that was just removed, fails with errors.CodeNotFound.
func (f *FS) Remove(ctx context.Context, address string) (err error) {
	addr, err := f.parseObject(metrics.OpRemove, address)
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() {
		logging.LogOperation(ctx, f.logger, metrics.OpRemove, addr.String(), time.Since(start), err)
	}()

	b, err := f.bucket(ctx, metrics.OpRemove, addr)
	if err != nil {
		return err
	}

	if _, err := b.Head(ctx, addr.Key); err != nil {
		return f.fail(metrics.OpRemove, addr, err)
	}

	if err := b.Delete(ctx, addr.Key); err != nil {
		return f.fail(metrics.OpRemove, addr, err)
	}

	f.metrics.Removed()
	return nil
}

// PathExists reports whether an object is stored at exactly address.
// A key that is only a prefix of other keys does not exist, and neither
// does any key in a missing bucket.
func (f *FS) PathExists(ctx context.Context, address string) (bool, error) {
	addr, err := f.parseObject(metrics.OpExists, address)
	if err != nil {
		return false, err
	}

	b, err := f.acquire(ctx, addr)
	if err == nil {
		_, err = b.Head(ctx, addr.Key)
	}
	if err != nil {
		if errors.Is(err, core.ErrNotExist) {
			return false, nil
		}
		return false, f.fail(metrics.OpExists, addr, err)
	}
	return true, nil
}
