// # Usage
//
// Creating errors:
//
//	err := errors.New(errors.CodeNotFound, "object not found")
//	err := errors.Newf(errors.CodeInvalidAddress, "unsupported scheme %q", scheme)
//
// Wrapping storage client failures:
//
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeNetwork, "list objects failed")
//	}
//
// Adding context:
//
//	err = errors.WithContext(err, "address", addr.String())
//
// Inspecting errors:
//
//	switch errors.GetCode(err) {
//	case errors.CodeNotFound:
//	    // handle missing object
//	}
//
//	if errors.Is(err, fs.ErrNotExist) {
//	    // NOT_FOUND errors also match the io/fs sentinel
//	}
//
// Retry decisions are left to callers:
//
//	if errors.IsRetryable(err) {
//	    // back off and try again
//	}
package errors
