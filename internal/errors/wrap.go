package errors

import "fmt"

// Wrap adds context to an error at a package boundary. A nil err returns
// nil, so it is safe to call unconditionally on a return path.
//
// The original chain is preserved, so sentinel checks keep working
// through the wrap:
//
//	if err := r.Get(id); err != nil {
//	    return errors.Wrap(err, "resolve engine")
//	}
//	...
//	if errors.Is(err, errors.ErrEngineNotFound) { ... }
//
// Wrap at package boundaries only; wrapping every call site produces
// deeply nested messages.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a format string, for context that needs
// interpolation:
//
//	return errors.Wrapf(err, "render template %s", tpl.ID)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
