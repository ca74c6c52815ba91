package utils

import "errors"

type PermError string

func (e PermError) Error() string {
	return string(e)
}

func (e PermError) IsPermanent() bool {
	return true
}

// IsPermanent reports whether any error in err's chain declares itself permanent.
func IsPermanent(err error) bool {
	var perm interface{ IsPermanent() bool }
	if errors.As(err, &perm) {
		return perm.IsPermanent()
	}
	return false
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string     { return e.err.Error() }
func (e permanentError) Unwrap() error     { return e.err }
func (e permanentError) IsPermanent() bool { return true }

// Permanent marks err as not worth retrying while keeping it matchable with errors.Is
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}
