// Sentinel errors shared across repositories. Higher layers match on
// these to translate storage outcomes into the response taxonomy
// without inspecting driver errors themselves.
package repository

import "errors"

// ErrNotFound is returned when a conditional update or delete affects
// zero rows: either the row does not exist or it sits outside the
// caller's scope. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("no row in scope")

// ErrDuplicateEmail is returned when an insert or update violates the
// unique email constraint.
var ErrDuplicateEmail = errors.New("email already exists")
