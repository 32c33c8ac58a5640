package classify

import "errors"

// errNonStringTypeName signals a field decorator whose first argument is
// not a string literal. Per spec.md §4.2/§7 this never fails the batch:
// the member is preserved as a residual member instead of a field, and a
// warning is recorded against the owning Summary.
var errNonStringTypeName = errors.New("decorator's first argument is not a string literal")
