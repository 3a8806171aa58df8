package variant

import "github.com/cockroachdb/errors"

var ErrAlreadyExists = errors.New("variant already exists")

// Variant is a game site variant; ID is the site's own identifier.
type Variant struct {
	ID   int
	Name string
}
