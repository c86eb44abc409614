package archive_test

import (
	"fmt"

	"go.trai.ch/zerr"
)

// metadata flattens the zerr metadata of every level of err's chain.
func metadata(err error) string {
	var out string
	for err != nil {
		if z, ok := err.(*zerr.Error); ok {
			out += fmt.Sprint(z.Metadata())
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return out
}
