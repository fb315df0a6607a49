package detect

import "errors"

var ErrUnknownFramework = errors.New("detect: unknown framework")
