package economy

import "errors"

var ErrInvalidArgument = errors.New("invalid argument")
var ErrNotReady = errors.New("the engine has not been started")
