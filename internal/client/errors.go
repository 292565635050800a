package client

import "errors"

// ErrServerSync is reported through OnError when the server pushes a
// sync:error control event for a subscribed collection.
var ErrServerSync = errors.New("server reported sync error")
