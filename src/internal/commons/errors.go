package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrConcurrentUpdate = errors.New("Record was modified concurrently")
var ErrDuplicateKey = errors.New("Record already exists")
