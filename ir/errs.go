package ir

import (
	"errors"
)

var (
	ErrParse      = errors.New("parse error")
	ErrEmptyInput = errors.New("empty document")
)
