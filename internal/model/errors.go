package model

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation error")
	ErrEmptyPool      = errors.New("empty selection pool")
	ErrPoolExhausted  = errors.New("unique selection pool exhausted")
	ErrZeroWeight     = errors.New("total weight must be greater than zero")
	ErrNoBankEntries  = errors.New("no quiz bank entries for the requested category")
	ErrNoManualPreset = errors.New("manual question requested but preset is missing")
)
