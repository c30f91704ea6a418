package storage

import "errors"

var (
	ErrCalculatorNotFound = errors.New("calculator not found")
	ErrCalculatorExists   = errors.New("calculator already exists")
	ErrSettingsNotFound   = errors.New("settings not found")
)
