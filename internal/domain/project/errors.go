package project

import "errors"

var (
	// ErrProjectNotFound is returned when a project id matches nothing
	ErrProjectNotFound = errors.New("project not found")

	// ErrBaselineNotFound is returned when a project has no approved baseline
	ErrBaselineNotFound = errors.New("project baseline not found")

	// ErrStatusNotFound is returned when a project has no reported status
	ErrStatusNotFound = errors.New("project status not found")
)
