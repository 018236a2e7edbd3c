// SPDX-License-Identifier: MIT
// Package zaf: sentinel error set. Mismatch errors indicate caller misuse
// and are never retried.

package zaf

import "errors"

var (
	// ErrShellMismatch indicates unknown and standard corrections built for
	// different subshells.
	ErrShellMismatch = errors.New("zaf: unknown and standard subshells differ")

	// ErrLineMismatch indicates a line whose inner shell is not the
	// correction subshell.
	ErrLineMismatch = errors.New("zaf: line does not originate from the correction subshell")

	// ErrElementMismatch indicates a line set spanning several elements.
	ErrElementMismatch = errors.New("zaf: lines belong to different elements")

	// ErrLinesMismatch indicates unknown and standard MultiZAF built over
	// different line sets.
	ErrLinesMismatch = errors.New("zaf: unknown and standard line sets differ")

	// ErrNilCorrection indicates a nil ZAFCorrection or MultiZAF argument.
	ErrNilCorrection = errors.New("zaf: nil correction")
)
