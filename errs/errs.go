// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs defines the slackline engine's error taxonomy.
package errs

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind distinguishes the failure modes a caller needs to branch on.
type Kind string

const (
	// InvalidInput marks a nonpositive material constant, a load outside
	// (0, L), a duplicate load position, or a non-monotonic load list.
	InvalidInput Kind = "InvalidInput"

	// IntegratorDiverged marks an adaptive step that could not meet
	// tolerance, or a state that became non-finite.
	IntegratorDiverged Kind = "IntegratorDiverged"

	// JumpUnsolvable marks a point-load jump condition with no physical
	// root (b_R > 0, real) near the incoming state.
	JumpUnsolvable Kind = "JumpUnsolvable"

	// SlacklineTooLong marks a shooting integration that reached its
	// length cutoff without crossing the right anchor.
	SlacklineTooLong Kind = "SlacklineTooLong"

	// SearchUnconverged marks a binary search that exceeded its
	// iteration budget without meeting tolerance.
	SearchUnconverged Kind = "SearchUnconverged"

	// Cancelled marks a deadline or step budget exhausted mid-search.
	Cancelled Kind = "Cancelled"
)

// Error wraps a Kind with a chk-formatted message.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Is reports whether target is an *Error of the same Kind, so
// errors.Is(err, &errs.Error{Kind: errs.InvalidInput}) style checks work.
func (e *Error) Is(target error) bool {
	k, ok := target.(*Error)
	return ok && k.Kind == e.Kind
}

// New builds an *Error of the given kind, formatting msg/args the way
// gosl/chk.Err does.
func New(kind Kind, msg string, args ...interface{}) error {
	cause := chk.Err(msg, args...)
	return &Error{Kind: kind, msg: fmt.Sprintf("%s: %v", kind, cause)}
}

// Of reports the Kind of err, or "" if err is not one of ours.
func Of(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}
