// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Tool identifies which srctools subcommand produced a run.
type Tool string

const (
	ToolFdec   Tool = "fdec"
	ToolWsolve Tool = "wsolve"
)

// RunStatus indicates how a tool run ended.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// RunRecord is one row of the run history ledger.
type RunRecord struct {
	// ID is the ledger row ID, assigned on insert.
	ID int64 `json:"id" yaml:"id"`

	// Tool is the subcommand that ran.
	Tool Tool `json:"tool" yaml:"tool"`

	// Target is the input file (fdec) or root directory (wsolve).
	Target string `json:"target" yaml:"target"`

	// Output is the generated header path; empty for wsolve.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Status records whether the run completed.
	Status RunStatus `json:"status" yaml:"status"`

	// Items is the declaration count (fdec) or files touched (wsolve).
	Items int `json:"items" yaml:"items"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Error holds the failure message for failed runs.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
