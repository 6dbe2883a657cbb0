// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FdecConfig holds settings for the declaration extractor.
type FdecConfig struct {
	// Input is the C source file to scan (default "LastEmperor.c").
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Output is the header file to write. Empty means fdec.h next to Input.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Attribution holds the lines of the leading comment block of the
	// generated header (project name, copyright).
	Attribution []string `json:"attribution" yaml:"attribution" mapstructure:"attribution"`

	// ToolName appears on the "Generated by" line of the header.
	ToolName string `json:"tool_name" yaml:"tool_name" mapstructure:"tool_name"`
}

// WsolveConfig holds settings for the whitespace normalizer.
type WsolveConfig struct {
	// Root is the directory tree to normalize (default ".").
	Root string `json:"root" yaml:"root" mapstructure:"root"`

	// IgnorePrefixes lists file name prefixes that are never touched.
	IgnorePrefixes []string `json:"ignore_prefixes" yaml:"ignore_prefixes" mapstructure:"ignore_prefixes"`

	// SkipDirs lists directory names that are not descended into.
	SkipDirs []string `json:"skip_dirs" yaml:"skip_dirs" mapstructure:"skip_dirs"`

	// TabWidth is the number of spaces each tab is replaced with (default 2).
	TabWidth int `json:"tab_width" yaml:"tab_width" mapstructure:"tab_width"`

	// Workers bounds the number of files processed concurrently.
	// Zero means runtime.NumCPU().
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Progress enables a terminal progress bar.
	Progress bool `json:"progress" yaml:"progress" mapstructure:"progress"`
}

// HistoryConfig holds settings for the run history ledger.
type HistoryConfig struct {
	// Enabled controls whether fdec and wsolve record their runs.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding history.db. Empty means the user cache
	// directory (e.g. ~/.cache/srctools).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of rows listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all tool configurations. It mirrors the layout of
// srctools.yaml.
type Config struct {
	Fdec    FdecConfig    `json:"fdec" yaml:"fdec" mapstructure:"fdec"`
	Wsolve  WsolveConfig  `json:"wsolve" yaml:"wsolve" mapstructure:"wsolve"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
