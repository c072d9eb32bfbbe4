// Package config defines the format-agnostic configuration model for the
// lifegrid server and its validation rules. Loading the model from a
// concrete format lives elsewhere (internal/hcl); this package only knows
// what a valid configuration looks like.
package config
