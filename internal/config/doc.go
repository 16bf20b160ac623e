// Package config provides configuration structures and utilities for
// StingRayCatcher. It defines the scan options, the classification
// thresholds, and the operator registry (MCC/MNC to carrier name plus
// carrier display colors) that the classification engine reads but does
// not own.
package config
