// Package pipeline orchestrates classification runs as a sequence of steps.
//
// A run imports a batch of observations, classifies it, and summarizes the
// result into a ScanReport. Steps implement a common interface so the same
// executor drives file scans, demo batches, and live-feed batches, and so
// multiple input files can be processed concurrently by the batch processor.
package pipeline
