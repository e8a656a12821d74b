// Package summary provides file inventory statistics for directory trees.
//
// It walks directory trees using fastwalk, buckets every file by its size
// (rounded up to whole megabytes) and by its modification year, and keeps
// count and storage histograms for both. Size histograms can be coarsened
// on demand by doubling their bin width until they fit a display budget.
package summary
