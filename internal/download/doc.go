// Package download manages audio download tasks backed by the yt-dlp
// binary, with bounded parallelism and progress reporting.
package download
