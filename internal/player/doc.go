// Package player renders audio through the OS media pipeline (ffplay) and
// drives playlist transport: play, pause, stop, next, previous.
package player
