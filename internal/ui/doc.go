// Package ui implements the Fyne desktop interfaces: the stream player
// window and the playlist player window, plus shared widgets.
package ui
