package model

// Package model defines domain data structures shared by both applications:
// playlist tracks, download/conversion tasks, and status enums. Structures are
// designed for direct binding in the UI and explicit state transitions.
