package tui

import "time"

type view int

const (
	viewLanding view = iota
	viewTasks
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNotes
)

// minibufferTickMsg drives auto-clearing of transient messages.
type minibufferTickMsg struct{}

const (
	minibufferAutoClearAfter = 3 * time.Second
	minibufferTickEvery      = 500 * time.Millisecond
)

const (
	topPadLines = 1
	maxContentW = 96
	// wideHeaderW is the content width at which the long greeting is shown.
	wideHeaderW = 60
)
