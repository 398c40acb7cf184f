// Package command exposes go-command compatible command handlers for the
// write side of the social graph (application data updates, activity
// creation and removal). Commands are wired by the service layer and can be
// invoked by any transport.
package command
