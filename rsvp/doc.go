// Package rsvp implements the RSVP (rapid serial visual presentation)
// experiment tasks: calibration and copy phrase.
//
// Register wires both into a bciflow.Registry:
//
//	reg := bciflow.NewRegistry()
//	rsvp.Register(reg)
//
// Both tasks drive the display one sequence at a time, record stimulus
// triggers under the save path, and log session events. Signal inference is
// pluggable: the copy-phrase task takes a DecisionFunc that turns the
// triggers of an epoch into a typing decision, and ships with an oracle
// decider that copies the target phrase directly (useful without a trained
// signal model).
package rsvp
