package behavior

import "log"

// Reporter receives transition failures. Rejections are expected during
// normal play (gameplay code races against state changes), so they are
// surfaced here instead of being returned as errors.
type Reporter interface {
	ReportUnknownState(actor string, target StateID)
	ReportIllegalTransition(actor string, from, target StateID)
}

// LogReporter writes rejections to the standard logger. It is the default
// reporter for machines built without WithReporter.
type LogReporter struct{}

func (LogReporter) ReportUnknownState(actor string, target StateID) {
	log.Printf("behavior: actor=%s transition to unknown state %q", actor, target)
}

func (LogReporter) ReportIllegalTransition(actor string, from, target StateID) {
	log.Printf("behavior: actor=%s transition %s -> %s not allowed", actor, from, target)
}

// NopReporter discards all rejections.
type NopReporter struct{}

func (NopReporter) ReportUnknownState(string, StateID) {}
func (NopReporter) ReportIllegalTransition(string, StateID, StateID) {}
