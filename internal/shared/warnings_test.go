package shared

import "testing"

func TestWarningCollector(t *testing.T) {
	wc := NewWarningCollector(true)
	if wc.HasWarnings() {
		t.Error("new collector should have no warnings")
	}

	wc.AddDiscogsWarning("Artist", "Album", "HTTP 500")
	wc.AddMusicBrainzWarning("Artist", "Track", "timeout")
	wc.AddLocalTrackSkippedWarning("Local Track")

	if !wc.HasWarnings() {
		t.Error("expected warnings after adding")
	}
	if got := wc.GetWarningCount(); got != 3 {
		t.Errorf("GetWarningCount() = %d, want 3", got)
	}
}

func TestWarningCollectorDisabled(t *testing.T) {
	wc := NewWarningCollector(false)
	wc.AddAllMusicWarning("Artist", "Track", "scrape failed")
	if wc.HasWarnings() {
		t.Error("disabled collector should drop warnings")
	}
}
