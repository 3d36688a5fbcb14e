package events_test

import (
	"testing"

	"github.com/ardanlabs/sealchain/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Events(t *testing.T) {
	evts := events.New()

	id1, ch1 := evts.Subscribe()
	_, ch2 := evts.Subscribe()

	if evts.Count() != 2 {
		t.Fatalf("\t%s\tShould have two subscribers, got %d.", failed, evts.Count())
	}
	t.Logf("\t%s\tShould have two subscribers.", success)

	evts.Send("sealed")

	if msg := <-ch1; msg != "sealed" {
		t.Fatalf("\t%s\tShould receive the message on the first channel, got %q.", failed, msg)
	}
	if msg := <-ch2; msg != "sealed" {
		t.Fatalf("\t%s\tShould receive the message on the second channel, got %q.", failed, msg)
	}
	t.Logf("\t%s\tShould fan out the message.", success)

	if err := evts.Unsubscribe(id1); err != nil {
		t.Fatalf("\t%s\tShould be able to unsubscribe: %v", failed, err)
	}
	if _, open := <-ch1; open {
		t.Fatalf("\t%s\tShould close the unsubscribed channel.", failed)
	}
	if err := evts.Unsubscribe(id1); err == nil {
		t.Fatalf("\t%s\tShould not unsubscribe twice.", failed)
	}
	t.Logf("\t%s\tShould be able to unsubscribe.", success)

	for i := 0; i < 200; i++ {
		evts.Send("flood")
	}
	t.Logf("\t%s\tShould not block on a full subscriber.", success)

	evts.Shutdown()
	if evts.Count() != 0 {
		t.Fatalf("\t%s\tShould remove every subscriber on shutdown.", failed)
	}
	t.Logf("\t%s\tShould remove every subscriber on shutdown.", success)
}
