package chatview

import (
	"math/rand"
	"testing"
	"time"
)

var day = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

func msg(id string, dayOffset, seconds int) Message {
	return Message{
		ID:          id,
		GroupID:     "g1",
		Sender:      "u1",
		Content:     "content-" + id,
		SentDate:    day.AddDate(0, 0, dayOffset),
		SentSeconds: seconds,
	}
}

func assertOrder(t *testing.T, got []Message, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d messages, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Position %d: expected message %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestReplaceSortsRandomizedHistory(t *testing.T) {
	history := []Message{
		msg("a", 0, 100),
		msg("b", 0, 200),
		msg("c", 0, 300),
		msg("d", 1, 50),
		msg("e", 1, 50), // same instant as d; id breaks the tie
		msg("f", 2, 0),
	}
	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(history), func(i, j int) {
		history[i], history[j] = history[j], history[i]
	})

	v := NewView("g1")
	v.Replace(history)

	assertOrder(t, v.Snapshot(), "a", "b", "c", "d", "e", "f")
}

func TestReplaceOutOfOrderInsertion(t *testing.T) {
	// inserted T2, T1, T3; rendered T1, T2, T3
	v := NewView("g1")
	v.Replace([]Message{
		msg("t2", 0, 200),
		msg("t1", 0, 100),
		msg("t3", 0, 300),
	})

	assertOrder(t, v.Snapshot(), "t1", "t2", "t3")
}

func TestApplyPushAppendsInOrder(t *testing.T) {
	v := NewView("g1")
	v.Replace([]Message{msg("a", 0, 100)})

	if !v.ApplyPush(msg("b", 0, 200)) {
		t.Error("Expected push of new message to be applied")
	}
	if !v.ApplyPush(msg("c", 0, 300)) {
		t.Error("Expected push of new message to be applied")
	}

	assertOrder(t, v.Snapshot(), "a", "b", "c")
}

func TestApplyPushPlacesLateArrival(t *testing.T) {
	v := NewView("g1")
	v.Replace([]Message{msg("a", 0, 100), msg("c", 0, 300)})

	// a push that is older than the current tail still lands in order
	if !v.ApplyPush(msg("b", 0, 200)) {
		t.Fatal("Expected out-of-order push to be applied")
	}

	assertOrder(t, v.Snapshot(), "a", "b", "c")
}

func TestApplyPushDeduplicates(t *testing.T) {
	v := NewView("g1")

	m := msg("a", 0, 100)
	if !v.ApplyPush(m) {
		t.Fatal("Expected first push to be applied")
	}
	if v.ApplyPush(m) {
		t.Error("Expected duplicate push to be ignored")
	}
	if v.Len() != 1 {
		t.Errorf("Expected 1 message after duplicate push, got %d", v.Len())
	}
}

func TestPushThenRepullRendersOnce(t *testing.T) {
	v := NewView("g1")
	v.Replace([]Message{msg("a", 0, 100)})

	pushed := msg("b", 0, 200)
	v.ApplyPush(pushed)

	// full re-pull now includes the pushed message
	v.Replace([]Message{msg("a", 0, 100), pushed, msg("c", 0, 300)})

	assertOrder(t, v.Snapshot(), "a", "b", "c")
}

func TestPushForOtherGroupIgnored(t *testing.T) {
	v := NewView("g1")
	v.Replace([]Message{msg("a", 0, 100)})

	other := msg("x", 0, 200)
	other.GroupID = "g2"
	if v.ApplyPush(other) {
		t.Error("Expected push for another group to be ignored")
	}

	assertOrder(t, v.Snapshot(), "a")
}

func TestReplaceDropsOtherGroups(t *testing.T) {
	other := msg("x", 0, 50)
	other.GroupID = "g2"

	v := NewView("g1")
	v.Replace([]Message{other, msg("a", 0, 100)})

	assertOrder(t, v.Snapshot(), "a")
}

func TestLessDateBeforeSecondsBeforeID(t *testing.T) {
	earlierDay := msg("z", 0, 500)
	laterDay := msg("a", 1, 0)
	if !Less(earlierDay, laterDay) {
		t.Error("Expected earlier date to order first regardless of seconds and id")
	}

	sameDay1 := msg("z", 0, 100)
	sameDay2 := msg("a", 0, 200)
	if !Less(sameDay1, sameDay2) {
		t.Error("Expected lower seconds to order first regardless of id")
	}

	tie1 := msg("a", 0, 100)
	tie2 := msg("b", 0, 100)
	if !Less(tie1, tie2) {
		t.Error("Expected id to break ties for equal timestamps")
	}
	if Less(tie2, tie1) {
		t.Error("Expected tie-break ordering to be asymmetric")
	}
}
