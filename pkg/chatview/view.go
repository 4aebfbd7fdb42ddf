// Package chatview reconciles the two ways a chat message reaches a client:
// the durable ordered log (pull) and the best-effort realtime push. A View
// holds one group's merged, deduplicated conversation in display order.
package chatview

import (
	"sort"
	"sync"
	"time"
)

// Message is one rendered chat line. SentDate carries the calendar day and
// SentSeconds the seconds since local midnight at server receipt; together
// with ID they form the total display order.
type Message struct {
	ID          string
	GroupID     string
	Sender      string
	Content     string
	SentDate    time.Time
	SentSeconds int
}

// Less is the display ordering: (date, seconds-of-day, id) ascending.
// The id tie-break keeps the order stable for equal timestamps.
func Less(a, b Message) bool {
	ad, bd := a.SentDate.Truncate(24*time.Hour), b.SentDate.Truncate(24*time.Hour)
	if !ad.Equal(bd) {
		return ad.Before(bd)
	}
	if a.SentSeconds != b.SentSeconds {
		return a.SentSeconds < b.SentSeconds
	}
	return a.ID < b.ID
}

// View is the in-memory merged conversation for a single group. Pushes for
// other groups are ignored, so one View per open group screen is the unit of
// subscription.
type View struct {
	groupID string

	mu   sync.Mutex
	msgs []Message
	seen map[string]bool
}

// NewView creates an empty view scoped to one group
func NewView(groupID string) *View {
	return &View{
		groupID: groupID,
		seen:    make(map[string]bool),
	}
}

// GroupID returns the group this view is scoped to
func (v *View) GroupID() string {
	return v.groupID
}

// Replace installs a freshly pulled history, dropping everything previously
// held. The history is re-sorted rather than trusted: pulled rows and earlier
// pushes may interleave arbitrarily, and a full re-pull is the one correction
// mechanism for any divergence between the two transports.
func (v *View) Replace(history []Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.msgs = v.msgs[:0]
	v.seen = make(map[string]bool, len(history))
	for _, m := range history {
		if m.GroupID != v.groupID || v.seen[m.ID] {
			continue
		}
		v.seen[m.ID] = true
		v.msgs = append(v.msgs, m)
	}

	sort.SliceStable(v.msgs, func(i, j int) bool {
		return Less(v.msgs[i], v.msgs[j])
	})
}

// ApplyPush merges one pushed message into the view and reports whether it
// changed anything. Pushes for other groups are ignored, and a message that
// already arrived through either transport renders only once. The new message
// is placed by its ordering key without re-sorting the existing prefix.
func (v *View) ApplyPush(m Message) bool {
	if m.GroupID != v.groupID {
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.seen[m.ID] {
		return false
	}
	v.seen[m.ID] = true

	// pushes normally arrive in non-decreasing order, so scanning from the
	// tail finds the insertion point immediately in the common case
	i := len(v.msgs)
	for i > 0 && Less(m, v.msgs[i-1]) {
		i--
	}
	v.msgs = append(v.msgs, Message{})
	copy(v.msgs[i+1:], v.msgs[i:])
	v.msgs[i] = m
	return true
}

// Snapshot returns the current conversation in display order
func (v *View) Snapshot() []Message {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]Message, len(v.msgs))
	copy(out, v.msgs)
	return out
}

// Len returns the number of rendered messages
func (v *View) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.msgs)
}
