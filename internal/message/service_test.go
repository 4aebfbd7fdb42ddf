package message

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/grindhub/grindhub/internal/group"
)

// fakeStore is an in-memory Store mirroring the message table semantics,
// including the (datesent, timesent, messageid) ordering of ListByGroup.
type fakeStore struct {
	msgs    []*Message
	groups  map[string]bool
	users   map[string]string
	nowDate time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups:  make(map[string]bool),
		users:   make(map[string]string),
		nowDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) Append(_ context.Context, m *Message) error {
	m.SentDate = f.nowDate
	stored := *m
	f.msgs = append(f.msgs, &stored)
	return nil
}

func (f *fakeStore) ListByGroup(_ context.Context, groupID string) ([]*Message, error) {
	var out []*Message
	for _, m := range f.msgs {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.SentDate.Equal(b.SentDate) {
			return a.SentDate.Before(b.SentDate)
		}
		if a.SentSeconds != b.SentSeconds {
			return a.SentSeconds < b.SentSeconds
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (f *fakeStore) GroupExists(_ context.Context, groupID string) (bool, error) {
	return f.groups[groupID], nil
}

func (f *fakeStore) AuthorUsername(_ context.Context, userID string) (string, error) {
	return f.users[userID], nil
}

// insert places a raw row with a chosen ordering key, bypassing the service
func (f *fakeStore) insert(id, groupID string, dayOffset, seconds int) {
	f.msgs = append(f.msgs, &Message{
		ID:          id,
		GroupID:     groupID,
		UserID:      "u1",
		Content:     "content-" + id,
		SentDate:    f.nowDate.AddDate(0, 0, dayOffset),
		SentSeconds: seconds,
		Username:    "alice",
	})
}

type fakeMembers struct {
	ids map[string][]string
}

func (f *fakeMembers) MemberUserIDs(_ context.Context, groupID string) ([]string, error) {
	return f.ids[groupID], nil
}

type fakePublisher struct {
	groupIDs []string
	userIDs  [][]string
}

func (f *fakePublisher) PublishChat(groupID, _, _, _ string, userIDs []string) {
	f.groupIDs = append(f.groupIDs, groupID)
	f.userIDs = append(f.userIDs, userIDs)
}

func newTestService(store *fakeStore) (*Service, *fakePublisher) {
	members := &fakeMembers{ids: map[string][]string{"g1": {"u1", "u2"}}}
	pub := &fakePublisher{}
	return NewService(store, members, pub), pub
}

func TestAppendRequiresAllFields(t *testing.T) {
	svc, _ := newTestService(newFakeStore())

	cases := []struct {
		name                     string
		groupID, userID, content string
	}{
		{"missing group", "", "u1", "hello"},
		{"missing user", "g1", "", "hello"},
		{"missing content", "g1", "u1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Append(context.Background(), tc.groupID, tc.userID, tc.content)
			if !errors.Is(err, ErrMissingFields) {
				t.Errorf("Expected ErrMissingFields, got %v", err)
			}
		})
	}
}

func TestAppendRejectsUnknownReferences(t *testing.T) {
	store := newFakeStore()
	store.groups["g1"] = true
	store.users["u1"] = "alice"
	svc, _ := newTestService(store)

	if _, err := svc.Append(context.Background(), "missing", "u1", "hello"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("Expected ErrGroupNotFound, got %v", err)
	}
	if _, err := svc.Append(context.Background(), "g1", "ghost", "hello"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
	if len(store.msgs) != 0 {
		t.Errorf("Expected no rows after rejected appends, got %d", len(store.msgs))
	}
}

func TestAppendThenListExactlyOnce(t *testing.T) {
	store := newFakeStore()
	store.groups["g1"] = true
	store.users["u1"] = "alice"
	svc, _ := newTestService(store)

	m, err := svc.Append(context.Background(), "g1", "u1", "hello")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if m.ID == "" {
		t.Error("Expected a generated message id")
	}
	if m.SentDate.IsZero() {
		t.Error("Expected the store to assign the sent date")
	}

	msgs, err := svc.ListByGroup(context.Background(), "g1")
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	count := 0
	for _, got := range msgs {
		if got.ID == m.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected the appended message exactly once, found %d times", count)
	}
}

func TestAppendFansOutToGroupMembers(t *testing.T) {
	store := newFakeStore()
	store.groups["g1"] = true
	store.users["u1"] = "alice"
	svc, pub := newTestService(store)

	if _, err := svc.Append(context.Background(), "g1", "u1", "hello"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if len(pub.groupIDs) != 1 || pub.groupIDs[0] != "g1" {
		t.Fatalf("Expected one publish for g1, got %v", pub.groupIDs)
	}
	if len(pub.userIDs[0]) != 2 {
		t.Errorf("Expected fan-out to both members, got %v", pub.userIDs[0])
	}
}

func TestNilPublisherSkipsFanOut(t *testing.T) {
	store := newFakeStore()
	store.groups["g1"] = true
	store.users["u1"] = "alice"
	svc := NewService(store, &fakeMembers{}, nil)

	if _, err := svc.Append(context.Background(), "g1", "u1", "hello"); err != nil {
		t.Fatalf("Append failed without publisher: %v", err)
	}
}

func TestListOrderedByDateSecondsID(t *testing.T) {
	store := newFakeStore()
	store.insert("m-c", "g1", 0, 300)
	store.insert("m-a", "g1", 0, 100)
	store.insert("m-e", "g1", 1, 50)
	store.insert("m-d", "g1", 0, 300) // same instant as m-c; id breaks the tie
	store.insert("m-b", "g1", 0, 200)
	svc, _ := newTestService(store)

	msgs, err := svc.ListByGroup(context.Background(), "g1")
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}

	want := []string{"m-a", "m-b", "m-c", "m-d", "m-e"}
	if len(msgs) != len(want) {
		t.Fatalf("Expected %d messages, got %d", len(want), len(msgs))
	}
	for i, id := range want {
		if msgs[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, msgs[i].ID)
		}
	}
}

func TestListOrderedWithRandomizedInsertion(t *testing.T) {
	store := newFakeStore()
	keys := make([]int, 20)
	for i := range keys {
		keys[i] = i
	}
	rng := rand.New(rand.NewSource(7))
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for _, k := range keys {
		store.insert(string(rune('a'+k)), "g1", 0, 100*k)
	}
	svc, _ := newTestService(store)

	msgs, err := svc.ListByGroup(context.Background(), "g1")
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i-1].SentSeconds > msgs[i].SentSeconds {
			t.Fatalf("Messages out of order at %d: %d before %d", i, msgs[i-1].SentSeconds, msgs[i].SentSeconds)
		}
	}
}

func TestListInsertionOrderT2T1T3(t *testing.T) {
	store := newFakeStore()
	store.insert("t2", "g1", 0, 200)
	store.insert("t1", "g1", 0, 100)
	store.insert("t3", "g1", 0, 300)
	svc, _ := newTestService(store)

	msgs, err := svc.ListByGroup(context.Background(), "g1")
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	want := []string{"t1", "t2", "t3"}
	for i, id := range want {
		if msgs[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, msgs[i].ID)
		}
	}
}

func TestListEmptyGroupIsValid(t *testing.T) {
	svc, _ := newTestService(newFakeStore())

	msgs, err := svc.ListByGroup(context.Background(), "g1")
	if err != nil {
		t.Fatalf("Expected empty list without error, got %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("Expected zero messages, got %d", len(msgs))
	}
}

// groupStoreAdapter backs a group.Service with the same users the message
// fake store knows about, for the end-to-end scenario below.
type groupStoreAdapter struct {
	groups  map[string]*group.Group
	byCode  map[string]*group.Group
	members map[string]*group.Membership
}

func newGroupStoreAdapter() *groupStoreAdapter {
	return &groupStoreAdapter{
		groups:  make(map[string]*group.Group),
		byCode:  make(map[string]*group.Group),
		members: make(map[string]*group.Membership),
	}
}

func (a *groupStoreAdapter) Create(_ context.Context, g *group.Group) error {
	a.groups[g.ID] = g
	a.byCode[g.InvitationCode] = g
	return nil
}

func (a *groupStoreAdapter) GetByID(_ context.Context, id string) (*group.Group, error) {
	return a.groups[id], nil
}

func (a *groupStoreAdapter) GetByInvitationCode(_ context.Context, code string) (*group.Group, error) {
	return a.byCode[code], nil
}

func (a *groupStoreAdapter) InvitationCodeExists(_ context.Context, code string) (bool, error) {
	_, ok := a.byCode[code]
	return ok, nil
}

func (a *groupStoreAdapter) AddMember(_ context.Context, m *group.Membership) error {
	key := m.UserID + "|" + m.GroupID
	if _, ok := a.members[key]; ok {
		return group.ErrDuplicateMember
	}
	a.members[key] = m
	return nil
}

func (a *groupStoreAdapter) GetMember(_ context.Context, groupID, userID string) (*group.Membership, error) {
	return a.members[userID+"|"+groupID], nil
}

func (a *groupStoreAdapter) GetMembers(_ context.Context, groupID string) ([]*group.Member, error) {
	var out []*group.Member
	for _, m := range a.members {
		if m.GroupID == groupID {
			out = append(out, &group.Member{UserID: m.UserID})
		}
	}
	return out, nil
}

func (a *groupStoreAdapter) ListByUserID(_ context.Context, userID string) ([]*group.Listing, error) {
	var out []*group.Listing
	for _, m := range a.members {
		if m.UserID == userID {
			g := a.groups[m.GroupID]
			out = append(out, &group.Listing{GroupID: g.ID, GroupName: g.Name})
		}
	}
	return out, nil
}

func TestCreateJoinSendListScenario(t *testing.T) {
	ctx := context.Background()

	groupStore := newGroupStoreAdapter()
	groupSvc := group.NewService(groupStore)

	g, err := groupSvc.Create(ctx, "CS2030 Study", "exam prep")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	resolved, err := groupSvc.ResolveInvitationCode(ctx, g.InvitationCode)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.ID != g.ID {
		t.Fatalf("Expected code to resolve to %s, got %s", g.ID, resolved.ID)
	}

	if _, err := groupSvc.Join(ctx, g.InvitationCode, "U1"); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	msgStore := newFakeStore()
	msgStore.groups[g.ID] = true
	msgStore.users["U1"] = "u1"
	msgSvc := NewService(msgStore, &fakeMembers{}, nil)

	if _, err := msgSvc.Append(ctx, g.ID, "U1", "hello"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	msgs, err := msgSvc.ListByGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("Expected exactly one message, got %d", len(msgs))
	}
	if msgs[0].Content != "hello" || msgs[0].UserID != "U1" {
		t.Errorf("Expected hello from U1, got %q from %s", msgs[0].Content, msgs[0].UserID)
	}
}
