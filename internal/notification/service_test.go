package notification

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	known   map[string]bool
	columns []string
	values  []bool
}

func (f *fakeStore) UpdateColumn(_ context.Context, userID, column string, value bool) (*Preferences, error) {
	f.columns = append(f.columns, column)
	f.values = append(f.values, value)
	if !f.known[userID] {
		return nil, nil
	}
	return &Preferences{UserID: userID}, nil
}

func TestUpdateRejectsUnknownField(t *testing.T) {
	store := &fakeStore{known: map[string]bool{"u1": true}}
	svc := NewService(store)

	_, err := svc.Update(context.Background(), "u1", "userid; DROP TABLE users", true)
	if !errors.Is(err, ErrInvalidField) {
		t.Fatalf("Expected ErrInvalidField, got %v", err)
	}
	if len(store.columns) != 0 {
		t.Error("Expected the store to be untouched for an invalid field")
	}
}

func TestUpdateMapsFieldsToColumns(t *testing.T) {
	cases := []struct {
		field  string
		column string
	}{
		{"notifications", "notification"},
		{"taskDeadline", "tasknotification"},
		{"lectureClass", "classnotification"},
		{"groupMessages", "groupnotification"},
		{"privateMessages", "privatenotification"},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			store := &fakeStore{known: map[string]bool{"u1": true}}
			svc := NewService(store)

			if _, err := svc.Update(context.Background(), "u1", tc.field, false); err != nil {
				t.Fatalf("Update failed: %v", err)
			}
			if len(store.columns) != 1 || store.columns[0] != tc.column {
				t.Errorf("Expected column %s, got %v", tc.column, store.columns)
			}
			if store.values[0] != false {
				t.Errorf("Expected value false, got %v", store.values[0])
			}
		})
	}
}

func TestUpdateUnknownUser(t *testing.T) {
	svc := NewService(&fakeStore{known: map[string]bool{}})

	if _, err := svc.Update(context.Background(), "ghost", "notifications", true); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
