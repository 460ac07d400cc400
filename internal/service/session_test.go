package service

import (
	"testing"

	"diet_tracker/internal/chat"
	"diet_tracker/internal/models"
)

func TestSessionService_Defaults(t *testing.T) {
	s := NewSessionService()

	page, size := s.Paging(3)
	if page != defaultPage || size != defaultPageSize {
		t.Fatalf("unexpected defaults: page=%d size=%d", page, size)
	}
	if got := s.SearchResults(3); got != nil {
		t.Fatalf("expected nil search results, got %+v", got)
	}
	if got := s.PendingSelection(3); got != nil {
		t.Fatalf("expected nil selection, got %+v", got)
	}
	if got := s.Transcript(3); len(got) != 0 {
		t.Fatalf("expected empty transcript, got %+v", got)
	}
}

func TestSessionService_SetPagingClamps(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		wantPage int
		wantSize int
	}{
		{"valid", 3, 50, 3, 50},
		{"page below one", 0, 50, defaultPage, 50},
		{"size below minimum", 2, 5, 2, minPageSize},
		{"size above maximum", 2, 500, 2, maxPageSize},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			s := NewSessionService()
			s.SetPaging(3, tt.page, tt.pageSize)
			page, size := s.Paging(3)
			if page != tt.wantPage || size != tt.wantSize {
				t.Fatalf("want page=%d size=%d, got page=%d size=%d", tt.wantPage, tt.wantSize, page, size)
			}
		})
	}
}

func TestSessionService_TranscriptReturnsCopy(t *testing.T) {
	s := NewSessionService()
	s.AppendTranscript(3, chat.Message{Role: chat.RoleUser, Content: "hi"})

	got := s.Transcript(3)
	got[0].Content = "mutated"

	if fresh := s.Transcript(3); fresh[0].Content != "hi" {
		t.Fatalf("transcript copy leaked shared state: %+v", fresh)
	}
}

func TestSessionService_StateIsPerUser(t *testing.T) {
	s := NewSessionService()
	s.SetSearchResults(3, []models.DisplayProduct{{Name: "닭가슴살"}})
	s.AppendTranscript(3, chat.Message{Role: chat.RoleUser, Content: "hi"})

	if got := s.SearchResults(4); got != nil {
		t.Fatalf("search results leaked across users: %+v", got)
	}
	if got := s.Transcript(4); len(got) != 0 {
		t.Fatalf("transcript leaked across users: %+v", got)
	}
}

func TestSessionService_ResetPreservesIdentity(t *testing.T) {
	s := NewSessionService()
	s.Bind(3, "alice")
	s.SetPaging(3, 5, 50)
	s.SetSearchResults(3, []models.DisplayProduct{{Name: "닭가슴살", Barcode: "123"}})
	s.SetPendingSelection(3, &models.NutritionInfo{Name: "닭가슴살", Calories: 165})
	s.AppendTranscript(3, chat.Message{Role: chat.RoleUser, Content: "hi"})

	s.Reset(3)

	page, size := s.Paging(3)
	if page != defaultPage || size != defaultPageSize {
		t.Fatalf("paging not reset: page=%d size=%d", page, size)
	}
	if got := s.SearchResults(3); got != nil {
		t.Fatalf("search results not cleared: %+v", got)
	}
	if got := s.PendingSelection(3); got != nil {
		t.Fatalf("pending selection not cleared: %+v", got)
	}
	if got := s.Transcript(3); len(got) != 0 {
		t.Fatalf("transcript not cleared: %+v", got)
	}

	// identity survives the reset
	s.mu.Lock()
	st := s.sessions[3]
	s.mu.Unlock()
	if st.UserID != 3 || st.Username != "alice" {
		t.Fatalf("identity lost on reset: %+v", st)
	}
}
