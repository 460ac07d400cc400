package service

import (
	"sync"

	"diet_tracker/internal/chat"
	"diet_tracker/internal/models"
)

// Paging defaults matching the original UI.
const (
	defaultPage     = 1
	defaultPageSize = 10
	minPageSize     = 10
	maxPageSize     = 100
)

// SessionState is the mutable per-user interactive state that survives across
// requests: catalog paging, the last search results, a pending nutrition
// selection awaiting "save", and the chatbot transcript. Identity fields
// (UserID, Username) survive a reset; everything else clears.
type SessionState struct {
	UserID   int
	Username string

	Page             int
	PageSize         int
	SearchResults    []models.DisplayProduct
	PendingSelection *models.NutritionInfo
	Transcript       []chat.Message
}

// SessionService keeps one SessionState per user behind a mutex. State is
// process-local; it is UI convenience, not persisted data.
type SessionService struct {
	mu       sync.Mutex
	sessions map[int]*SessionState
}

var _ Sessions = (*SessionService)(nil)

func NewSessionService() *SessionService {
	return &SessionService{sessions: make(map[int]*SessionState)}
}

// get returns the state for userID, creating defaults on first touch.
// Callers must hold s.mu.
func (s *SessionService) get(userID int) *SessionState {
	st, ok := s.sessions[userID]
	if !ok {
		st = &SessionState{UserID: userID, Page: defaultPage, PageSize: defaultPageSize}
		s.sessions[userID] = st
	}
	return st
}

// Bind records the username on the session (set at sign-in).
func (s *SessionService) Bind(userID int, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).Username = username
}

func (s *SessionService) Paging(userID int) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.get(userID)
	return st.Page, st.PageSize
}

// SetPaging stores the catalog cursor, clamping page size to the UI bounds.
func (s *SessionService) SetPaging(userID, page, pageSize int) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < minPageSize {
		pageSize = minPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.get(userID)
	st.Page = page
	st.PageSize = pageSize
}

func (s *SessionService) SetSearchResults(userID int, products []models.DisplayProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).SearchResults = products
}

func (s *SessionService) SearchResults(userID int) []models.DisplayProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID).SearchResults
}

func (s *SessionService) SetPendingSelection(userID int, n *models.NutritionInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).PendingSelection = n
}

func (s *SessionService) PendingSelection(userID int) *models.NutritionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID).PendingSelection
}

// Transcript returns a copy of the chat transcript to keep callers from
// mutating shared state.
func (s *SessionService) Transcript(userID int) []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.get(userID).Transcript
	out := make([]chat.Message, len(t))
	copy(out, t)
	return out
}

func (s *SessionService) AppendTranscript(userID int, msgs ...chat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.get(userID)
	st.Transcript = append(st.Transcript, msgs...)
}

// Reset clears transient fields while preserving identity: UserID and
// Username survive; paging returns to defaults; results, selection and
// transcript clear.
func (s *SessionService) Reset(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.get(userID)
	st.Page = defaultPage
	st.PageSize = defaultPageSize
	st.SearchResults = nil
	st.PendingSelection = nil
	st.Transcript = nil
}
