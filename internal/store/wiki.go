package store

import (
	"sync"

	"github.com/boettcherbikes/wiki-cli/internal/api"
)

// Capabilities describes which behaviors the wiki client exposes. The
// flags come from config and never change at runtime.
type Capabilities struct {
	// RequiresAuth hides write affordances behind an admin session.
	RequiresAuth bool
	// PairedAnswers switches from the flat FAQ collection to threaded
	// question/answer pairs.
	PairedAnswers bool
}

// EntryDraft is unvalidated form input for a new FAQ entry. RawTags is the
// comma-separated tag string as typed.
type EntryDraft struct {
	Question string
	Answer   string
	Category string
	RawTags  string
}

// QuestionDraft is unvalidated form input for a new open question.
type QuestionDraft struct {
	QuestionText string
	Category     string
	Author       string
	RawTags      string
}

// Store is the client-side view of the wiki collection. It caches the last
// successfully fetched state; a failed refresh leaves that state untouched
// and records a single notice instead.
//
// Methods that talk to the backend block and are safe to call from
// concurrently running commands.
type Store struct {
	mu     sync.Mutex
	client *api.Client
	caps   Capabilities

	entries    []api.Entry
	pairs      []api.QuestionAnswer
	categories []string
	stats      *api.Stats

	query    string
	category string
	notice   *Notice
	loaded   bool
}

// New creates a store backed by the given API client.
func New(client *api.Client, caps Capabilities) *Store {
	return &Store{client: client, caps: caps}
}

// Capabilities returns the fixed behavior flags.
func (s *Store) Capabilities() Capabilities {
	return s.caps
}

// LoadCollection fetches the collection for the current query and category
// filter. With an active query it re-runs the search, otherwise it lists.
func (s *Store) LoadCollection() error {
	s.mu.Lock()
	query := s.query
	category := s.category
	s.mu.Unlock()

	if query != "" {
		return s.search(query, category)
	}
	return s.list(category)
}

func (s *Store) list(category string) error {
	if s.caps.PairedAnswers {
		pairs, err := s.client.ListQuestions()
		if err != nil {
			return s.fail(err)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pairs = pairs
		s.loaded = true
		return nil
	}

	entries, err := s.client.ListEntries(category)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.loaded = true
	return nil
}

// Search runs a free-text search. An empty query resets to the plain
// listing. Responses for a query that is no longer current are dropped.
func (s *Store) Search(query string) error {
	s.mu.Lock()
	s.query = query
	category := s.category
	s.mu.Unlock()

	if query == "" {
		return s.LoadCollection()
	}
	return s.search(query, category)
}

func (s *Store) search(query, category string) error {
	if s.caps.PairedAnswers {
		// Category narrowing stays client side in paired mode.
		pairs, err := s.client.SearchQuestions(query, nil)
		if err != nil {
			return s.fail(err)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.query != query {
			return nil
		}
		s.pairs = pairs
		s.loaded = true
		return nil
	}

	var cat *string
	if category != "" {
		cat = &category
	}
	entries, err := s.client.SearchEntries(query, cat)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.query != query {
		return nil
	}
	s.entries = entries
	s.loaded = true
	return nil
}

// SetCategory switches the active category filter ("" means all). In FAQ
// mode this clears any active query and refetches from the server; in
// paired mode the filter is a pure client-side predicate and no request
// is made.
func (s *Store) SetCategory(category string) error {
	s.mu.Lock()
	s.category = category
	if !s.caps.PairedAnswers {
		s.query = ""
	}
	s.mu.Unlock()

	if s.caps.PairedAnswers {
		return nil
	}
	return s.list(category)
}

// resync refetches everything a mutation can move: the collection, the
// category list (a create may introduce a new category) and the counters.
func (s *Store) resync() error {
	if err := s.LoadCollection(); err != nil {
		return err
	}
	if err := s.RefreshCategories(); err != nil {
		return err
	}
	return s.RefreshStats()
}

// AddEntry creates a FAQ entry and resyncs so the view reflects the
// server's ordering, categories and counters. The draft is left to the
// caller, so a failed submit can be retried unchanged.
func (s *Store) AddEntry(draft EntryDraft) (*api.Entry, error) {
	entry, err := s.client.CreateEntry(api.CreateEntryInput{
		Question: draft.Question,
		Answer:   draft.Answer,
		Category: draft.Category,
		Tags:     NormalizeTags(draft.RawTags),
	})
	if err != nil {
		return nil, s.fail(err)
	}
	if err := s.resync(); err != nil {
		return entry, err
	}
	return entry, nil
}

// AddQuestion posts a new open question and resyncs.
func (s *Store) AddQuestion(draft QuestionDraft) (*api.Question, error) {
	q, err := s.client.CreateQuestion(api.CreateQuestionInput{
		QuestionText: draft.QuestionText,
		Category:     draft.Category,
		Author:       draft.Author,
		Tags:         NormalizeTags(draft.RawTags),
	})
	if err != nil {
		return nil, s.fail(err)
	}
	if err := s.resync(); err != nil {
		return q, err
	}
	return q, nil
}

// AddAnswer attaches an answer to an open question and resyncs, which
// also flips the question's answered flag server side.
func (s *Store) AddAnswer(questionID, text, author string) (*api.Answer, error) {
	a, err := s.client.CreateAnswer(questionID, api.CreateAnswerInput{
		AnswerText: text,
		Author:     author,
	})
	if err != nil {
		return nil, s.fail(err)
	}
	if err := s.resync(); err != nil {
		return a, err
	}
	return a, nil
}

// DeleteQuestion removes a question together with its answer.
func (s *Store) DeleteQuestion(id string) error {
	if _, err := s.client.DeleteQuestion(id); err != nil {
		return s.fail(err)
	}
	return s.resync()
}

// RefreshCategories fetches the category names in use.
func (s *Store) RefreshCategories() error {
	categories, err := s.client.GetCategories()
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
	return nil
}

// RefreshStats fetches the wiki counters.
func (s *Store) RefreshStats() error {
	stats, err := s.client.GetStats()
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
	return nil
}

// Visible returns the FAQ entries to display. The server already applied
// query and category, so this is the cached collection. Callers get a
// copy; the cached slice never leaves the lock.
func (s *Store) Visible() []api.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// VisiblePairs returns the question/answer pairs to display, narrowed by
// the active category filter.
func (s *Store) VisiblePairs() []api.QuestionAnswer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.category == "" {
		out := make([]api.QuestionAnswer, len(s.pairs))
		copy(out, s.pairs)
		return out
	}
	visible := make([]api.QuestionAnswer, 0, len(s.pairs))
	for _, p := range s.pairs {
		if p.Question.Category == s.category {
			visible = append(visible, p)
		}
	}
	return visible
}

// Unanswered returns the open questions still waiting for an answer.
func (s *Store) Unanswered() []api.QuestionAnswer {
	s.mu.Lock()
	defer s.mu.Unlock()
	open := make([]api.QuestionAnswer, 0)
	for _, p := range s.pairs {
		if p.Answer == nil {
			open = append(open, p)
		}
	}
	return open
}

// Query returns the active free-text query.
func (s *Store) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Category returns the active category filter ("" means all).
func (s *Store) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// Categories returns the known category names.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Stats returns the last fetched counters, or nil before the first fetch.
func (s *Store) Stats() *api.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil
	}
	cp := *s.stats
	return &cp
}

// Loaded reports whether the collection has been fetched at least once.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Notice returns the pending failure notice, or nil.
func (s *Store) Notice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// ClearNotice dismisses the pending failure notice.
func (s *Store) ClearNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = nil
}

func (s *Store) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = Classify(err)
	return err
}
