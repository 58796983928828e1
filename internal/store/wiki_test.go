package store

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boettcherbikes/wiki-cli/internal/api"
)

func newTestStore(t *testing.T, caps Capabilities, handler http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(api.NewClient(srv.URL, ""), caps)
}

func writeEntries(w http.ResponseWriter, entries []api.Entry) {
	json.NewEncoder(w).Encode(entries)
}

func writePairs(w http.ResponseWriter, pairs []api.QuestionAnswer) {
	json.NewEncoder(w).Encode(pairs)
}

func TestLoadCollectionFAQ(t *testing.T) {
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/knowledge", r.URL.Path)
		writeEntries(w, []api.Entry{
			{ID: "1", Question: "Scanner defekt?", Answer: "Neu starten", Category: "IT-Support"},
		})
	})

	require.False(t, s.Loaded())
	require.NoError(t, s.LoadCollection())
	assert.True(t, s.Loaded())

	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Scanner defekt?", visible[0].Question)
}

func TestLoadCollectionIdempotent(t *testing.T) {
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		writeEntries(w, []api.Entry{{ID: "1", Question: "q", Answer: "a", Category: "c"}})
	})

	require.NoError(t, s.LoadCollection())
	first := s.Visible()
	require.NoError(t, s.LoadCollection())
	assert.Equal(t, first, s.Visible())
}

func TestSetCategoryFAQHitsServerAndClearsQuery(t *testing.T) {
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/search" {
			writeEntries(w, []api.Entry{{ID: "s", Question: "Treffer", Category: "IT-Support"}})
			return
		}
		assert.Equal(t, "/api/knowledge", r.URL.Path)
		assert.Equal(t, "Produktion", r.URL.Query().Get("category"))
		writeEntries(w, []api.Entry{{ID: "2", Question: "Rahmen?", Category: "Produktion"}})
	})

	require.NoError(t, s.Search("Scanner"))
	assert.Equal(t, "Scanner", s.Query())

	require.NoError(t, s.SetCategory("Produktion"))
	assert.Empty(t, s.Query(), "category switch discards the active query")
	assert.Equal(t, "Produktion", s.Category())

	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Rahmen?", visible[0].Question)
}

func TestSetCategoryPairedIsClientSide(t *testing.T) {
	var requests atomic.Int32
	s := newTestStore(t, Capabilities{PairedAnswers: true}, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writePairs(w, []api.QuestionAnswer{
			{Question: api.Question{ID: "q-1", QuestionText: "Kette?", Category: "Wartung"}},
			{Question: api.Question{ID: "q-2", QuestionText: "Lack?", Category: "Qualitätskontrolle"}},
		})
	})

	require.NoError(t, s.LoadCollection())
	before := requests.Load()

	require.NoError(t, s.SetCategory("Wartung"))
	assert.Equal(t, before, requests.Load(), "paired category filter must not hit the server")

	visible := s.VisiblePairs()
	require.Len(t, visible, 1)
	assert.Equal(t, "q-1", visible[0].Question.ID)

	require.NoError(t, s.SetCategory(""))
	assert.Len(t, s.VisiblePairs(), 2)
}

func TestSearchFAQSendsCategory(t *testing.T) {
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/knowledge" {
			writeEntries(w, []api.Entry{})
			return
		}
		var body api.SearchRequest
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "Öl", body.Query)
		require.NotNil(t, body.Category)
		assert.Equal(t, "Wartung", *body.Category)
		writeEntries(w, []api.Entry{{ID: "1", Question: "Kette ölen?", Category: "Wartung"}})
	})

	require.NoError(t, s.SetCategory("Wartung"))
	require.NoError(t, s.Search("Öl"))
	require.Len(t, s.Visible(), 1)
}

func TestSearchEmptyQueryResetsToListing(t *testing.T) {
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/knowledge", r.URL.Path, "empty query must list, not search")
		writeEntries(w, []api.Entry{{ID: "1", Question: "q", Category: "c"}})
	})

	require.NoError(t, s.Search(""))
	assert.Empty(t, s.Query())
	assert.Len(t, s.Visible(), 1)
}

func TestSearchDropsStaleResponse(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		var body api.SearchRequest
		json.NewDecoder(r.Body).Decode(&body)
		if body.Query == "alt" {
			close(started)
			<-release
			writeEntries(w, []api.Entry{{ID: "stale", Question: "alt"}})
			return
		}
		writeEntries(w, []api.Entry{{ID: "fresh", Question: "neu"}})
	})

	done := make(chan error, 1)
	go func() { done <- s.Search("alt") }()
	<-started

	// The second search supersedes the first while it is still in flight.
	require.NoError(t, s.Search("neu"))
	close(release)
	require.NoError(t, <-done)

	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "fresh", visible[0].ID)
}

func TestFailureKeepsPreviousCollection(t *testing.T) {
	var failing atomic.Bool
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"kaputt"}`))
			return
		}
		writeEntries(w, []api.Entry{{ID: "1", Question: "q", Category: "c"}})
	})

	require.NoError(t, s.LoadCollection())
	require.Len(t, s.Visible(), 1)

	failing.Store(true)
	err := s.LoadCollection()
	require.Error(t, err)

	assert.Len(t, s.Visible(), 1, "failed refresh must not clear the collection")
	notice := s.Notice()
	require.NotNil(t, notice)
	assert.Equal(t, FailureTransport, notice.Kind)
	assert.Equal(t, "kaputt", notice.Message)

	s.ClearNotice()
	assert.Nil(t, s.Notice())
}

func TestFailureNoticeReplacedNotStacked(t *testing.T) {
	var calls atomic.Int32
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Not authenticated"}`))
			return
		}
		w.Write([]byte("not-json"))
	})

	require.Error(t, s.LoadCollection())
	require.Equal(t, FailureAuth, s.Notice().Kind)

	require.Error(t, s.LoadCollection())
	require.Equal(t, FailureDecode, s.Notice().Kind)
}

func TestAddEntryNormalizesTagsAndRefetches(t *testing.T) {
	var posted api.CreateEntryInput
	var gets atomic.Int32
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewDecoder(r.Body).Decode(&posted)
			json.NewEncoder(w).Encode(api.Entry{ID: "new", Question: posted.Question})
		case r.URL.Path == "/api/categories":
			json.NewEncoder(w).Encode(api.CategoryList{Categories: []string{"IT-Support"}})
		case r.URL.Path == "/api/stats":
			json.NewEncoder(w).Encode(api.Stats{TotalEntries: 1})
		default:
			gets.Add(1)
			writeEntries(w, []api.Entry{{ID: "new", Question: posted.Question}})
		}
	})

	entry, err := s.AddEntry(EntryDraft{
		Question: "Scanner defekt?",
		Answer:   "Neu starten",
		Category: "IT-Support",
		RawTags:  " scanner , hardware ",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", entry.ID)
	assert.Equal(t, []string{"scanner", "hardware"}, posted.Tags)
	assert.Equal(t, int32(1), gets.Load(), "successful create refetches the collection")
	require.Len(t, s.Visible(), 1)
}

// A create can introduce a brand-new category and always moves the
// counters, so the category list and stats refresh along with the
// collection.
func TestAddEntryResyncsCategoriesAndStats(t *testing.T) {
	var catHits, statHits atomic.Int32
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(api.Entry{ID: "new", Question: "q", Category: "Logistik"})
		case r.URL.Path == "/api/categories":
			catHits.Add(1)
			json.NewEncoder(w).Encode(api.CategoryList{Categories: []string{"IT-Support", "Logistik"}})
		case r.URL.Path == "/api/stats":
			statHits.Add(1)
			json.NewEncoder(w).Encode(api.Stats{TotalEntries: 2, CategoriesCount: 2})
		default:
			writeEntries(w, []api.Entry{{ID: "new", Question: "q", Category: "Logistik"}})
		}
	})

	_, err := s.AddEntry(EntryDraft{Question: "q", Answer: "a", Category: "Logistik"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), catHits.Load(), "create refreshes the category list")
	assert.Equal(t, int32(1), statHits.Load(), "create refreshes the counters")
	assert.Equal(t, []string{"IT-Support", "Logistik"}, s.Categories())
	require.NotNil(t, s.Stats())
	assert.Equal(t, 2, s.Stats().TotalEntries)
}

func TestAddEntryFailureLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"detail":"Admin-Rechte erforderlich"}`))
			return
		}
		writeEntries(w, []api.Entry{{ID: "1", Question: "q"}})
	})

	require.NoError(t, s.LoadCollection())

	_, err := s.AddEntry(EntryDraft{Question: "x", Answer: "y", Category: "z"})
	require.Error(t, err)
	assert.Len(t, s.Visible(), 1)
	require.NotNil(t, s.Notice())
	assert.Equal(t, FailureAuth, s.Notice().Kind)
}

func TestAddAnswerRefetchFlipsAnsweredFlag(t *testing.T) {
	var answered atomic.Bool
	s := newTestStore(t, Capabilities{PairedAnswers: true}, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			answered.Store(true)
			json.NewEncoder(w).Encode(api.Answer{ID: "a-1", QuestionID: "q-1", AnswerText: "Ölen."})
			return
		}
		switch r.URL.Path {
		case "/api/categories":
			json.NewEncoder(w).Encode(api.CategoryList{Categories: []string{"Wartung"}})
			return
		case "/api/stats":
			json.NewEncoder(w).Encode(api.Stats{TotalQuestions: 1})
			return
		}
		pair := api.QuestionAnswer{Question: api.Question{ID: "q-1", QuestionText: "Kette?", Answered: answered.Load()}}
		if answered.Load() {
			pair.Answer = &api.Answer{ID: "a-1", QuestionID: "q-1", AnswerText: "Ölen."}
		}
		writePairs(w, []api.QuestionAnswer{pair})
	})

	require.NoError(t, s.LoadCollection())
	require.Len(t, s.Unanswered(), 1)

	_, err := s.AddAnswer("q-1", "Ölen.", "admin")
	require.NoError(t, err)

	assert.Empty(t, s.Unanswered())
	pairs := s.VisiblePairs()
	require.Len(t, pairs, 1)
	require.NotNil(t, pairs[0].Answer)
	assert.True(t, pairs[0].Question.Answered)
}

func TestDeleteQuestionRefetches(t *testing.T) {
	var deleted atomic.Bool
	s := newTestStore(t, Capabilities{PairedAnswers: true}, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted.Store(true)
			w.Write([]byte(`{"message":"Frage erfolgreich gelöscht"}`))
			return
		}
		switch r.URL.Path {
		case "/api/categories":
			json.NewEncoder(w).Encode(api.CategoryList{Categories: []string{}})
			return
		case "/api/stats":
			json.NewEncoder(w).Encode(api.Stats{})
			return
		}
		if deleted.Load() {
			writePairs(w, []api.QuestionAnswer{})
			return
		}
		writePairs(w, []api.QuestionAnswer{{Question: api.Question{ID: "q-1", QuestionText: "Kette?"}}})
	})

	require.NoError(t, s.LoadCollection())
	require.Len(t, s.VisiblePairs(), 1)

	require.NoError(t, s.DeleteQuestion("q-1"))
	assert.Empty(t, s.VisiblePairs())
}

func TestRefreshCategoriesAndStats(t *testing.T) {
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/categories":
			w.Write([]byte(`{"categories":["IT-Support","Produktion","Wartung"]}`))
		case "/api/stats":
			w.Write([]byte(`{"total_questions":12,"answered_questions":9,"unanswered_questions":3}`))
		}
	})

	require.NoError(t, s.RefreshCategories())
	assert.Equal(t, []string{"IT-Support", "Produktion", "Wartung"}, s.Categories())

	require.NoError(t, s.RefreshStats())
	require.NotNil(t, s.Stats())
	assert.Equal(t, 12, s.Stats().TotalQuestions)
	assert.Equal(t, 3, s.Stats().UnansweredQuestions)
}

// Accessors hand out copies; mutating a returned value must never reach
// the cached state behind the store's lock.
func TestAccessorsReturnDetachedCopies(t *testing.T) {
	s := newTestStore(t, Capabilities{}, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/categories":
			w.Write([]byte(`{"categories":["IT-Support"]}`))
		case "/api/stats":
			w.Write([]byte(`{"total_entries":3}`))
		default:
			writeEntries(w, []api.Entry{{ID: "1", Question: "Scanner defekt?"}})
		}
	})

	require.NoError(t, s.LoadCollection())
	require.NoError(t, s.RefreshCategories())
	require.NoError(t, s.RefreshStats())

	s.Visible()[0].Question = "verändert"
	assert.Equal(t, "Scanner defekt?", s.Visible()[0].Question)

	s.Categories()[0] = "verändert"
	assert.Equal(t, []string{"IT-Support"}, s.Categories())

	s.Stats().TotalEntries = 99
	assert.Equal(t, 3, s.Stats().TotalEntries)
}

func TestClassifyTaxonomy(t *testing.T) {
	assert.Nil(t, Classify(nil))

	auth := Classify(&api.APIError{Status: 401, Message: "Not authenticated"})
	assert.Equal(t, FailureAuth, auth.Kind)

	forbidden := Classify(&api.APIError{Status: 403, Message: "Admin-Rechte erforderlich"})
	assert.Equal(t, FailureAuth, forbidden.Kind)

	server := Classify(&api.APIError{Status: 500, Message: "kaputt"})
	assert.Equal(t, FailureTransport, server.Kind)

	decode := Classify(&api.DecodeError{Err: assert.AnError})
	assert.Equal(t, FailureDecode, decode.Kind)

	transport := Classify(assert.AnError)
	assert.Equal(t, FailureTransport, transport.Kind)
}

// A full browse session: list, narrow to a category, search within it,
// then reset.
func TestScannerLookupScenario(t *testing.T) {
	all := []api.Entry{
		{ID: "1", Question: "Scanner defekt?", Answer: "Neu starten", Category: "IT-Support", Tags: []string{"scanner"}},
		{ID: "2", Question: "Rahmen lackieren?", Answer: "Kabine 2", Category: "Produktion"},
	}
	s := newTestStore(t, Capabilities{RequiresAuth: true}, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/search" {
			var body api.SearchRequest
			json.NewDecoder(r.Body).Decode(&body)
			writeEntries(w, []api.Entry{all[0]})
			return
		}
		if cat := r.URL.Query().Get("category"); cat != "" {
			filtered := []api.Entry{}
			for _, e := range all {
				if e.Category == cat {
					filtered = append(filtered, e)
				}
			}
			writeEntries(w, filtered)
			return
		}
		writeEntries(w, all)
	})

	require.NoError(t, s.LoadCollection())
	assert.Len(t, s.Visible(), 2)

	require.NoError(t, s.SetCategory("IT-Support"))
	require.Len(t, s.Visible(), 1)

	require.NoError(t, s.Search("Scanner"))
	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Scanner defekt?", visible[0].Question)

	require.NoError(t, s.SetCategory(""))
	assert.Empty(t, s.Query())
	assert.Len(t, s.Visible(), 2)
	assert.True(t, s.Capabilities().RequiresAuth)
}
