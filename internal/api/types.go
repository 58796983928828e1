package api

import "time"

// --- Knowledge Entry (FAQ collection) ---

// Entry is a question/answer knowledge-base record.
type Entry struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEntryInput defines the fields required to create a new entry.
type CreateEntryInput struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// --- Question/Answer pairs (threaded collection) ---

// Question is an open question posted to the wiki.
type Question struct {
	ID           string    `json:"id"`
	QuestionText string    `json:"question_text"`
	Category     string    `json:"category"`
	Author       string    `json:"author"`
	Tags         []string  `json:"tags"`
	Answered     bool      `json:"answered"`
	CreatedAt    time.Time `json:"created_at"`
}

// Answer is the at-most-one answer attached to a question.
type Answer struct {
	ID           string    `json:"id"`
	QuestionID   string    `json:"question_id"`
	AnswerText   string    `json:"answer_text"`
	Author       string    `json:"author"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// QuestionAnswer pairs a question with its answer, if one exists.
// Question.Answered is authoritative for display; Answer presence decides
// whether the answer block renders.
type QuestionAnswer struct {
	Question Question `json:"question"`
	Answer   *Answer  `json:"answer"`
}

// CreateQuestionInput defines the fields required to post a question.
type CreateQuestionInput struct {
	QuestionText string   `json:"question_text"`
	Category     string   `json:"category"`
	Author       string   `json:"author"`
	Tags         []string `json:"tags"`
}

// CreateAnswerInput defines the fields required to answer a question.
type CreateAnswerInput struct {
	AnswerText string `json:"answer_text"`
	Author     string `json:"author"`
}

// --- Search ---

// SearchRequest is the body of POST /api/search. A nil category means
// "all categories"; the search itself is server-authoritative.
type SearchRequest struct {
	Query    string  `json:"query"`
	Category *string `json:"category"`
}

// --- Metadata ---

// CategoryList is the response of GET /api/categories.
type CategoryList struct {
	Categories []string `json:"categories"`
}

// Stats carries the wiki counters. Field presence varies with the backend
// collection shape: FAQ backends report total_entries, threaded backends
// report total_questions and the answered split.
type Stats struct {
	TotalEntries        int `json:"total_entries"`
	TotalQuestions      int `json:"total_questions"`
	CategoriesCount     int `json:"categories_count"`
	AnsweredQuestions   int `json:"answered_questions"`
	UnansweredQuestions int `json:"unanswered_questions"`
}

// Health is the response of GET /api/health.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// --- Admin session ---

// LoginInput defines the credentials for the admin login exchange.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse contains the bearer credential after a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

// VerifyResponse confirms a still-valid credential.
type VerifyResponse struct {
	Username string `json:"username"`
}

// DeleteResult is the acknowledgement body of a delete.
type DeleteResult struct {
	Message string `json:"message"`
}

// --- Query ---

// QueryParams is a map of URL query parameters.
type QueryParams map[string]string
