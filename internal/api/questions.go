package api

import "fmt"

// --- Question/Answer Methods ---

// ListQuestions fetches all question/answer pairs.
func (c *Client) ListQuestions() ([]QuestionAnswer, error) {
	data, err := c.get("/api/questions")
	if err != nil {
		return nil, err
	}
	return decodeList[QuestionAnswer](data)
}

// CreateQuestion posts a new open question.
func (c *Client) CreateQuestion(input CreateQuestionInput) (*Question, error) {
	data, err := c.post("/api/questions", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Question](data)
}

// CreateAnswer attaches an answer to an open question. The backend rejects
// a second answer for the same question.
func (c *Client) CreateAnswer(questionID string, input CreateAnswerInput) (*Answer, error) {
	data, err := c.post(fmt.Sprintf("/api/questions/%s/answer", questionID), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Answer](data)
}

// DeleteQuestion removes a question and its answer.
func (c *Client) DeleteQuestion(questionID string) (*DeleteResult, error) {
	data, err := c.del(fmt.Sprintf("/api/questions/%s", questionID))
	if err != nil {
		return nil, err
	}
	return decodeOne[DeleteResult](data)
}

// SearchQuestions runs a server-authoritative search over the pair
// collection. A nil category searches all categories.
func (c *Client) SearchQuestions(query string, category *string) ([]QuestionAnswer, error) {
	data, err := c.post("/api/search", SearchRequest{Query: query, Category: category})
	if err != nil {
		return nil, err
	}
	return decodeList[QuestionAnswer](data)
}
