package domain

// Sample is one pre-seeded example test case attached to a problem
type Sample struct {
	ID          string `json:"id,omitempty"`
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// Problem is the hosting problem's metadata as served by the content API.
// Only the fields the workbench needs are modeled here.
type Problem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	TestcaseSamples []Sample `json:"testcaseSamples"`
}
