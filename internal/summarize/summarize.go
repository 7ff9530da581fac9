package summarize

import (
	"context"
	"fmt"
)

// Fallback is returned in place of a completion when the provider answers
// without usable content.
const Fallback = "not working"

// Summarizer produces a summary of a transcript following an instruction.
type Summarizer interface {
	// Summarize issues one completion for req and returns its text.
	// Returns ErrTextMissing without contacting the provider when req.UserText is empty.
	Summarize(ctx context.Context, req Request) (string, error)
}

// Request is the body accepted by the completion endpoint.
// UserPrompt is optional; nil means the caller sent no instruction at all.
type Request struct {
	UserText   string  `json:"userText"`
	UserPrompt *string `json:"userPrompt,omitempty"`
}

// NewRequest builds a Request carrying both text and instruction.
func NewRequest(text, instruction string) Request {
	return Request{UserText: text, UserPrompt: &instruction}
}

// Validate reports ErrTextMissing when there is no transcript text.
func (r Request) Validate() error {
	if r.UserText == "" {
		return ErrTextMissing
	}
	return nil
}

// instruction returns the instruction as it is interpolated into the prompt.
// An absent instruction renders as "undefined", which the model reads as
// "no custom format requested".
func (r Request) instruction() string {
	if r.UserPrompt == nil {
		return "undefined"
	}
	return *r.UserPrompt
}

// BuildPrompt embeds the transcript and instruction verbatim in the fixed
// expert prompt. Neither value is escaped or truncated.
func BuildPrompt(req Request) string {
	return fmt.Sprintf(promptTemplate, req.UserText, req.instruction())
}

const promptTemplate = `You are an expert in the domain relevant to the provided text.
Your task is to carefully read the user-provided text and then create a summarized response that follows the user’s custom instructions.

### Guidelines:
- Always respond as a subject-matter expert.
- Pay close attention to the user’s custom instructions and follow them exactly if they specify a format or style.
- If the user does not specify a format, use **concise bullet points** as the default format.
- Focus only on the most important insights, facts, or arguments.
- Keep the summary clear, professional, and structured.

### Input:
- User Text: %s
- Custom Instructions: %s

### Output:
Provide the final response **in the format requested by the custom instructions**.
If no format is requested, output the summary in **bullet points by default**.
`
