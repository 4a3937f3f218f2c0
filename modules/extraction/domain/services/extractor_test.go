package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLMClient struct {
	response CompletionResult
	err      error
	calls    int
}

func (f *fakeLLMClient) Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error) {
	f.calls++
	if f.err != nil {
		return CompletionResult{}, f.err
	}
	return f.response, nil
}

func (f *fakeLLMClient) Name() string { return "fake" }

func TestIdentifySpeakers_EmptyInput(t *testing.T) {
	e := NewExtractor(&fakeLLMClient{})

	result, err := e.IdentifySpeakers(context.Background(), "   ", "")

	require.NoError(t, err)
	assert.Equal(t, "empty_input", result.IdentificationMethod)
	assert.Empty(t, result.Speakers)
}

func TestIdentifySpeakers_ExplicitLabelsSkipLLM(t *testing.T) {
	llm := &fakeLLMClient{}
	e := NewExtractor(llm)
	transcript := "Alice: let's ship the release today\nBob: I'll write the changelog\nAlice: sounds good"

	result, err := e.IdentifySpeakers(context.Background(), transcript, "")

	require.NoError(t, err)
	assert.Equal(t, "explicit_labels", result.IdentificationMethod)
	assert.Equal(t, 0, llm.calls, "explicit labels must not call the LLM")
	assert.Len(t, result.Speakers, 2)

	names := []string{result.Speakers[0].Name, result.Speakers[1].Name}
	assert.Contains(t, names, "Alice")
	assert.Contains(t, names, "Bob")
}

func TestIdentifySpeakers_FallsBackOnLLMError(t *testing.T) {
	llm := &fakeLLMClient{err: errors.New("provider unavailable")}
	e := NewExtractor(llm)

	result, err := e.IdentifySpeakers(context.Background(), "a transcript with no labels at all", "")

	require.NoError(t, err)
	assert.Equal(t, "fallback", result.IdentificationMethod)
	assert.Equal(t, 0.3, result.Confidence)
}

func TestIdentifySpeakers_FallsBackOnUnparsableResponse(t *testing.T) {
	llm := &fakeLLMClient{response: CompletionResult{Text: "not json at all"}}
	e := NewExtractor(llm)

	result, err := e.IdentifySpeakers(context.Background(), "a transcript with no labels at all", "")

	require.NoError(t, err)
	assert.Equal(t, "fallback", result.IdentificationMethod)
}

func TestIdentifySpeakers_AIInference(t *testing.T) {
	llm := &fakeLLMClient{response: CompletionResult{
		Text: `{"speakers":[{"id":"speaker_1","name":"Dana","confidence":0.8}]}`,
	}}
	e := NewExtractor(llm)

	result, err := e.IdentifySpeakers(context.Background(), "no labels here, just prose", "")

	require.NoError(t, err)
	assert.Equal(t, "ai_inference", result.IdentificationMethod)
	assert.Equal(t, 1, llm.calls)
	require.Len(t, result.Speakers, 1)
	assert.Equal(t, "Dana", result.Speakers[0].Name)
	assert.Equal(t, 0.8, result.Confidence)
}

func TestSummarize_EmptyInput(t *testing.T) {
	e := NewExtractor(&fakeLLMClient{})

	doc, err := e.Summarize(context.Background(), "", "Standup")

	require.NoError(t, err)
	assert.Equal(t, SummaryDocument{}, doc)
}

func TestSummarize_SingleChunk(t *testing.T) {
	llm := &fakeLLMClient{response: CompletionResult{
		Text: `{"overview":"Team discussed the roadmap.","key_outcomes":["Q3 scope agreed"],"decisions":["ship in September"],"participants":["Alice","Bob"],"next_steps":["write RFC"]}`,
	}}
	e := NewExtractor(llm)

	doc, err := e.Summarize(context.Background(), "short transcript text", "Planning")

	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, "Team discussed the roadmap.", doc.Overview)
	assert.Equal(t, []string{"ship in September"}, doc.Decisions)
}

func TestSummarize_WrappedJSONIsExtracted(t *testing.T) {
	llm := &fakeLLMClient{response: CompletionResult{
		Text: "Here is the summary:\n```json\n{\"overview\":\"ok\",\"key_outcomes\":[],\"decisions\":[],\"participants\":[],\"next_steps\":[]}\n```",
	}}
	e := NewExtractor(llm)

	doc, err := e.Summarize(context.Background(), "short transcript", "Standup")

	require.NoError(t, err)
	assert.Equal(t, "ok", doc.Overview)
}

func TestExtractTasks_EmptyInput(t *testing.T) {
	e := NewExtractor(&fakeLLMClient{})

	tasks, err := e.ExtractTasks(context.Background(), "meeting-1", "", "")

	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestExtractTasks_MergesDuplicateTitlesAcrossPasses(t *testing.T) {
	llm := &fakeLLMClient{response: CompletionResult{
		Text: `{"tasks":[{"ai_task_id":"t1","title":"Write the Changelog","description":"","assignee":"Bob","confidence":0.9,"extraction_method":"explicit","explicit_level":"direct"}]}`,
	}}
	e := NewExtractor(llm)

	tasks, err := e.ExtractTasks(context.Background(), "meeting-1", "Bob: I'll write the changelog", "")

	require.NoError(t, err)
	// explicit and implicit passes both return the same fake response, so
	// after title-normalized dedup only one task should survive.
	require.Len(t, tasks, 1)
	assert.Equal(t, "meeting-1", tasks[0].MeetingID)
	assert.Equal(t, "Bob", tasks[0].Assignee)
}

func TestExtractTasks_OnePassFailureStillReturnsOther(t *testing.T) {
	calls := 0
	llm := &fakeCompleteFunc{fn: func(req CompletionRequest) (CompletionResult, error) {
		calls++
		if calls == 1 {
			return CompletionResult{}, errors.New("explicit pass failed")
		}
		return CompletionResult{Text: `{"tasks":[{"ai_task_id":"t1","title":"Follow up with design","confidence":0.5}]}`}, nil
	}}
	e := NewExtractor(llm)

	tasks, err := e.ExtractTasks(context.Background(), "meeting-1", "some transcript", "")

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Follow up with design", tasks[0].Title)
}

type fakeCompleteFunc struct {
	fn func(req CompletionRequest) (CompletionResult, error)
}

func (f *fakeCompleteFunc) Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error) {
	return f.fn(req)
}

func (f *fakeCompleteFunc) Name() string { return "fake" }
