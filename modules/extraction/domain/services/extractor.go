package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gitscribe/modules/actionitem/domain/entities"
)

// Speaker is one entry of IdentifySpeakers's result (spec.md §4.5).
type Speaker struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Segments        []string `json:"segments"`
	TotalWords      int      `json:"total_words"`
	Characteristics string   `json:"characteristics"`
	Confidence      float64  `json:"confidence"`
}

// SpeakerResult wraps IdentifySpeakers's full envelope, including the
// identification method for downstream logging/debugging.
type SpeakerResult struct {
	Speakers             []Speaker `json:"speakers"`
	Confidence           float64   `json:"confidence"`
	IdentificationMethod string    `json:"identification_method"`
}

// SummaryDocument mirrors entities.Summary's sections (spec.md §3).
type SummaryDocument struct {
	Overview    string   `json:"overview"`
	KeyOutcomes []string `json:"key_outcomes"`
	Decisions   []string `json:"decisions"`
	Participants []string `json:"participants"`
	NextSteps   []string `json:"next_steps"`
}

// Extractor converts a transcript into structured artifacts (spec.md
// §4.5). It is the only consumer of LLMClient in this codebase; every
// operation degrades to a schema-valid, low-confidence result rather than
// failing when the LLM is unavailable or its output can't be parsed
// (spec.md §7 LLMClientError/LLMParseError).
type Extractor struct {
	llm LLMClient
}

func NewExtractor(llm LLMClient) *Extractor {
	return &Extractor{llm: llm}
}

var explicitLabelPattern = regexp.MustCompile(`(?m)^([A-Z][\w .'-]{0,40}):\s`)

// IdentifySpeakers implements spec.md §4.5's three-tier strategy: empty
// input short-circuits, explicit "Name: " labels are parsed without an LLM
// call, otherwise the LLM is asked to infer speaker turns.
func (e *Extractor) IdentifySpeakers(ctx context.Context, text, meetingContext string) (SpeakerResult, error) {
	if strings.TrimSpace(text) == "" {
		return SpeakerResult{Speakers: []Speaker{}, Confidence: 0, IdentificationMethod: "empty_input"}, nil
	}

	if matches := explicitLabelPattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		bySpeaker := make(map[string][]string)
		var order []string
		for _, line := range strings.Split(text, "\n") {
			m := explicitLabelPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := m[1]
			segment := strings.TrimPrefix(line, m[0])
			if _, seen := bySpeaker[name]; !seen {
				order = append(order, name)
			}
			bySpeaker[name] = append(bySpeaker[name], segment)
		}

		speakers := make([]Speaker, 0, len(order))
		for i, name := range order {
			segments := bySpeaker[name]
			words := 0
			for _, s := range segments {
				words += len(strings.Fields(s))
			}
			speakers = append(speakers, Speaker{
				ID:         "speaker_" + strconv.Itoa(i+1),
				Name:       name,
				Segments:   segments,
				TotalWords: words,
				Confidence: 0.9,
			})
		}
		return SpeakerResult{Speakers: speakers, Confidence: 0.9, IdentificationMethod: "explicit_labels"}, nil
	}

	req := CompletionRequest{
		SystemPrompt: "Identify distinct speakers in this meeting transcript. Respond with JSON: {\"speakers\":[{\"id\":\"\",\"name\":\"\",\"segments\":[],\"total_words\":0,\"characteristics\":\"\",\"confidence\":0.0}]}",
		UserPrompt:   meetingContext + "\n\n" + text,
		Schema:       "speakers[]",
		JSONMode:     true,
	}
	result, err := e.llm.Complete(ctx, req)
	if err != nil {
		return fallbackSpeaker(), nil
	}
	if result.FallbackUsed {
		return fallbackSpeaker(), nil
	}

	var parsed struct {
		Speakers []Speaker `json:"speakers"`
	}
	if jsonErr := parseJSON(result.Text, &parsed); jsonErr != nil {
		return fallbackSpeaker(), nil
	}

	confidence := 0.0
	for _, s := range parsed.Speakers {
		confidence += s.Confidence
	}
	if len(parsed.Speakers) > 0 {
		confidence /= float64(len(parsed.Speakers))
	}

	return SpeakerResult{Speakers: parsed.Speakers, Confidence: confidence, IdentificationMethod: "ai_inference"}, nil
}

func fallbackSpeaker() SpeakerResult {
	return SpeakerResult{
		Speakers:             []Speaker{{ID: "speaker_1", Name: "Unknown Speaker", Confidence: 0.3}},
		Confidence:           0.3,
		IdentificationMethod: "fallback",
	}
}

const (
	chunkThreshold = 5000
	maxChunkSize   = 30000
	chunkOverlap   = 1000
)

// Summarize implements spec.md §4.5's chunk-then-consolidate strategy.
func (e *Extractor) Summarize(ctx context.Context, text, title string) (SummaryDocument, error) {
	if strings.TrimSpace(text) == "" {
		return SummaryDocument{}, nil
	}

	chunks := chunkText(text, maxChunkSize, chunkOverlap)
	if len(chunks) == 1 && len(text) <= chunkThreshold {
		doc, err := e.summarizeChunk(ctx, chunks[0], title)
		if err != nil {
			return SummaryDocument{}, nil
		}
		return doc, nil
	}

	var partials []string
	for _, chunk := range chunks {
		doc, err := e.summarizeChunk(ctx, chunk, title)
		if err != nil {
			continue
		}
		partial, _ := json.Marshal(doc)
		partials = append(partials, string(partial))
	}

	req := CompletionRequest{
		SystemPrompt: "Consolidate these partial meeting summaries into one. Respond with JSON matching {\"overview\":\"\",\"key_outcomes\":[],\"decisions\":[],\"participants\":[],\"next_steps\":[]}",
		UserPrompt:   strings.Join(partials, "\n---\n"),
		Schema:       "summary",
		JSONMode:     true,
	}
	result, err := e.llm.Complete(ctx, req)
	if err != nil {
		return SummaryDocument{}, nil
	}
	var doc SummaryDocument
	if jsonErr := parseJSON(result.Text, &doc); jsonErr != nil {
		return SummaryDocument{}, nil
	}
	return doc, nil
}

func (e *Extractor) summarizeChunk(ctx context.Context, text, title string) (SummaryDocument, error) {
	req := CompletionRequest{
		SystemPrompt: "Summarize this meeting transcript titled \"" + title + "\". Respond with JSON matching {\"overview\":\"\",\"key_outcomes\":[],\"decisions\":[],\"participants\":[],\"next_steps\":[]}",
		UserPrompt:   text,
		Schema:       "summary",
		JSONMode:     true,
	}
	result, err := e.llm.Complete(ctx, req)
	if err != nil {
		return SummaryDocument{}, err
	}
	var doc SummaryDocument
	if jsonErr := parseJSON(result.Text, &doc); jsonErr != nil {
		return SummaryDocument{}, jsonErr
	}
	return doc, nil
}

// chunkText splits text into overlapping windows no larger than size, with
// overlap bytes of context preserved between adjacent chunks.
func chunkText(text string, size, overlap int) []string {
	if len(text) <= size {
		return []string{text}
	}
	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
		start = end - overlap
	}
	return chunks
}

var priorityCues = map[string]entities.Priority{
	"urgent":  entities.Urgent,
	"critical": entities.High,
	"asap":    entities.High,
	"blocker": entities.High,
	"should":  entities.Medium,
	"important": entities.Medium,
}

func inferPriority(text string) entities.Priority {
	lower := strings.ToLower(text)
	for cue, priority := range priorityCues {
		if strings.Contains(lower, cue) {
			return priority
		}
	}
	return entities.Low
}

type extractedTask struct {
	AITaskID        string   `json:"ai_task_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Assignee        string   `json:"assignee"`
	DueDate         string   `json:"due_date"`
	Category        string   `json:"category"`
	BusinessImpact  string   `json:"business_impact"`
	Dependencies    []string `json:"dependencies"`
	MentionedBy     string   `json:"mentioned_by"`
	Context         string   `json:"context"`
	ExplicitLevel   string   `json:"explicit_level"`
	SourceSegment   string   `json:"source_transcript_segment"`
	ExtractionMethod string  `json:"extraction_method"`
	Confidence      float64  `json:"confidence"`
}

// ExtractTasks implements spec.md §4.5's two-pass extract-then-merge
// strategy. Both passes are LLM-driven here (the explicit/implicit
// distinction is carried in the prompt and in extraction_method on the
// result, not in separate regex heuristics) with near-duplicate titles
// merged by the higher-confidence source.
func (e *Extractor) ExtractTasks(ctx context.Context, meetingID, text, meetingContext string) ([]entities.Task, error) {
	if strings.TrimSpace(text) == "" {
		return []entities.Task{}, nil
	}

	explicit, err := e.extractPass(ctx, text, meetingContext, "explicit")
	if err != nil {
		explicit = nil
	}
	implicit, err := e.extractPass(ctx, text, meetingContext, "implicit")
	if err != nil {
		implicit = nil
	}

	merged := mergeByTitle(append(explicit, implicit...))

	now := time.Now()
	tasks := make([]entities.Task, 0, len(merged))
	for _, et := range merged {
		priority := inferPriority(et.Context + " " + et.Description)
		impact := entities.BusinessImpact(et.BusinessImpact)
		if impact == "" {
			impact = entities.ImpactLow
		}
		level := entities.ExplicitLevel(et.ExplicitLevel)
		if level == "" {
			level = entities.LevelInferred
		}
		method := entities.ExtractionMethod(et.ExtractionMethod)
		if method == "" {
			method = entities.ExtractionImplicit
		}

		task := entities.NewTask(meetingID, et.AITaskID, et.Title, et.Description, priority, impact, level, method, now, et.Confidence)
		task.Assignee = et.Assignee
		task.Category = et.Category
		task.Dependencies = et.Dependencies
		task.MentionedBy = et.MentionedBy
		task.Context = et.Context
		task.SourceTranscriptSegment = et.SourceSegment

		if et.DueDate != "" {
			if parsed, err := time.Parse("2006-01-02", et.DueDate); err == nil {
				task.DueDate = &parsed
			} else {
				// Free-text due dates (e.g. "Friday") are stored verbatim
				// in DueDateText rather than resolved, per spec.md §4.5.
				task.DueDateText = et.DueDate
			}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (e *Extractor) extractPass(ctx context.Context, text, meetingContext, pass string) ([]extractedTask, error) {
	var systemPrompt string
	if pass == "explicit" {
		systemPrompt = "Find explicit task assignments in this transcript: statements like \"X will do Y by Z\", imperative requests, or direct assignments after names. Respond with JSON: {\"tasks\":[{\"ai_task_id\":\"\",\"title\":\"\",\"description\":\"\",\"assignee\":\"\",\"due_date\":\"\",\"category\":\"\",\"business_impact\":\"\",\"dependencies\":[],\"mentioned_by\":\"\",\"context\":\"\",\"explicit_level\":\"direct\",\"source_transcript_segment\":\"\",\"extraction_method\":\"explicit\",\"confidence\":0.0}]}"
	} else {
		systemPrompt = "Find implicit tasks in this transcript: problems or decisions that imply follow-up work but have no named owner. Do not invent an assignee. Respond with JSON: {\"tasks\":[{\"ai_task_id\":\"\",\"title\":\"\",\"description\":\"\",\"assignee\":\"\",\"due_date\":\"\",\"category\":\"\",\"business_impact\":\"\",\"dependencies\":[],\"mentioned_by\":\"\",\"context\":\"\",\"explicit_level\":\"implied\",\"source_transcript_segment\":\"\",\"extraction_method\":\"implicit\",\"confidence\":0.0}]}"
	}

	req := CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   meetingContext + "\n\n" + text,
		Schema:       "tasks[]",
		JSONMode:     true,
	}
	result, err := e.llm.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Tasks []extractedTask `json:"tasks"`
	}
	if jsonErr := parseJSON(result.Text, &parsed); jsonErr != nil {
		return nil, jsonErr
	}
	for i := range parsed.Tasks {
		if parsed.Tasks[i].AITaskID == "" {
			parsed.Tasks[i].AITaskID = pass + "_" + strconv.Itoa(i)
		}
	}
	return parsed.Tasks, nil
}

var punctuationPattern = regexp.MustCompile(`[^\w\s]`)

func normalizeTitle(title string) string {
	return strings.TrimSpace(punctuationPattern.ReplaceAllString(strings.ToLower(title), ""))
}

// mergeByTitle unions tasks from both passes, merging near-duplicate titles
// (case-insensitive, trimmed, punctuation-stripped) by keeping the
// higher-confidence source, per spec.md §4.5.
func mergeByTitle(tasks []extractedTask) []extractedTask {
	byTitle := make(map[string]extractedTask)
	var order []string
	for _, t := range tasks {
		key := normalizeTitle(t.Title)
		if existing, ok := byTitle[key]; ok {
			if t.Confidence > existing.Confidence {
				byTitle[key] = t
			}
			continue
		}
		byTitle[key] = t
		order = append(order, key)
	}
	merged := make([]extractedTask, 0, len(order))
	for _, key := range order {
		merged = append(merged, byTitle[key])
	}
	return merged
}

// parseJSON parses a well-formed JSON body, or extracts the first JSON
// object substring when the LLM wraps its answer in prose (spec.md §4.4).
func parseJSON(text string, v interface{}) error {
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return json.Unmarshal([]byte(text), v)
	}
	return json.Unmarshal([]byte(text[start:end+1]), v)
}
