package authoring

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/dread/internal/content"
	"github.com/tatianab/dread/internal/models"
	"google.golang.org/api/option"
)

//go:embed prompts/generate_event.txt
var generateEventPrompt string

// Request describes the event to draft.
type Request struct {
	ID       string
	Theme    string
	Mystery  string
	Existing []string // event ids the draft may chain to
}

// Generator drafts event files with Gemini.
type Generator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGenerator(ctx context.Context, apiKey, modelName string) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "text/plain"
	return &Generator{
		client: client,
		model:  model,
	}, nil
}

func (g *Generator) Close() {
	g.client.Close()
}

// GenerateEvent asks the model for an event and returns it decoded and
// validated, along with the cleaned YAML to write to disk.
func (g *Generator) GenerateEvent(ctx context.Context, req Request) (*models.Event, []byte, error) {
	prompt, err := renderPrompt(req)
	if err != nil {
		return nil, nil, err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, nil, fmt.Errorf("no content returned from Gemini")
	}

	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected response type from Gemini")
	}

	return ParseEvent(string(text), req)
}

func renderPrompt(req Request) (string, error) {
	tmpl, err := template.New("generate_event").Parse(generateEventPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ParseEvent strips code fences from a model reply and decodes the event
// it contains. The event must carry the requested id and may only chain to
// existing events.
func ParseEvent(reply string, req Request) (*models.Event, []byte, error) {
	cleanYAML := strings.TrimSpace(reply)
	cleanYAML = strings.TrimPrefix(cleanYAML, "```yaml")
	cleanYAML = strings.TrimPrefix(cleanYAML, "```")
	cleanYAML = strings.TrimSuffix(cleanYAML, "```")
	cleanYAML = strings.TrimSpace(cleanYAML) + "\n"

	ev, err := content.DecodeEvent(strings.NewReader(cleanYAML))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse event YAML: %v\nOutput was: %s", err, cleanYAML)
	}
	if ev.ID != req.ID {
		return nil, nil, fmt.Errorf("generated event has id %q, want %q", ev.ID, req.ID)
	}

	existing := make(map[string]bool, len(req.Existing))
	for _, id := range req.Existing {
		existing[id] = true
	}
	for _, opt := range ev.Options {
		for _, c := range opt.Consequences {
			if c.Kind == models.ConsequenceTriggerEvent && !existing[c.NextEventID] {
				return nil, nil, fmt.Errorf("generated event chains to unknown event %q", c.NextEventID)
			}
		}
	}
	for _, c := range ev.AutoConsequences {
		if c.Kind == models.ConsequenceTriggerEvent && !existing[c.NextEventID] {
			return nil, nil, fmt.Errorf("generated event chains to unknown event %q", c.NextEventID)
		}
	}
	return ev, []byte(cleanYAML), nil
}
