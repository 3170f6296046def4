package brain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"astra-core/internal/ollama"
)

const classifySystemPrompt = `You are an intent classifier for a voice assistant.
Given the conversation so far and the new user utterance, answer with ONE JSON object:
{"intent":"OPEN_APP|SEND_MESSAGE|ASK_QUESTION|TRANSLATE_TEXT|CONTROL_DEVICE|SEARCH_WEB|GET_WEATHER|SMALL_TALK|UNKNOWN",
 "arguments":{"key":"value"},
 "confidence":0.0}
Argument keys per intent: OPEN_APP needs appName or package; SEND_MESSAGE needs recipient and text;
TRANSLATE_TEXT takes text and targetLang; CONTROL_DEVICE needs control (wifi/bluetooth/dnd/brightness/volume) and optional value;
SEARCH_WEB takes query; GET_WEATHER takes location.
No prose, JSON only.`

const replySystemPrompt = `You are a concise voice assistant. Answer the user directly and naturally.
Be brief unless asked otherwise. One short paragraph maximum.`

// LLMClassifier is a model-backed Classifier speaking to a local Ollama
// daemon. Classification asks for a strict JSON envelope; anything the model
// invents outside the closed category set degrades to UNKNOWN.
type LLMClassifier struct {
	client       *ollama.Client
	model        string
	contextTurns int
}

func NewLLMClassifier(client *ollama.Client, model string) *LLMClassifier {
	return &LLMClassifier{client: client, model: model, contextTurns: 10}
}

type intentEnvelope struct {
	Intent     string            `json:"intent"`
	Arguments  map[string]string `json:"arguments"`
	Confidence float64           `json:"confidence"`
}

func (l *LLMClassifier) Classify(ctx context.Context, text string, dc DialogContext) (ClassifiedIntent, error) {
	user := promptWithDialog(dc, l.contextTurns, "New utterance:\n"+text)

	raw, err := l.client.Chat(ctx, l.model, []ollama.Message{
		{Role: "system", Content: classifySystemPrompt},
		{Role: "user", Content: user},
	}, "json")
	if err != nil {
		return ClassifiedIntent{}, fmt.Errorf("classify: %w", err)
	}

	var env intentEnvelope
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &env); err != nil {
		return ClassifiedIntent{}, fmt.Errorf("classify: malformed model response: %w", err)
	}

	conf := env.Confidence
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	args := env.Arguments
	if args == nil {
		args = map[string]string{}
	}

	return ClassifiedIntent{
		Category:   ParseIntentCategory(env.Intent),
		Arguments:  args,
		Confidence: conf,
		RawText:    text,
	}, nil
}

func (l *LLMClassifier) GenerateReply(ctx context.Context, text string, dc DialogContext) (string, error) {
	user := promptWithDialog(dc, l.contextTurns, "User says:\n"+text)

	out, err := l.client.Chat(ctx, l.model, []ollama.Message{
		{Role: "system", Content: replySystemPrompt},
		{Role: "user", Content: user},
	}, "")
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("generate reply: empty model response")
	}
	return out, nil
}

func promptWithDialog(dc DialogContext, turns int, tail string) string {
	dialog := dc.Memory.Render(turns)
	if dialog == "" {
		return tail
	}
	return "Conversation so far:\n" + dialog + "\n\n" + tail
}
