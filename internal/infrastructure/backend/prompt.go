package backend

import (
	"bytes"
	"strings"
	"text/template"
)

type promptMessage struct {
	Role    string
	Content string
}

const systemPrompt = `You are HateShield, an AI system that detects toxic/hate speech and rewrites it safely.

Classification guide:
- safe: Respectful, constructive, appropriate language
- offensive: Mildly inappropriate, rude, or disrespectful language
- hate_speech: Discriminatory language targeting groups based on identity
- toxic: Severely harmful, abusive, threatening, or bullying language

Be accurate and nuanced. Even if slightly negative, classify as safe if the criticism is constructive.`

const userPromptTemplate = `Analyze this comment:
"{{.Text}}"

Respond with only a JSON object in the following format:
{
    "classification": "safe" | "offensive" | "hate_speech" | "toxic",
    "confidence": number (0-100),
    "emotions": {
        "anger": number (0-100),
        "fear": number (0-100),
        "sadness": number (0-100),
        "disgust": number (0-100),
        "joy": number (0-100)
    },
    "rewritten_text": "A respectful, constructive version of the message that conveys any legitimate underlying concern without toxicity. Keep it natural and conversational."
}`

var userPrompt = template.Must(template.New("analyze").Parse(userPromptTemplate))

// renderPromptMessages builds the system and user messages for one comment.
func renderPromptMessages(text string) ([]promptMessage, error) {
	var buf bytes.Buffer
	if err := userPrompt.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return nil, err
	}
	return []promptMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: strings.TrimSpace(buf.String())},
	}, nil
}
