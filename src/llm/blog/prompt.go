package blog

import (
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

// InvalidMarker is what the model answers for topics and sentiment when it cannot extract them
const InvalidMarker = "INVALID"

const detailsSystemTemplate = `You extract structured details from articles and blog posts.
Answer with a single JSON object and nothing else.

Extract the following from the input:
1. title: string
2. topics: list of strings
3. sentiment: one of "positive", "neutral", "negative"

Output format:
{{"title": "<title>", "topics": ["<topic>", "..."], "sentiment": "<sentiment>"}}

If you CANNOT confidently extract the topics and sentiment return:
{{"topics": "INVALID", "sentiment": "INVALID"}}`

const detailsUserTemplate = `Input: "{input}"`

const summarySystemTemplate = `You are an AI assistant. Summarize the following article or blog in 1-2 concise sentences,
capturing the main idea and key points. Avoid adding personal opinions or extra details.`

const summaryUserTemplate = `Article/Blog Text:
{input}

Summary:`

// inputKey is the template variable holding the user's article
const inputKey = "input"

func newDetailsTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(schema.FString,
		schema.SystemMessage(detailsSystemTemplate),
		schema.UserMessage(detailsUserTemplate),
	)
}

func newSummaryTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(schema.FString,
		schema.SystemMessage(summarySystemTemplate),
		schema.UserMessage(summaryUserTemplate),
	)
}
