package nodes

import "fmt"

const (
	// AskPrompt is the suspend message of a new session
	AskPrompt = "Kindly drop the article or blog post you want to generate details for."

	// EmptyInputMessage asks again when the resume input is blank
	EmptyInputMessage = "You didn't provide any input. Please drop the article or blog post you want to analyze."

	// RetryMessage asks again when the model could not extract details
	RetryMessage = "Sorry, try again. Kindly drop the article or blog post you want to generate details for."
)

func extractionErrorMessage(err error) string {
	return fmt.Sprintf("LLM error while extracting blog details: %v", err)
}

func inputTooLongMessage(limit int) string {
	return fmt.Sprintf("Your input is too long. Please provide an article shorter than %d characters.", limit)
}

func summaryErrorText(err error) string {
	return fmt.Sprintf("LLM error: %v", err)
}
