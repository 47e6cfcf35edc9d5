package gateway

import (
	"fmt"
	"strings"
)

func jsonInstruction(field string) string {
	return fmt.Sprintf(`Respond only with a JSON object of the form {"%s": "..."}.`, field)
}

// summarizePrompt returns a prompt to summarize a note
func summarizePrompt(content string) string {
	return fmt.Sprintf(`Summarize the following note content:

%s

%s
`, content, jsonInstruction("summary"))
}

// editPrompt returns a prompt to apply an edit action to a note
func editPrompt(content string, action EditAction) string {
	var sb strings.Builder
	sb.WriteString(`You are an AI assistant that helps users edit their notes.

The user will provide you with the content of a note and an action to perform on it. You should perform the action and return the edited content.

`)
	fmt.Fprintf(&sb, "Here is the note content: %s\n\n", content)
	fmt.Fprintf(&sb, "Here is the action: %s\n\n", editInstruction(action))
	if action.Kind() == ActionTranslate {
		fmt.Fprintf(&sb, "The target language is: %s\n\n", action.Language())
	}
	sb.WriteString(jsonInstruction("editedContent"))
	sb.WriteString("\n")
	return sb.String()
}

func editInstruction(action EditAction) string {
	switch action.Kind() {
	case ActionTranslate:
		return "translate"
	case ActionFixGrammar:
		return "fix grammar"
	default:
		return "rephrase"
	}
}

// transcribePrompt returns a prompt to transcribe the attached audio
func transcribePrompt() string {
	return `Please transcribe the attached audio recording. The transcript should contain only the spoken words.

` + jsonInstruction("transcribedText") + "\n"
}

// extractSlidesPrompt returns a prompt to extract text from the attached presentation
func extractSlidesPrompt() string {
	return `You are an AI assistant that extracts text from presentation files. Extract all readable text from the slides in the attached file. Maintain the order of the text as it appears on the slides. Format the output clearly as plain text.

` + jsonInstruction("extractedText") + "\n"
}

// continuePrompt returns a prompt to continue writing after the given text
func continuePrompt(content string) string {
	return fmt.Sprintf(`You are a helpful writing assistant. Your task is to continue writing the following text in a consistent style and tone.
Do not repeat the original text in your response. Only provide the new, additional text.

Original Text:
%s

%s
`, content, jsonInstruction("continuedText"))
}
