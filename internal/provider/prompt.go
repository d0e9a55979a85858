package provider

import (
	"fmt"
	"strings"

	"github.com/margadarshak/margadarshak-api/internal"
)

const SystemPrompt = `You are an AI College Counselor for Margadarshak, a college guidance platform for MHT-CET students in Maharashtra, India.

Your expertise includes:
- Maharashtra colleges (700+ colleges including VJTI, MIT, COEP, VNIT, etc.)
- MHT-CET admission process and cutoffs
- Reservation categories (General, OBC, SC, ST, EWS, NT-A/B/C/D, VJ-A, SBC, SEBC)
- Government vs Private colleges
- Fees, facilities, placements
- Course selection and career guidance
- Scholarship and financial aid

Guidelines:
1. Be helpful, friendly, and informative
2. Provide accurate information about Maharashtra colleges
3. Mention specific college names when relevant (VJTI, MIT, COEP, etc.)
4. Explain reservation quotas clearly
5. Suggest using the College Comparator feature for detailed comparisons
6. Keep responses concise but informative (2-4 paragraphs max)
7. If you don't know something, admit it and suggest alternatives

Current context: You're helping students choose the right college for their MHT-CET rank and preferences.`

const answerInstruction = "Provide a helpful, detailed response to the student's question (2-4 paragraphs). Be specific about colleges, cutoffs, and procedures when relevant."

// DefaultHistoryWindow is how many trailing messages are forwarded to a provider.
const DefaultHistoryWindow = 6

// Window returns the trailing n messages of conversation.
func Window(conversation []internal.Message, n int) []internal.Message {
	if n <= 0 || len(conversation) <= n {
		return conversation
	}
	return conversation[len(conversation)-n:]
}

// Transcript renders messages as "Student: ..." / "Counselor: ..." blocks.
func Transcript(messages []internal.Message) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		who := "Counselor"
		if m.Role == internal.RoleUser {
			who = "Student"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", who, m.Content))
	}
	return strings.Join(parts, "\n\n")
}

// CounselorPrompt combines the persona, the windowed transcript and the answer instruction.
func CounselorPrompt(conversation []internal.Message, window int) string {
	return SystemPrompt + "\n\nConversation History:\n" + Transcript(Window(conversation, window)) + "\n\n" + answerInstruction
}

// QuestionPrompt is the short instruction-completion prompt used by small hosted models.
func QuestionPrompt(question string) string {
	return "You are a helpful college counselor for Maharashtra students. Answer this question concisely:\n\nQuestion: " + question + "\n\nAnswer:"
}

// latestUserMessage returns the content of the last user message, or "".
func latestUserMessage(conversation []internal.Message) string {
	for i := len(conversation) - 1; i >= 0; i-- {
		if conversation[i].Role == internal.RoleUser {
			return conversation[i].Content
		}
	}
	return ""
}
