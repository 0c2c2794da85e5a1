package dialogue

import (
	"math/rand/v2"
	"strings"
)

// QuestionCategory selects which follow-up template is used next.
type QuestionCategory string

const (
	QuestionInterests   QuestionCategory = "interests"
	QuestionSkills      QuestionCategory = "skills"
	QuestionEnvironment QuestionCategory = "environment"
	QuestionValues      QuestionCategory = "values"
	QuestionLifestyle   QuestionCategory = "lifestyle"
)

// QuestionCycle is the fixed order follow-up questions rotate through.
var QuestionCycle = []QuestionCategory{
	QuestionInterests,
	QuestionSkills,
	QuestionEnvironment,
	QuestionValues,
	QuestionLifestyle,
}

const InitialPrompt = `You are a career guidance assistant. Please help me understand your interests and preferences.
Let's start with some basic questions:

1. What subjects or topics do you enjoy learning about?
2. What activities do you find most engaging in your free time?
3. What kind of work environment do you prefer (e.g., office, outdoors, remote)?
4. Do you prefer working independently or in teams?
5. What are your strengths and skills?

Please share your thoughts on these questions.`

const (
	NeedMoreInfoPrompt = "I need more information to provide better career recommendations. Could you elaborate on your **favorite subjects/topics, hobbies/activities, or specific skills**?"

	FailsafePrompt = "We've explored this topic quite a bit. To help me find more diverse recommendations, could you tell me about entirely new interests, skills, or preferences you haven't mentioned yet, or what you'd like to do next?"

	// RetryMessage is what a user sees when a turn fails; the turn can be resubmitted as is.
	RetryMessage = "Sorry, something went wrong while analyzing your answer. Please try submitting it again."

	// interestsMarker identifies the interests follow-up for the failsafe check.
	interestsMarker = "Could you tell me more about your interest in"
	// diversifyMarker identifies the forced-diversification prompt.
	diversifyMarker = "It seems we're focused on"

	contextPlaceholder = "{context}"
)

var followUpTemplates = map[QuestionCategory]string{
	QuestionInterests:   interestsMarker + " {context}? What specifically draws you to it?",
	QuestionSkills:      "You mentioned {context} as a strength (or it's implied). How have you developed this skill, and how do you enjoy using it?",
	QuestionEnvironment: "Considering {context}, what specific aspects of your ideal work environment are most important to you?",
	QuestionValues:      "Beyond {context}, what values are most important to you in a career? (e.g., creativity, stability, helping others)",
	QuestionLifestyle:   "Thinking about a career in {context}, how do you envision your work-life balance? What kind of schedule or demands would you prefer?",
}

var clarifyingQuestions = []string{
	"Could you elaborate on that?",
	"What do you mean by that?",
	"Could you give me an example?",
	"How does that make you feel?",
	"What aspects of that interest you the most?",
}

// FollowUpPrompt fills the template of the given question category. Unknown
// categories yield an empty string.
func FollowUpPrompt(category QuestionCategory, context string) string {
	template, ok := followUpTemplates[category]
	if !ok {
		return ""
	}
	return strings.ReplaceAll(template, contextPlaceholder, context)
}

// DiversifyPrompt asks for new subjects after the dialogue got stuck on topic.
func DiversifyPrompt(topic string) string {
	return diversifyMarker + ` "` + topic + `". To help me understand your broader interests, could you share completely new subjects, activities, or skills you haven't mentioned yet?`
}

// ClarifyingQuestion returns one of the generic clarifying questions. A nil
// pick chooses at random.
func ClarifyingQuestion(pick func(n int) int) string {
	if pick == nil {
		pick = rand.IntN
	}
	i := pick(len(clarifyingQuestions))
	if i < 0 || i >= len(clarifyingQuestions) {
		i = 0
	}
	return clarifyingQuestions[i]
}
