package writing

import (
	"fmt"

	"github.com/jonathan/jobhunt/internal/types"
)

var skillTips = map[string]types.InterviewTips{
	"React": {
		KeyTopics: []string{"Hooks", "State management", "Virtual DOM", "Component lifecycle", "Performance optimization"},
		CommonQuestions: []string{
			"Explain the difference between state and props",
			"What are React Hooks and why were they introduced?",
			"How does the Virtual DOM work?",
		},
		Resources: []string{"React documentation", "React patterns"},
	},
	"Node.js": {
		KeyTopics: []string{"Event loop", "Async/await", "Express.js", "Streams", "Error handling"},
		CommonQuestions: []string{
			"Explain the Node.js event loop",
			"How do you handle errors in async code?",
			"What are streams and when would you use them?",
		},
		Resources: []string{"Node.js docs", "Node best practices"},
	},
	"Python": {
		KeyTopics: []string{"Decorators", "Generators", "OOP", "List comprehensions", "GIL"},
		CommonQuestions: []string{
			"What are decorators and how do they work?",
			"Explain the difference between lists and tuples",
			"What is the GIL and how does it affect multithreading?",
		},
		Resources: []string{"Python docs", "Real Python tutorials"},
	},
}

// InterviewTips returns preparation guidance for skill. Skills without
// curated tips get generic guidance naming the skill. The lookup is exact.
func InterviewTips(skill string) types.InterviewTips {
	if tips, ok := skillTips[skill]; ok {
		return tips
	}
	return types.InterviewTips{
		KeyTopics: []string{"Core concepts", "Best practices", "Common patterns", "Debugging techniques"},
		CommonQuestions: []string{
			fmt.Sprintf("What are the main features of %s?", skill),
			fmt.Sprintf("When would you choose %s over alternatives?", skill),
			fmt.Sprintf("What are common pitfalls when using %s?", skill),
		},
		Resources: []string{"Official documentation", "Online tutorials"},
	}
}
