package types

// CoverLetter is a generated cover letter.
type CoverLetter struct {
	CoverLetter   string   `json:"coverLetter"`
	Highlights    []string `json:"highlights"`
	MatchedSkills []string `json:"matchedSkills"`
	Tips          string   `json:"tips"`
}

// ColdEmail is a generated outreach message.
type ColdEmail struct {
	Subject  string   `json:"subject"`
	Message  string   `json:"message"`
	FollowUp string   `json:"followUp"`
	Tips     []string `json:"tips"`
	Type     string   `json:"type"`
}

// InterviewQuestion is one practice question with a reference answer.
type InterviewQuestion struct {
	ID             int      `json:"id"`
	Question       string   `json:"question"`
	Category       string   `json:"category"`
	Difficulty     string   `json:"difficulty"`
	Skill          string   `json:"skill"`
	DetailedAnswer string   `json:"detailedAnswer,omitempty"`
	ExpectedPoints []string `json:"expectedPoints"`
	Tips           string   `json:"tips"`
}

// QuestionSetSummary describes a generated question set.
type QuestionSetSummary struct {
	TotalQuestions    int      `json:"totalQuestions"`
	SkillsCovered     []string `json:"skillsCovered"`
	EstimatedDuration string   `json:"estimatedDuration"`
}

// QuestionSet is a list of practice questions.
type QuestionSet struct {
	Questions []InterviewQuestion `json:"questions"`
	Summary   QuestionSetSummary  `json:"summary"`
	Fallback  bool                `json:"fallback,omitempty"`
}

// AnswerEvaluation is feedback on a practice answer.
type AnswerEvaluation struct {
	Score           int      `json:"score"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	SuggestedAnswer string   `json:"suggestedAnswer"`
	Fallback        bool     `json:"fallback,omitempty"`
}

// InterviewTips is static preparation guidance for one skill.
type InterviewTips struct {
	KeyTopics       []string `json:"keyTopics"`
	CommonQuestions []string `json:"commonQuestions"`
	Resources       []string `json:"resources"`
}
