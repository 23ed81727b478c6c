package server

import (
	"net/http"

	"github.com/jonathan/jobhunt/internal/types"
	"github.com/jonathan/jobhunt/internal/writing"
)

// handleCoverLetter writes a cover letter from a stored résumé or a supplied profile.
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req types.CoverLetterRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	profile, err := s.service.CandidateProfile(r.Context(), req.ResumeID, req.Profile)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	letter, err := s.writer.CoverLetter(r.Context(), profile, writing.CoverLetterInput{
		JobTitle:        req.JobTitle,
		Company:         req.Company,
		JobDescription:  req.JobDescription,
		Position:        req.Position,
		ExperienceLevel: req.ExperienceLevel,
		Tone:            req.Tone,
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, letter)
}

// handleColdEmail writes an outreach message.
func (s *Server) handleColdEmail(w http.ResponseWriter, r *http.Request) {
	var req types.ColdEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	profile, err := s.service.CandidateProfile(r.Context(), req.ResumeID, req.Profile)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	email, err := s.writer.ColdEmail(r.Context(), profile, writing.ColdEmailInput{
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		JobDescription: req.JobDescription,
		RecipientRole:  req.RecipientRole,
		EmailType:      req.EmailType,
		Tone:           req.Tone,
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, email)
}

// handleInterviewQuestions generates a practice question set.
func (s *Server) handleInterviewQuestions(w http.ResponseWriter, r *http.Request) {
	var req types.InterviewQuestionsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	set, err := s.writer.InterviewQuestions(r.Context(), writing.QuestionsInput{
		Skills:     req.Skills,
		Role:       req.Role,
		Difficulty: req.Difficulty,
		Category:   req.Category,
		Exclude:    req.Exclude,
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, set)
}

// handleEvaluateAnswer grades a practice answer.
func (s *Server) handleEvaluateAnswer(w http.ResponseWriter, r *http.Request) {
	var req types.EvaluateAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	eval, err := s.writer.EvaluateAnswer(r.Context(), writing.EvaluateInput{
		Question:       req.Question,
		Answer:         req.Answer,
		ExpectedPoints: req.ExpectedPoints,
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, eval)
}

func (s *Server) handleInterviewTips(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, writing.InterviewTips(r.PathValue("skill")))
}
