package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobhunt/internal/analysis"
	"github.com/jonathan/jobhunt/internal/extraction"
	"github.com/jonathan/jobhunt/internal/types"
)

// IngestResume extracts, analyzes and stores one uploaded PDF. The stages run
// in order on the calling goroutine, so progress callbacks are never invoked
// concurrently. A failed or unconfigured analysis degrades to the heuristic
// fallback and never fails the upload; only unreadable input or a storage
// failure does.
func (s *Service) IngestResume(ctx context.Context, fileName string, data []byte) (*types.ResumeRecord, error) {
	logger := s.logger.WithField("file", fileName)

	if err := extraction.CheckPDFHeader(data); err != nil {
		return nil, err
	}
	text, err := s.extractor.ExtractText(ctx, data)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, StepExtractText, fmt.Sprintf("Extracted %d characters from %d pages", len(text.Text), text.PageCount), nil)

	basic := extraction.Extract(text.Text)
	s.emit(ctx, StepBasicFields, fmt.Sprintf("Matched %d skills", len(basic.Skills)), basic)

	result := analysis.Result{Status: analysis.StatusUnconfigured}
	if s.analyzer != nil {
		result = s.analyzer.Analyze(ctx, text.Text)
		s.emit(ctx, StepAnalyze, fmt.Sprintf("Analysis finished: %s", result.Status), result.Analysis)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record := &types.ResumeRecord{
		ID:         uuid.NewString(),
		FileName:   fileName,
		RawText:    text.Text,
		PageCount:  text.PageCount,
		Skills:     analysis.AuthoritativeSkills(result, basic),
		Email:      basic.Email,
		Phone:      basic.Phone,
		Links:      basic.Links,
		Location:   basic.Location,
		AIAnalyzed: result.OK(),
		UploadedAt: s.now(),
	}
	if result.OK() {
		record.Analysis = result.Analysis
		if result.Analysis.Location != "" {
			record.Location = result.Analysis.Location
		}
	} else {
		record.Analysis = analysis.Fallback(basic)
		fields := logrus.Fields{"status": result.Status}
		if result.Err != nil {
			fields["error"] = result.Err.Error()
		}
		logger.WithFields(fields).Warn("resume analysis degraded to pattern extraction")
	}
	if record.Links == nil {
		record.Links = types.ContactLinks{}
	}

	if err := s.resumes.PutResume(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}
	s.emit(ctx, StepPersist, "Stored resume "+record.ID, nil)

	logger.WithFields(logrus.Fields{
		"resume_id":   record.ID,
		"skills":      len(record.Skills),
		"ai_analyzed": record.AIAnalyzed,
	}).Info("resume ingested")
	return record, nil
}

// GetResume returns a stored record.
func (s *Service) GetResume(ctx context.Context, id string) (*types.ResumeRecord, error) {
	return s.resumes.GetResume(ctx, id)
}

// RecentResumes lists the most recent uploads, newest first.
func (s *Service) RecentResumes(ctx context.Context, limit int) ([]types.ResumeSummary, error) {
	records, err := s.resumes.ListResumes(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]types.ResumeSummary, len(records))
	for i, r := range records {
		out[i] = r.Summary()
	}
	return out, nil
}
