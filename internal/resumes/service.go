package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-ats/internal/engine"
	"resume-ats/internal/extract"
	"resume-ats/internal/llm"
	"resume-ats/internal/sections"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/storage/object"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/internal/shared/util"
	"resume-ats/internal/suggestions"
)

// Service contains business logic for resumes. It orchestrates extraction,
// the analysis pipeline, and persistence of the derived sections and
// suggestions.
type Service struct {
	Repo        Repo
	Sections    sections.Repo
	Suggestions suggestions.Repo
	Store       object.Store
	LLM         llm.Client
	Engine      engine.Config
}

// UploadAndAnalyze extracts text from an uploaded file, stores the original,
// and runs the full analysis pipeline.
func (s *Service) UploadAndAnalyze(ctx context.Context, userID, fileName, mimeType string, data []byte) (Resume, engine.Analysis, error) {
	if len(data) == 0 {
		return Resume{}, engine.Analysis{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	metrics.IncParseStarted()
	started := time.Now()

	telemetry.Info("resume.upload_received", map[string]any{
		"file_name":  fileName,
		"mime_type":  mimeType,
		"size_bytes": len(data),
		"sha256":     util.HashBytes(data),
	})

	result, err := extract.FromBytes(ctx, data, mimeType, fileName)
	if err != nil {
		metrics.IncParseFailed()
		if errors.Is(err, extract.ErrUnsupportedType) {
			return Resume{}, engine.Analysis{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, mimeType)
		}
		return Resume{}, engine.Analysis{}, err
	}
	if strings.TrimSpace(result.Text) == "" {
		metrics.IncParseFailed()
		return Resume{}, engine.Analysis{}, ErrEmptyText
	}

	now := time.Now().UTC()
	resume := Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		FileName:  fileName,
		Source:    SourceUpload,
		RawText:   result.Text,
		Quality:   result.Quality,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if s.Store != nil {
		key := objectKey(userID, resume.ID, fileName)
		if err := s.Store.Put(ctx, key, mimeType, bytes.NewReader(data)); err != nil {
			telemetry.Warn("resume.store_original_failed", map[string]any{
				"resume_id": resume.ID,
				"error":     err.Error(),
			})
		}
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		metrics.IncParseFailed()
		return Resume{}, engine.Analysis{}, err
	}

	analysis, err := s.runAnalysis(ctx, &resume, "")
	if err != nil {
		metrics.IncParseFailed()
		return Resume{}, engine.Analysis{}, err
	}

	metrics.IncParseCompleted()
	metrics.ObserveParseDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	return resume, analysis, nil
}

// AnalyzeText runs the pipeline over pasted plain text.
func (s *Service) AnalyzeText(ctx context.Context, userID, fileName, text string) (Resume, engine.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return Resume{}, engine.Analysis{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if fileName == "" {
		fileName = "pasted-resume.txt"
	}

	metrics.IncParseStarted()
	started := time.Now()

	now := time.Now().UTC()
	resume := Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		FileName:  fileName,
		Source:    SourceText,
		RawText:   text,
		Quality:   extract.QualityFull,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		metrics.IncParseFailed()
		return Resume{}, engine.Analysis{}, err
	}

	analysis, err := s.runAnalysis(ctx, &resume, "")
	if err != nil {
		metrics.IncParseFailed()
		return Resume{}, engine.Analysis{}, err
	}

	metrics.IncParseCompleted()
	metrics.ObserveParseDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	return resume, analysis, nil
}

// Get returns a resume owned by the user.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns a user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// SectionsOf returns a resume's sections in document order.
func (s *Service) SectionsOf(ctx context.Context, userID, resumeID string) ([]sections.Section, error) {
	if _, err := s.Repo.GetByID(ctx, userID, resumeID); err != nil {
		return nil, err
	}
	return s.Sections.ListByResume(ctx, resumeID)
}

// SuggestionsOf returns a resume's suggestions, priority first.
func (s *Service) SuggestionsOf(ctx context.Context, userID, resumeID string) ([]suggestions.Suggestion, error) {
	if _, err := s.Repo.GetByID(ctx, userID, resumeID); err != nil {
		return nil, err
	}
	return s.Suggestions.ListByResume(ctx, resumeID)
}

// Scores derives the live score snapshot from the persisted sections.
func (s *Service) Scores(ctx context.Context, userID, resumeID string) (engine.LiveScores, error) {
	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return engine.LiveScores{}, err
	}
	stored, err := s.Sections.ListByResume(ctx, resumeID)
	if err != nil {
		return engine.LiveScores{}, err
	}

	analyzed := make([]engine.AnalyzedSection, 0, len(stored))
	for _, sec := range stored {
		analyzed = append(analyzed, engine.AnalyzedSection{
			OrderIndex: sec.OrderIndex,
			Type:       engine.SectionType(sec.SectionType),
			Title:      sec.Title,
			Score:      sec.ATSScore,
		})
	}
	return engine.ComputeLiveScores(analyzed, resume.RawText), nil
}

// Delete removes a resume with its sections, suggestions, and stored file.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, userID, resumeID); err != nil {
		return err
	}
	// Postgres cascades these; the memory repos need explicit cleanup.
	if err := s.Suggestions.DeleteByResume(ctx, resumeID); err != nil {
		return err
	}
	if err := s.Sections.DeleteByResume(ctx, resumeID); err != nil {
		return err
	}

	if s.Store != nil && resume.Source == SourceUpload {
		key := objectKey(userID, resumeID, resume.FileName)
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Warn("resume.delete_original_failed", map[string]any{
				"resume_id": resumeID,
				"error":     err.Error(),
			})
		}
	}
	return nil
}

// Reparse re-runs the pipeline over the stored text. Pending suggestions are
// regenerated; applied and dismissed ones are kept as history.
func (s *Service) Reparse(ctx context.Context, userID, resumeID string) (Resume, engine.Analysis, error) {
	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, engine.Analysis{}, err
	}

	metrics.IncParseStarted()
	started := time.Now()

	analysis, err := s.runAnalysis(ctx, &resume, "")
	if err != nil {
		metrics.IncParseFailed()
		return Resume{}, engine.Analysis{}, err
	}

	metrics.IncParseCompleted()
	metrics.ObserveParseDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	return resume, analysis, nil
}

// OptimizeResult is the outcome of targeting a resume at a job description.
type OptimizeResult struct {
	Gap         engine.GapAnalysis
	Suggestions []suggestions.Suggestion
}

// Optimize compares the resume against a job description, persists new
// pending keyword suggestions, and returns the gap analysis. When an LLM
// provider is configured its rewrites are appended as content suggestions.
func (s *Service) Optimize(ctx context.Context, userID, resumeID, jobDescription, targetRole string) (OptimizeResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return OptimizeResult{}, fmt.Errorf("%w: jobDescription is required", ErrInvalidInput)
	}

	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return OptimizeResult{}, err
	}

	gap := engine.AnalyzeKeywordGap(resume.RawText, targetRole, jobDescription)

	stored, err := s.Sections.ListByResume(ctx, resumeID)
	if err != nil {
		return OptimizeResult{}, err
	}
	sectionIDs := make(map[int]string, len(stored))
	for _, sec := range stored {
		sectionIDs[sec.OrderIndex] = sec.ID
	}

	analysis := engine.Analyze(resume.RawText, jobDescription, s.Engine)
	now := time.Now().UTC()
	var created []suggestions.Suggestion
	for _, item := range analysis.Suggestions {
		if item.Type != engine.SuggestionKeyword {
			continue
		}
		created = append(created, toStoredSuggestion(resumeID, sectionIDs, item, len(created), now))
	}

	created = append(created, s.llmSuggestions(ctx, resume, jobDescription, targetRole, now)...)
	for i := range created {
		created[i].Position = i
	}

	if err := s.Suggestions.CreateBatch(ctx, created); err != nil {
		return OptimizeResult{}, err
	}
	return OptimizeResult{Gap: gap, Suggestions: created}, nil
}

// runAnalysis executes the pipeline and replaces the resume's derived rows.
func (s *Service) runAnalysis(ctx context.Context, resume *Resume, jobDescription string) (engine.Analysis, error) {
	analysis := engine.Analyze(resume.RawText, jobDescription, s.Engine)

	now := time.Now().UTC()
	rows := make([]sections.Section, 0, len(analysis.Sections))
	sectionIDs := make(map[int]string, len(analysis.Sections))
	for _, sec := range analysis.Sections {
		id := uuid.NewString()
		sectionIDs[sec.OrderIndex] = id
		rows = append(rows, sections.Section{
			ID:          id,
			ResumeID:    resume.ID,
			SectionType: string(sec.Type),
			Title:       sec.Title,
			Content:     contentToMap(sec.Content, sec.RawText),
			OrderIndex:  sec.OrderIndex,
			ATSScore:    sec.Score,
			CreatedAt:   now,
		})
	}

	if err := s.Sections.ReplaceForResume(ctx, resume.ID, rows); err != nil {
		return engine.Analysis{}, err
	}

	if err := s.Suggestions.DeletePendingByResume(ctx, resume.ID); err != nil {
		return engine.Analysis{}, err
	}
	stored := make([]suggestions.Suggestion, 0, len(analysis.Suggestions))
	for i, item := range analysis.Suggestions {
		stored = append(stored, toStoredSuggestion(resume.ID, sectionIDs, item, i, now))
	}
	if err := s.Suggestions.CreateBatch(ctx, stored); err != nil {
		return engine.Analysis{}, err
	}

	resume.OverallScore = analysis.Scores.Overall
	resume.UpdatedAt = now
	if err := s.Repo.UpdateAnalysis(ctx, resume.ID, resume.RawText, resume.Quality, resume.OverallScore, now); err != nil {
		return engine.Analysis{}, err
	}

	telemetry.Info("resume.analyzed", map[string]any{
		"resume_id":   resume.ID,
		"sections":    len(analysis.Sections),
		"suggestions": len(analysis.Suggestions),
		"overall":     analysis.Scores.Overall,
		"quality":     resume.Quality,
	})
	return analysis, nil
}

// llmSuggestions asks the configured provider for rewrites. An unconfigured
// provider is silent; other failures are logged and swallowed so the
// heuristic result still lands.
func (s *Service) llmSuggestions(ctx context.Context, resume Resume, jobDescription, targetRole string, now time.Time) []suggestions.Suggestion {
	if s.LLM == nil {
		return nil
	}
	rewrites, err := s.LLM.SuggestImprovements(ctx, llm.SuggestInput{
		ResumeText:     resume.RawText,
		JobDescription: jobDescription,
		TargetRole:     targetRole,
	})
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			telemetry.Warn("resume.llm_suggest_failed", map[string]any{
				"resume_id": resume.ID,
				"error":     err.Error(),
			})
		}
		return nil
	}

	out := make([]suggestions.Suggestion, 0, len(rewrites))
	for _, rw := range rewrites {
		out = append(out, suggestions.Suggestion{
			ID:            uuid.NewString(),
			ResumeID:      resume.ID,
			Kind:          string(engine.SuggestionContent),
			Priority:      string(engine.PriorityMedium),
			Title:         rw.Title,
			Description:   rw.Description,
			OriginalText:  rw.OriginalText,
			SuggestedText: rw.SuggestedText,
			Status:        suggestions.StatusPending,
			CreatedAt:     now,
		})
	}
	return out
}

func toStoredSuggestion(resumeID string, sectionIDs map[int]string, item engine.Suggestion, position int, now time.Time) suggestions.Suggestion {
	return suggestions.Suggestion{
		ID:            uuid.NewString(),
		ResumeID:      resumeID,
		SectionID:     sectionIDs[item.SectionIndex],
		Kind:          string(item.Type),
		Priority:      string(item.Priority),
		Title:         item.Title,
		Description:   item.Description,
		Reason:        item.Reason,
		OriginalText:  item.OriginalText,
		SuggestedText: item.SuggestedText,
		Impact:        item.Impact,
		Position:      position,
		Status:        suggestions.StatusPending,
		CreatedAt:     now,
	}
}

// contentToMap converts a typed parse result to the generic map stored in
// JSONB, via a JSON round trip so field names match the wire format.
func contentToMap(content any, rawText string) map[string]any {
	raw, err := json.Marshal(content)
	if err != nil {
		return map[string]any{"text": rawText}
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return map[string]any{"text": rawText}
	}
	return out
}

func objectKey(userID, resumeID, fileName string) string {
	return userID + "/" + resumeID + "/" + util.SanitizeFileName(fileName)
}
