// Package validate orchestrates annotation validation: it fetches each cited
// publication, scores disease relevance, matches supporting-text quotations,
// and checks method identifiers, producing one structured entry per claimed
// quotation.
package validate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/annocheck/internal/annotation"
	"github.com/fyrsmithlabs/annocheck/internal/fetch"
	"github.com/fyrsmithlabs/annocheck/internal/identifier"
	"github.com/fyrsmithlabs/annocheck/internal/relevance"
	"github.com/fyrsmithlabs/annocheck/internal/textmatch"
)

// Diagnostic strings surfaced on entries that could not be validated. One
// failing reference never aborts the rest of a batch.
const (
	ErrMsgUnsupportedReference = "Only PMID/URL references supported"
	ErrMsgNoContent            = "Could not fetch content"
)

const defaultWorkers = 4

// ContentSource resolves a reference to publication content. Implemented by
// fetch.Fetcher.
type ContentSource interface {
	Fetch(ctx context.Context, reference string) (*fetch.Publication, error)
}

// SynonymSource returns synonyms for a disease identifier, empty on failure.
// Implemented by fetch.MonarchClient.
type SynonymSource interface {
	Synonyms(ctx context.Context, diseaseID string) []string
}

// IdentifierChecker validates method identifiers. Implemented by
// identifier.Validator.
type IdentifierChecker interface {
	Validate(ctx context.Context, methodName, id string) identifier.CheckResult
}

// Entry is the validation outcome for one supporting-text quotation.
type Entry struct {
	Section   string
	TermID    string
	TermName  string
	Text      string
	Reference string

	Found       bool
	Similarity  float64
	Relevant    bool
	Relevance   float64
	Context     string
	Suggestions []string

	// Err is a diagnostic when the reference could not be resolved; the
	// match and relevance fields are meaningless while it is set.
	Err string

	// Identifier holds the method-identifier check for
	// diagnostic_methodology entries.
	Identifier *identifier.CheckResult
}

// RunResult is the outcome of validating one annotation file.
type RunResult struct {
	RunID       string
	DiseaseName string
	DiseaseID   string
	Entries     []Entry
}

// Config configures a validation Service.
type Config struct {
	// Threshold is the fuzzy-match similarity threshold (default 0.8).
	Threshold float64

	// Workers bounds concurrent entry validations (default 4).
	Workers int

	// Logger for structured logging. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Service validates supporting-text entries against publications.
type Service struct {
	content  ContentSource
	synonyms SynonymSource
	ids      IdentifierChecker
	matcher  *textmatch.Matcher
	workers  int
	logger   *zap.Logger
}

// NewService creates a Service. content is required; synonyms and ids may be
// nil, disabling synonym expansion and identifier checking respectively.
func NewService(cfg Config, content ContentSource, synonyms SynonymSource, ids IdentifierChecker) (*Service, error) {
	if content == nil {
		return nil, fmt.Errorf("content source is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Service{
		content:  content,
		synonyms: synonyms,
		ids:      ids,
		matcher:  textmatch.NewMatcher(cfg.Threshold),
		workers:  cfg.Workers,
		logger:   cfg.Logger.Named("validate"),
	}, nil
}

// BuildKeywords derives the disease keyword set from the disease name plus
// any synonyms known for the disease identifier. Synonym lookup failures are
// silent: the set falls back to name tokens alone.
func (s *Service) BuildKeywords(ctx context.Context, diseaseName, diseaseID string) relevance.KeywordSet {
	var synonyms []string
	if s.synonyms != nil && diseaseID != "" {
		synonyms = s.synonyms.Synonyms(ctx, diseaseID)
	}
	return relevance.BuildKeywords(diseaseName, synonyms)
}

// ValidateText validates a single quotation against its reference.
//
// Unsupported reference shapes and fetch failures are recovered into entries
// carrying a diagnostic string; they are never returned as errors.
func (s *Service) ValidateText(ctx context.Context, text, reference string, keywords relevance.KeywordSet) Entry {
	entry := Entry{Text: text, Reference: reference}

	if !fetch.Supported(reference) {
		entry.Err = ErrMsgUnsupportedReference
		return entry
	}

	pub, err := s.content.Fetch(ctx, reference)
	if err != nil {
		s.logger.Warn("content fetch failed",
			zap.String("reference", reference),
			zap.Error(err))
		entry.Err = ErrMsgNoContent
		return entry
	}

	rel := relevance.Score(pub.FullText, keywords)
	entry.Relevant = rel.Relevant
	entry.Relevance = rel.Score

	match := s.matcher.Match(text, pub.FullText)
	entry.Found = match.Found
	entry.Similarity = match.Score
	entry.Context = match.Context
	for _, sug := range match.Suggestions {
		entry.Suggestions = append(entry.Suggestions, sug.String())
	}

	return entry
}

// ValidateFile validates every supporting-text entry in an annotation file.
//
// Entries missing text or reference are skipped before validation. Entries
// are validated concurrently (bounded by Workers) but returned in document
// order. An error is returned only when the file itself cannot be read.
func (s *Service) ValidateFile(ctx context.Context, path string) (*RunResult, error) {
	file, err := annotation.Load(path)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))
	logger.Info("validating annotation file",
		zap.String("path", path),
		zap.String("disease_name", file.DiseaseName),
		zap.String("disease_id", file.DiseaseID))

	keywords := s.BuildKeywords(ctx, file.DiseaseName, file.DiseaseID)

	jobs := collectJobs(file)
	entries := make([]Entry, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry := s.ValidateText(gctx, job.text, job.reference, keywords)
			entry.Section = job.section
			entry.TermID = job.termID
			entry.TermName = job.termName
			if job.methodID != "" && s.ids != nil {
				res := s.ids.Validate(gctx, job.termID, job.methodID)
				entry.Identifier = &res
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := 0
	for _, e := range entries {
		if e.Found {
			found++
		}
	}
	logger.Info("validation complete",
		zap.Int("entries", len(entries)),
		zap.Int("found", found))

	return &RunResult{
		RunID:       runID,
		DiseaseName: file.DiseaseName,
		DiseaseID:   file.DiseaseID,
		Entries:     entries,
	}, nil
}

type job struct {
	section   string
	termID    string
	termName  string
	text      string
	reference string
	methodID  string
}

// collectJobs flattens the file's sections into validation jobs in document
// order, skipping entries with a missing quotation or reference.
func collectJobs(file *annotation.File) []job {
	var jobs []job

	for _, section := range file.Sections() {
		methodology := section.Name == annotation.SectionDiagnosticMethodology

		for _, ann := range section.Annotations {
			termID, termName := ann.HPOID, ann.HPOName
			methodID := ""
			if methodology {
				termID, termName = ann.MethodName, ann.MethodType
				methodID = ann.MethodID
			}

			for _, st := range ann.SupportingText {
				if st.Text == "" || st.Reference == "" {
					continue
				}
				jobs = append(jobs, job{
					section: section.Name, termID: termID, termName: termName,
					text: st.Text, reference: st.Reference, methodID: methodID,
				})
			}

			// Frequency quotes only exist for phenotype-style sections.
			if methodology {
				continue
			}
			for _, st := range ann.FrequencySupportingText {
				if st.Text == "" || st.Reference == "" {
					continue
				}
				jobs = append(jobs, job{
					section: section.Name, termID: termID, termName: termName,
					text: st.Text, reference: st.Reference,
				})
			}
		}
	}

	return jobs
}
