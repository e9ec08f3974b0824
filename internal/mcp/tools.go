package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/annocheck/internal/relevance"
	"github.com/fyrsmithlabs/annocheck/internal/report"
	"github.com/fyrsmithlabs/annocheck/internal/validate"
)

func (s *Server) registerTools() {
	s.registerValidateTools()
	s.registerFetchTools()
}

// ===== VALIDATION TOOLS =====

type validateTextInput struct {
	SupportingText  string   `json:"supporting_text" jsonschema:"required,The supporting text to validate"`
	Reference       string   `json:"reference" jsonschema:"required,Publication reference (e.g. 'PMID:12345678' or a URL)"`
	DiseaseKeywords []string `json:"disease_keywords,omitempty" jsonschema:"Keywords to check disease relevance (optional)"`
}

type validateTextOutput struct {
	Found           bool     `json:"found" jsonschema:"True when the text was found in the publication"`
	SimilarityScore float64  `json:"similarity_score" jsonschema:"Best similarity score"`
	DiseaseRelevant bool     `json:"disease_relevant" jsonschema:"True when the publication looks disease-relevant"`
	RelevanceScore  float64  `json:"relevance_score" jsonschema:"Fraction of disease keywords found"`
	Context         string   `json:"context,omitempty" jsonschema:"Surrounding text for exact matches"`
	Suggestions     []string `json:"suggestions,omitempty" jsonschema:"Close sentences when the text was not found"`
	Error           string   `json:"error,omitempty" jsonschema:"Diagnostic when the reference could not be resolved"`
}

type supportingTextEntry struct {
	Text      string `json:"text" jsonschema:"required,The supporting text"`
	Reference string `json:"reference" jsonschema:"required,Publication reference"`
}

type validateAnnotationInput struct {
	TermID          string                `json:"term_id" jsonschema:"required,Ontology term ID (e.g. 'HP:0002321')"`
	TermName        string                `json:"term_name" jsonschema:"required,Ontology term name"`
	SupportingTexts []supportingTextEntry `json:"supporting_texts" jsonschema:"required,Supporting text entries to validate"`
	DiseaseKeywords []string              `json:"disease_keywords,omitempty" jsonschema:"Keywords to check disease relevance"`
}

type annotationEntryResult struct {
	Text            string  `json:"text"`
	Reference       string  `json:"reference"`
	Found           bool    `json:"found"`
	Similarity      float64 `json:"similarity"`
	DiseaseRelevant bool    `json:"disease_relevant"`
	Error           string  `json:"error,omitempty"`
}

type validateAnnotationOutput struct {
	TermID   string                  `json:"term_id"`
	TermName string                  `json:"term_name"`
	Total    int                     `json:"total" jsonschema:"Number of supporting texts checked"`
	Found    int                     `json:"found" jsonschema:"Number found in publications"`
	Relevant int                     `json:"relevant" jsonschema:"Number with disease-relevant publications"`
	Results  []annotationEntryResult `json:"results"`
}

type validateFileInput struct {
	Path string `json:"path" jsonschema:"required,Path to the annotation YAML file"`
}

type validateFileOutput struct {
	RunID       string `json:"run_id"`
	DiseaseName string `json:"disease_name"`
	DiseaseID   string `json:"disease_id"`
	Total       int    `json:"total"`
	Found       int    `json:"found"`
	Failed      int    `json:"failed"`
	Report      string `json:"report" jsonschema:"Full text validation report"`
}

func (s *Server) registerValidateTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "validate_supporting_text",
		Description: "Validate that supporting text appears in the referenced publication",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args validateTextInput) (*mcp.CallToolResult, validateTextOutput, error) {
		done := trackTool("validate_supporting_text")
		defer func() { done(nil) }()

		ks := relevance.FromTerms(args.DiseaseKeywords)
		entry := s.validate.ValidateText(ctx, args.SupportingText, args.Reference, ks)

		out := validateTextOutput{
			Found:           entry.Found,
			SimilarityScore: entry.Similarity,
			DiseaseRelevant: entry.Relevant,
			RelevanceScore:  entry.Relevance,
			Context:         entry.Context,
			Suggestions:     entry.Suggestions,
			Error:           entry.Err,
		}

		status := "NOT FOUND"
		if entry.Found {
			status = "FOUND"
		}
		rel := "IRRELEVANT"
		if entry.Relevant {
			rel = "RELEVANT"
		}
		text := fmt.Sprintf("Validation Result: %s | %s\nSimilarity Score: %.2f\nDisease Relevance Score: %.2f",
			status, rel, entry.Similarity, entry.Relevance)
		if entry.Err != "" {
			text += "\nError: " + entry.Err
		}

		return textResult(text), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "validate_annotation",
		Description: "Validate a complete annotation with multiple supporting texts",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args validateAnnotationInput) (*mcp.CallToolResult, validateAnnotationOutput, error) {
		done := trackTool("validate_annotation")
		defer func() { done(nil) }()

		ks := relevance.FromTerms(args.DiseaseKeywords)
		out := validateAnnotationOutput{
			TermID:   args.TermID,
			TermName: args.TermName,
			Total:    len(args.SupportingTexts),
		}

		for _, st := range args.SupportingTexts {
			entry := s.validate.ValidateText(ctx, st.Text, st.Reference, ks)
			if entry.Found {
				out.Found++
			}
			if entry.Err == "" && entry.Relevant {
				out.Relevant++
			}
			out.Results = append(out.Results, annotationEntryResult{
				Text:            truncateRunes(st.Text, 50),
				Reference:       st.Reference,
				Found:           entry.Found,
				Similarity:      entry.Similarity,
				DiseaseRelevant: entry.Relevant,
				Error:           entry.Err,
			})
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Annotation Validation: %s (%s)\n\n", args.TermID, args.TermName)
		fmt.Fprintf(&b, "Summary:\n- Total supporting texts: %d\n- Found in publications: %d\n- Disease-relevant publications: %d\n",
			out.Total, out.Found, out.Relevant)
		for i, r := range out.Results {
			mark := "-"
			if r.Found {
				mark = "+"
			}
			fmt.Fprintf(&b, "\n%d. [%s] %s\n   Text: %s\n   Similarity: %.2f\n", i+1, mark, r.Reference, r.Text, r.Similarity)
			if r.Error != "" {
				fmt.Fprintf(&b, "   Error: %s\n", r.Error)
			}
		}

		return textResult(b.String()), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "validate_annotation_file",
		Description: "Validate every supporting text entry in an annotation YAML file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args validateFileInput) (*mcp.CallToolResult, validateFileOutput, error) {
		done := trackTool("validate_annotation_file")
		var toolErr error
		defer func() { done(toolErr) }()

		result, err := s.validate.ValidateFile(ctx, args.Path)
		if err != nil {
			toolErr = fmt.Errorf("validate annotation file: %w", err)
			return nil, validateFileOutput{}, toolErr
		}

		var buf strings.Builder
		report.Write(&buf, result)

		stats := report.Summarize(result.Entries)
		out := validateFileOutput{
			RunID:       result.RunID,
			DiseaseName: result.DiseaseName,
			DiseaseID:   result.DiseaseID,
			Total:       stats.Total,
			Found:       stats.Found,
			Failed:      stats.Total - stats.Found,
			Report:      buf.String(),
		}

		return textResult(out.Report), out, nil
	})
}

// ===== FETCH TOOLS =====

type fetchPublicationInput struct {
	Reference string `json:"reference" jsonschema:"required,Publication reference (e.g. 'PMID:12345678' or a URL)"`
}

type fetchPublicationOutput struct {
	Reference string `json:"reference"`
	Title     string `json:"title,omitempty"`
	Abstract  string `json:"abstract,omitempty"`
}

type cachePublicationsInput struct {
	Path string `json:"path" jsonschema:"required,Path to the annotation YAML file whose references should be pre-fetched"`
}

type cachePublicationsOutput struct {
	Requested int      `json:"requested" jsonschema:"Distinct references found in the file"`
	Cached    int      `json:"cached" jsonschema:"References fetched successfully"`
	Failed    []string `json:"failed,omitempty" jsonschema:"References that could not be fetched"`
}

func (s *Server) registerFetchTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "fetch_publication",
		Description: "Fetch title and abstract for a publication reference",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args fetchPublicationInput) (*mcp.CallToolResult, fetchPublicationOutput, error) {
		done := trackTool("fetch_publication")
		var toolErr error
		defer func() { done(toolErr) }()

		pub, err := s.content.Fetch(ctx, args.Reference)
		if err != nil {
			toolErr = fmt.Errorf("could not fetch publication data for %s: %w", args.Reference, err)
			return nil, fetchPublicationOutput{}, toolErr
		}

		out := fetchPublicationOutput{
			Reference: args.Reference,
			Title:     pub.Title,
			Abstract:  pub.Abstract,
		}
		text := fmt.Sprintf("Publication Information: %s\n\nTitle: %s\n\nAbstract: %s",
			args.Reference, orUnavailable(pub.Title), orUnavailable(pub.Abstract))

		return textResult(text), out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "cache_publications",
		Description: "Pre-fetch every publication referenced by an annotation file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args cachePublicationsInput) (*mcp.CallToolResult, cachePublicationsOutput, error) {
		done := trackTool("cache_publications")
		var toolErr error
		defer func() { done(toolErr) }()

		refs, err := validate.References(args.Path)
		if err != nil {
			toolErr = fmt.Errorf("collect references: %w", err)
			return nil, cachePublicationsOutput{}, toolErr
		}

		out := cachePublicationsOutput{Requested: len(refs)}
		for _, ref := range refs {
			if _, err := s.content.Fetch(ctx, ref); err != nil {
				s.logger.Warn("pre-fetch failed", zap.String("reference", ref), zap.Error(err))
				out.Failed = append(out.Failed, ref)
				continue
			}
			out.Cached++
		}

		text := fmt.Sprintf("Cached %d of %d referenced publications", out.Cached, out.Requested)
		if len(out.Failed) > 0 {
			text += "\nFailed: " + strings.Join(out.Failed, ", ")
		}
		return textResult(text), out, nil
	})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func orUnavailable(s string) string {
	if s == "" {
		return "Not available"
	}
	return s
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
