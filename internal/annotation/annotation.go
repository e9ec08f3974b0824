// Package annotation defines the disease annotation file schema and loads
// annotation YAML documents.
package annotation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Section names, in the order they are validated.
const (
	SectionPhenotypicFeatures    = "phenotypic_features"
	SectionInheritance           = "inheritance"
	SectionClinicalCourse        = "clinical_course"
	SectionDiagnosticMethodology = "diagnostic_methodology"
)

// SupportingText is one claimed quotation and the reference it is attributed
// to.
type SupportingText struct {
	Text      string `yaml:"text"`
	Reference string `yaml:"reference"`
}

// Annotation is a single annotated assertion. HPO fields are set for
// phenotype-style sections; the method fields are set for
// diagnostic_methodology entries.
type Annotation struct {
	HPOID      string `yaml:"hpo_id"`
	HPOName    string `yaml:"hpo_name"`
	MethodName string `yaml:"method_name"`
	MethodID   string `yaml:"method_id"`
	MethodType string `yaml:"method_type"`

	SupportingText          []SupportingText `yaml:"supporting_text"`
	FrequencySupportingText []SupportingText `yaml:"frequency_supporting_text"`
}

// File is a parsed disease annotation document.
type File struct {
	DiseaseName string `yaml:"disease_name"`
	DiseaseID   string `yaml:"disease_id"`

	PhenotypicFeatures    []Annotation `yaml:"phenotypic_features"`
	Inheritance           []Annotation `yaml:"inheritance"`
	ClinicalCourse        []Annotation `yaml:"clinical_course"`
	DiagnosticMethodology []Annotation `yaml:"diagnostic_methodology"`
}

// Section pairs a section name with its annotations.
type Section struct {
	Name        string
	Annotations []Annotation
}

// Sections returns the file's annotation sections in validation order,
// omitting empty ones.
func (f *File) Sections() []Section {
	all := []Section{
		{SectionPhenotypicFeatures, f.PhenotypicFeatures},
		{SectionInheritance, f.Inheritance},
		{SectionClinicalCourse, f.ClinicalCourse},
		{SectionDiagnosticMethodology, f.DiagnosticMethodology},
	}

	out := all[:0]
	for _, s := range all {
		if len(s.Annotations) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Load reads and parses an annotation YAML file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read annotation file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse annotation file %s: %w", path, err)
	}
	return &f, nil
}
