package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/arrhenius/fit"
)

// Number is a float64 that survives JSON encoding when non-finite:
// ±Inf and NaN are written as the strings "+Inf", "-Inf" and "NaN".
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return json.Marshal(formatFloat(f))
	}
	return []byte(formatFloat(f)), nil
}

func (n Number) String() string { return formatFloat(float64(n)) }

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteText prints the parameter block:
//
//	A = …
//	Ea = … kcal/mol
//	Var(A) = …
//	Var(Ea) = …
//	Cov(A, Ea) = Cov (Ea, A) = …
//
// followed by a warning line when the covariance is unusable and another
// when A is not positive.
func (r *Report) WriteText(w io.Writer) error {
	return writeSummaryText(w, r.Summary)
}

func writeSummaryText(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w,
		"A = %s\nEa = %s kcal/mol\nVar(A) = %s\nVar(Ea) = %s\nCov(A, Ea) = Cov (Ea, A) = %s\n",
		s.Prefactor, s.ActivationEnergy, s.VarPrefactor, s.VarActivation, s.Covariance)
	if err != nil {
		return fmt.Errorf("report: write text: %w", err)
	}
	if !s.CovarianceValid {
		if _, err = fmt.Fprintln(w, "warning: covariance of the parameters could not be estimated"); err != nil {
			return fmt.Errorf("report: write text: %w", err)
		}
	}
	if !s.Physical {
		if _, err = fmt.Fprintln(w, "warning: fitted prefactor A is not positive"); err != nil {
			return fmt.Errorf("report: write text: %w", err)
		}
	}
	return nil
}

// document is the YAML/JSON export shape.
type document struct {
	RunID     string  `json:"run_id" yaml:"run_id"`
	CreatedAt string  `json:"created_at" yaml:"created_at"`
	Summary   Summary `json:"summary" yaml:"summary"`
}

func (r *Report) document() document {
	return document{
		RunID:     r.RunID,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		Summary:   r.Summary,
	}
}

// WriteYAML exports the run ID and summary as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.document()); err != nil {
		return fmt.Errorf("report: write yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("report: write yaml: %w", err)
	}
	return nil
}

// WriteJSON exports the run ID and summary as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.document()); err != nil {
		return fmt.Errorf("report: write json: %w", err)
	}
	return nil
}

// WriteOutcomes prints one block per batch outcome, in order: a
// "N. Label" heading, then either the parameter block or the error.
func WriteOutcomes(w io.Writer, outcomes []fit.Outcome) error {
	for _, o := range outcomes {
		if _, err := fmt.Fprintf(w, "%s\n", o.Model); err != nil {
			return fmt.Errorf("report: write outcomes: %w", err)
		}
		if o.Err != nil {
			if _, err := fmt.Fprintf(w, "error: %v\n\n", o.Err); err != nil {
				return fmt.Errorf("report: write outcomes: %w", err)
			}
			continue
		}
		s, err := Summarize(o.Result)
		if err != nil {
			return err
		}
		if err = writeSummaryText(w, s); err != nil {
			return err
		}
		if _, err = fmt.Fprintf(w, "SSR = %s\n\n", s.SSR); err != nil {
			return fmt.Errorf("report: write outcomes: %w", err)
		}
	}
	return nil
}

// outcomeDocument is the YAML/JSON shape of one batch outcome; exactly one
// of Summary and Error is set.
type outcomeDocument struct {
	Model   string   `json:"model" yaml:"model"`
	Summary *Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func outcomeDocuments(outcomes []fit.Outcome) ([]outcomeDocument, error) {
	docs := make([]outcomeDocument, len(outcomes))
	for i, o := range outcomes {
		docs[i].Model = o.Model.String()
		if o.Err != nil {
			docs[i].Error = o.Err.Error()
			continue
		}
		s, err := Summarize(o.Result)
		if err != nil {
			return nil, err
		}
		docs[i].Summary = &s
	}
	return docs, nil
}

// WriteOutcomesYAML exports batch outcomes, in order, as a YAML list.
func WriteOutcomesYAML(w io.Writer, outcomes []fit.Outcome) error {
	docs, err := outcomeDocuments(outcomes)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(docs); err != nil {
		return fmt.Errorf("report: write outcomes yaml: %w", err)
	}
	if err = enc.Close(); err != nil {
		return fmt.Errorf("report: write outcomes yaml: %w", err)
	}
	return nil
}

// WriteOutcomesJSON exports batch outcomes, in order, as an indented JSON array.
func WriteOutcomesJSON(w io.Writer, outcomes []fit.Outcome) error {
	docs, err := outcomeDocuments(outcomes)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err = enc.Encode(docs); err != nil {
		return fmt.Errorf("report: write outcomes json: %w", err)
	}
	return nil
}
