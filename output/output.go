// Package output renders a solver run's result as either the single-line
// JSON document or the plain-text report the CLI driver prints.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result carries everything the CLI needs to report after a solve: the
// outcome, the timing breakdown, and algorithm-specific diagnostics.
type Result struct {
	Success       bool    `json:"success"`
	Algorithm     int     `json:"algorithm"`
	TimeSeconds   float64 `json:"time"`
	Iterations    int     `json:"iterations"`
	Communication bool    `json:"communication"`
	Solution      string  `json:"solution"`
	Error         string  `json:"error"`
	CPInitial     float64 `json:"cp_initial"`
	CPAntAvg      float64 `json:"cp_ant_avg"`
	CPAntTotal    float64 `json:"cp_ant_total"`
	CPCalls       int64   `json:"cp_calls"`
	CPTotal       float64 `json:"cp_total"`
}

// JSON renders r as the single-line JSON document the --json flag
// produces.
func (r Result) JSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("output: marshaling result: %w", err)
	}
	return string(b), nil
}

// showsIterations reports whether this algorithm reports an iteration
// count and (for alg 2) a communication flag. Algorithm 1, backtracking,
// has neither.
func (r Result) showsIterations() bool {
	return r.Algorithm == 0 || r.Algorithm == 2
}

// Text renders r as the plain-text report: a compact two-line header
// unless verbose, always followed by the CP timing lines, with verbose
// mode adding the solution dump and the cost-benefit breakdown.
func (r Result) Text(verbose bool) string {
	var sb strings.Builder

	if !verbose {
		fmt.Fprintf(&sb, "%d\n%f\n", boolToFailureFlag(r.Success), r.TimeSeconds)
	}

	if r.Error != "" {
		fmt.Fprintf(&sb, "%s %d\n", r.Error, r.Algorithm)
		fmt.Fprintf(&sb, "solution:\n%s\n", r.Solution)
	}

	fmt.Fprintf(&sb, "cp_initial: %f\n", r.CPInitial)
	fmt.Fprintf(&sb, "cp_ant: %f\n", r.CPAntAvg)
	fmt.Fprintf(&sb, "cp_calls: %d\n", r.CPCalls)

	if !verbose {
		return sb.String()
	}

	if r.Success {
		sb.WriteString("Solution:\n")
		sb.WriteString(r.Solution)
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "solved in %f\n", r.TimeSeconds)
	} else {
		fmt.Fprintf(&sb, "failed in time %f\n", r.TimeSeconds)
	}
	if r.showsIterations() {
		fmt.Fprintf(&sb, "iterations: %d\n", r.Iterations)
		if r.Algorithm == 2 {
			fmt.Fprintf(&sb, "communication: %s\n", yesNo(r.Communication))
		}
	}

	sb.WriteString("\n=== Constraint Propagation Timing ===\n")
	fmt.Fprintf(&sb, "Initial CP time:    %f s\n", r.CPInitial)
	fmt.Fprintf(&sb, "Ant CP time:        %f s\n", r.CPAntTotal)
	fmt.Fprintf(&sb, "CP calls during ants: %d\n", r.CPCalls)
	fmt.Fprintf(&sb, "Total CP time:      %f s\n", r.CPTotal)
	fmt.Fprintf(&sb, "Total solve time:   %f s\n", r.TimeSeconds)

	if r.TimeSeconds > 0 {
		cpPercentage := (r.CPTotal / r.TimeSeconds) * 100
		fmt.Fprintf(&sb, "\nCP overhead:        %f%% of total time\n", cpPercentage)
		fmt.Fprintf(&sb, "ACO computation:    %f%% of total time\n", 100-cpPercentage)
	}

	return sb.String()
}

func boolToFailureFlag(success bool) int {
	if success {
		return 0
	}
	return 1
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
