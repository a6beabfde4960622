// ABOUTME: Prints submission outcomes and maps them to exit codes
// ABOUTME: Field errors print one per line as "field: message"

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Ratatouille99337/CryptoQA/internal/submit"
)

// Exit codes
const (
	exitOK        = 0
	exitRejected  = 1 // validation failed or the Auth API rejected the input
	exitTransport = 2 // network, timeout, or unexpected server response
)

// outcomeExitCode maps an outcome to the process exit code
func outcomeExitCode(out submit.Outcome) int {
	switch out.Kind {
	case submit.KindSucceeded:
		return exitOK
	case submit.KindTransportFailure:
		return exitTransport
	default:
		return exitRejected
	}
}

// printOutcome writes the outcome in the requested format and returns the exit code
func printOutcome(w io.Writer, out submit.Outcome) int {
	if IsJSONOutput() {
		fmt.Fprintln(w, formatOutcomeJSON(out))
	} else {
		fmt.Fprintln(w, formatOutcomeHuman(out))
	}
	return outcomeExitCode(out)
}

// formatOutcomeHuman formats an outcome for human readability
func formatOutcomeHuman(out submit.Outcome) string {
	var lines []string

	switch out.Kind {
	case submit.KindSucceeded:
		if out.Session != nil {
			who := out.Session.User.Email
			if name := out.Session.User.DisplayName; name != "" {
				who = fmt.Sprintf("%s <%s>", name, who)
			}
			lines = append(lines, "Signed in as "+who)
			if out.Session.Role != "" {
				lines = append(lines, "Role: "+out.Session.Role)
			}
		}
		if out.Message != "" {
			lines = append(lines, out.Message)
		}
		if out.Route != "" {
			lines = append(lines, "Next: "+out.Route)
		}

	default:
		for _, field := range out.Errors.Fields() {
			lines = append(lines, fmt.Sprintf("%s: %s", field, out.Errors.Error(field)))
		}
		// Errors without a form to fold into keep server order
		if len(out.Errors) == 0 && out.Notice == "" {
			for _, e := range out.ServerErrors {
				lines = append(lines, fmt.Sprintf("%s: %s", e.Field, e.Message))
			}
		}
		if out.Notice != "" {
			lines = append(lines, "Error: "+out.Notice)
		}
		if len(lines) == 0 {
			lines = append(lines, "Error: nothing to submit")
		}
	}

	return strings.Join(lines, "\n")
}

// formatOutcomeJSON formats an outcome as JSON
func formatOutcomeJSON(out submit.Outcome) string {
	return marshalOutput(out)
}

// marshalOutput renders v as indented JSON, or an empty object if it cannot be encoded
func marshalOutput(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Error("Failed to encode JSON output", "error", err)
		return "{}"
	}
	return string(data)
}
