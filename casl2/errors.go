package casl2

import "strconv"

const diagnosticSource = "casl2"

// Errors
type analysisError struct{}

var Errors analysisError

func (analysisError) InvalidToken(text string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Invalid token: \"" + text + "\"",
		Source:   diagnosticSource,
		Severity: Error,
	}
}

func (analysisError) UnterminatedString(r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Unterminated string constant",
		Source:   diagnosticSource,
		Severity: Error,
	}
}

func (analysisError) InvalidInstruction(instruction string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Invalid instruction: \"" + instruction + "\"",
		Source:   diagnosticSource,
		Severity: Error,
	}
}

func (analysisError) DuplicateLabel(label string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Duplicate label: \"" + label + "\" is already declared in this scope",
		Source:   diagnosticSource,
		Severity: Error,
	}
}

func (analysisError) UndefinedLabel(label string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Undefined label: \"" + label + "\"",
		Source:   diagnosticSource,
		Severity: Error,
	}
}

func (analysisError) MissingStart(r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Program must begin with a START instruction",
		Source:   diagnosticSource,
		Severity: Error,
	}
}

func (analysisError) MissingEnd(r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "START without a matching END instruction",
		Source:   diagnosticSource,
		Severity: Error,
	}
}

// Warnings
type analysisWarning struct{}

var Warnings analysisWarning

func (analysisWarning) LabelTooLong(label string, maxLength int, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Label \"" + label + "\" is longer than " + strconv.Itoa(maxLength) + " characters",
		Source:   diagnosticSource,
		Severity: Warning,
	}
}

func (analysisWarning) LabelLooksLikeRegister(label string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Label \"" + label + "\" looks like a register name and may be misread while editing",
		Source:   diagnosticSource,
		Severity: Warning,
	}
}
