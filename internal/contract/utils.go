package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Likelihood label constants.
const (
	CriticalValue = "Critical" // Almost certainly automated
	HighValue     = "High"     // Likely automated
	ModerateValue = "Moderate" // Mixed signals
	LowValue      = "Low"      // Likely manual
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetPlainLabel returns a plain text label for a likelihood score. This is
// the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(likelihood int) string {
	switch {
	case likelihood >= 80:
		return CriticalValue
	case likelihood >= 60:
		return HighValue
	case likelihood >= 40:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(likelihood int) string {
	text := GetPlainLabel(likelihood)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s\n", msg)
}
