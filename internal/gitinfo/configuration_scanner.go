package gitinfo

import (
	"regexp"
	"strings"
)

const (
	originSectionHeaderConstant      = `[remote "origin"]`
	configurationEntrySeparator      = "="
	configurationLineSeparator       = "\n"
	configurationCarriageReturnValue = "\r"
)

var (
	urlEntryPattern     = regexp.MustCompile(`^\s+url\s*=`)
	sectionStartPattern = regexp.MustCompile(`^\S`)
)

type originScannerState int

const (
	originScannerStateOutsideSection originScannerState = iota
	originScannerStateInsideSection
)

// OriginURLScanner locates the first non-empty url entry of the [remote "origin"] section.
//
// The scanner has two states. Outside the origin section it only looks for the
// exact section header. Inside the section it accepts indented url entries and
// leaves the section on the first line that starts with a non-whitespace
// character; that line is then evaluated again in the outside state.
type OriginURLScanner struct {
	state originScannerState
}

// NewOriginURLScanner constructs a scanner positioned outside any section.
func NewOriginURLScanner() *OriginURLScanner {
	return &OriginURLScanner{state: originScannerStateOutsideSection}
}

// ScanText splits configuration text into lines and scans them.
func (scanner *OriginURLScanner) ScanText(configurationText string) (string, bool) {
	return scanner.Scan(splitConfigurationLines(configurationText))
}

// Scan returns the first non-empty origin url value found in the provided lines.
func (scanner *OriginURLScanner) Scan(configurationLines []string) (string, bool) {
	scanner.state = originScannerStateOutsideSection

	lineIndex := 0
	for lineIndex < len(configurationLines) {
		remoteURL, consumed := scanner.step(configurationLines[lineIndex])
		if len(remoteURL) > 0 {
			return remoteURL, true
		}
		if consumed {
			lineIndex++
		}
	}

	return "", false
}

// step evaluates one line. It reports whether the line was consumed; an
// unconsumed line must be fed to the scanner again.
func (scanner *OriginURLScanner) step(configurationLine string) (string, bool) {
	switch scanner.state {
	case originScannerStateInsideSection:
		if urlEntryPattern.MatchString(configurationLine) {
			return extractEntryValue(configurationLine), true
		}
		if sectionStartPattern.MatchString(configurationLine) {
			scanner.state = originScannerStateOutsideSection
			return "", false
		}
		return "", true
	default:
		if configurationLine == originSectionHeaderConstant {
			scanner.state = originScannerStateInsideSection
		}
		return "", true
	}
}

func extractEntryValue(configurationLine string) string {
	entryComponents := strings.SplitN(configurationLine, configurationEntrySeparator, 2)
	if len(entryComponents) < 2 {
		return ""
	}
	return strings.TrimSpace(entryComponents[1])
}

func splitConfigurationLines(configurationText string) []string {
	configurationLines := strings.Split(configurationText, configurationLineSeparator)
	for lineIndex, configurationLine := range configurationLines {
		configurationLines[lineIndex] = strings.TrimSuffix(configurationLine, configurationCarriageReturnValue)
	}
	return configurationLines
}
