package gitinfo_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/relkit/internal/gitinfo"
)

const (
	scannerFirstURLConstant  = "git@example.com:org/first.git"
	scannerSecondURLConstant = "git@example.com:org/second.git"
)

func TestOriginURLScannerScanText(testInstance *testing.T) {
	testCases := []struct {
		name          string
		configuration string
		expectedURL   string
		expectedFound bool
	}{
		{
			name:          "first_url_in_origin",
			configuration: "[remote \"origin\"]\n\turl = " + scannerFirstURLConstant + "\n\turl = " + scannerSecondURLConstant + "\n",
			expectedURL:   scannerFirstURLConstant,
			expectedFound: true,
		},
		{
			name:          "other_remote_ignored",
			configuration: "[remote \"upstream\"]\n\turl = " + scannerFirstURLConstant + "\n[remote \"origin\"]\n\tfetch = +refs/heads/*:refs/remotes/origin/*\n\turl = " + scannerSecondURLConstant + "\n",
			expectedURL:   scannerSecondURLConstant,
			expectedFound: true,
		},
		{
			name:          "empty_url_keeps_scanning",
			configuration: "[remote \"origin\"]\n\turl =   \n    url=" + scannerSecondURLConstant + "\n",
			expectedURL:   scannerSecondURLConstant,
			expectedFound: true,
		},
		{
			name:          "section_break_is_reevaluated",
			configuration: "[remote \"origin\"]\n\turl =\n[remote \"origin\"]\n\turl = " + scannerSecondURLConstant + "\n",
			expectedURL:   scannerSecondURLConstant,
			expectedFound: true,
		},
		{
			name:          "unindented_url_ends_section",
			configuration: "[remote \"origin\"]\nurl = " + scannerFirstURLConstant + "\n",
			expectedFound: false,
		},
		{
			name:          "url_after_section_ignored",
			configuration: "[remote \"origin\"]\n\turl =\n[branch \"main\"]\n\turl = " + scannerFirstURLConstant + "\n",
			expectedFound: false,
		},
		{
			name:          "header_must_match_exactly",
			configuration: "[remote \"origin\" ]\n\turl = " + scannerFirstURLConstant + "\n",
			expectedFound: false,
		},
		{
			name:          "crlf_line_endings",
			configuration: "[core]\r\n\tbare = false\r\n[remote \"origin\"]\r\n\turl = " + scannerFirstURLConstant + "\r\n",
			expectedURL:   scannerFirstURLConstant,
			expectedFound: true,
		},
		{
			name:          "value_keeps_later_equals",
			configuration: "[remote \"origin\"]\n\turl = https://example.com/org/repo.git?ref=main\n",
			expectedURL:   "https://example.com/org/repo.git?ref=main",
			expectedFound: true,
		},
		{
			name:          "empty_configuration",
			configuration: "",
			expectedFound: false,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testExtractorSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			remoteURL, found := gitinfo.NewOriginURLScanner().ScanText(testCase.configuration)
			require.Equal(testInstance, testCase.expectedFound, found)
			require.Equal(testInstance, testCase.expectedURL, remoteURL)
		})
	}
}

func TestOriginURLScannerIsReusable(testInstance *testing.T) {
	scanner := gitinfo.NewOriginURLScanner()

	_, found := scanner.Scan([]string{"[remote \"origin\"]", "\tfetch = +refs/heads/*:refs/remotes/origin/*"})
	require.False(testInstance, found)

	remoteURL, found := scanner.Scan([]string{"\turl = " + scannerFirstURLConstant})
	require.False(testInstance, found)
	require.Empty(testInstance, remoteURL)
}
