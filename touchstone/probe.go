package touchstone

import "strings"

// ProbeConfidence is a relative confidence score returned by Probe. Higher
// is more confident; zero means decline.
type ProbeConfidence int

const (
	ProbeDecline          ProbeConfidence = 0
	ProbeHeaderRecognized ProbeConfidence = 3
	ProbeSuffixMatch      ProbeConfidence = 10
)

var snpSuffixes = []string{".S1P", ".S2P", ".S3P", ".S4P", ".S5P", ".S6P", ".S7P", ".S8P"}

// Probe estimates whether a file is a Touchstone file, given its name and a
// short snippet of its header (enough to see the first non-comment line).
// A recognized filename suffix is the strongest signal; absent that, a
// recognizable option line or [Version] token in the header is a weaker
// one. Absent both, Probe declines.
func Probe(filename, headerSnippet string) ProbeConfidence {
	upper := strings.ToUpper(filename)
	for _, suf := range snpSuffixes {
		if strings.HasSuffix(upper, suf) || strings.HasSuffix(upper, strings.TrimPrefix(suf, ".")) {
			return ProbeSuffixMatch
		}
	}

	for _, line := range strings.Split(strings.ToUpper(headerSnippet), "\n") {
		line = stripCommentAndTrim(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "[VERSION]") {
			return ProbeHeaderRecognized
		}
		break
	}
	return ProbeDecline
}
