package scenario

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/bookstore-qa/ui-test-harness/framework"
	o "github.com/bookstore-qa/ui-test-harness/framework/opt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const attachmentsDirName = "attachments"

var unsafeFileNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`) //nolint:gochecknoglobals

type JUnitTestLogger struct {
	filePath   string
	properties map[string]string
	filters    RegexFilters
	ids        []ID // this slice preserves the order that the scenarios were run in
	scenarios  map[string]jUnitScenarioStatus
	lock       sync.Mutex
}

type jUnitScenarioStatus struct {
	failures    []error
	skipped     o.Maybe[string]
	output      string
	steps       []StepOutcome
	attachments []Attachment
	startTime   time.Time
	duration    time.Duration
}

// Struct definitions for the JUnit XML schema - see https://github.com/jstemmer/go-junit-report

type jUnitXMLDocument struct {
	XMLName xml.Name            `xml:"testsuites"`
	Suites  []jUnitXMLTestSuite `xml:"testsuite"`
}

type jUnitXMLTestSuite struct {
	XMLName    xml.Name           `xml:"testsuite"`
	Tests      int                `xml:"tests,attr"`
	Failures   int                `xml:"failures,attr"`
	Time       string             `xml:"time,attr"`
	Name       string             `xml:"name,attr"`
	Properties []jUnitXMLProperty `xml:"properties>property,omitempty"`
	TestCases  []jUnitXMLTestCase `xml:"testcase"`
}

type jUnitXMLTestCase struct {
	XMLName     xml.Name             `xml:"testcase"`
	Classname   string               `xml:"classname,attr"`
	Name        string               `xml:"name,attr"`
	Time        string               `xml:"time,attr"`
	SkipMessage *jUnitXMLSkipMessage `xml:"skipped,omitempty"`
	Failure     *jUnitXMLFailure     `xml:"failure,omitempty"`
	SystemOut   string               `xml:"system-out,omitempty"`
}

type jUnitXMLSkipMessage struct {
	Message string `xml:"message,attr"`
}

type jUnitXMLProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type jUnitXMLFailure struct {
	Message  string `xml:"message,attr"`
	Type     string `xml:"type,attr"`
	Contents string `xml:",chardata"`
}

// NewJUnitTestLogger creates a logger that writes a JUnit XML report to filePath when EndLog is
// called. Attachments are written to an "attachments" directory next to the report and linked
// from each test case's system-out.
func NewJUnitTestLogger(
	filePath string,
	properties map[string]string,
	filters RegexFilters,
) *JUnitTestLogger {
	return &JUnitTestLogger{
		filePath:   filePath,
		properties: properties,
		filters:    filters,
		scenarios:  make(map[string]jUnitScenarioStatus),
	}
}

func (j *JUnitTestLogger) ScenarioStarted(id ID) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.ids = append(j.ids, id)
	j.scenarios[id.String()] = jUnitScenarioStatus{
		startTime: time.Now(),
	}
}

func (j *JUnitTestLogger) StepFinished(id ID, outcome StepOutcome) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.scenarios[id.String()]
	status.steps = append(status.steps, outcome)
	j.scenarios[id.String()] = status
}

func (j *JUnitTestLogger) ScenarioError(id ID, err error) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.scenarios[id.String()]
	status.failures = append(status.failures, err)
	j.scenarios[id.String()] = status
}

func (j *JUnitTestLogger) ScenarioFinished(id ID, result ScenarioResult, debugOutput framework.CapturedOutput) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.scenarios[id.String()]
	status.output = debugOutput.ToString("")
	status.duration = time.Since(status.startTime)
	status.attachments = result.Attachments
	j.scenarios[id.String()] = status
}

func (j *JUnitTestLogger) ScenarioSkipped(id ID, reason string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.scenarios[id.String()]
	status.skipped = o.Some(reason)
	j.scenarios[id.String()] = status
}

func (j *JUnitTestLogger) EndLog(results Results) error {
	j.lock.Lock()
	defer j.lock.Unlock()

	fmt.Printf("Writing JUnit data to %s\n", j.filePath)

	var doc jUnitXMLDocument

	properties := []jUnitXMLProperty{
		{
			Name:  "scenarios.filter.mustMatch",
			Value: j.filters.MustMatch.String(),
		},
		{
			Name:  "scenarios.filter.mustNotMatch",
			Value: j.filters.MustNotMatch.String(),
		},
	}
	names := maps.Keys(j.properties)
	slices.Sort(names)
	for _, name := range names {
		properties = append(properties, jUnitXMLProperty{Name: name, Value: j.properties[name]})
	}

	writtenNames := make(map[string]struct{})
	for _, feature := range getTopLevelIDs(j.ids) {
		suite := jUnitXMLTestSuite{
			Name:       fmt.Sprintf("UI acceptance tests: %s", feature),
			Properties: properties,
		}
		suiteTotalDuration := time.Duration(0)
		for _, id := range j.ids {
			if len(id) == 0 || id[0] != feature {
				continue
			}
			status := j.scenarios[id.String()]

			suite.Tests++
			if len(status.failures) != 0 {
				suite.Failures++
			}
			suiteTotalDuration += status.duration

			testCase := jUnitXMLTestCase{
				Classname: feature,
				Name:      id.String(),
				Time:      jUnitDurationString(status.duration),
			}
			if status.skipped.IsDefined() {
				testCase.SkipMessage = &jUnitXMLSkipMessage{Message: status.skipped.Value()}
			}
			if len(status.failures) != 0 {
				var messages []string
				for _, e := range status.failures {
					messages = append(messages, e.Error())
				}
				testCase.Failure = &jUnitXMLFailure{
					Message:  strings.Join(messages, "\n"),
					Contents: status.output,
				}
			}
			systemOut, err := j.writeAttachments(id, status.attachments, writtenNames)
			if err != nil {
				return err
			}
			testCase.SystemOut = stepSummary(status.steps) + systemOut

			suite.TestCases = append(suite.TestCases, testCase)
		}
		suite.Time = jUnitDurationString(suiteTotalDuration)
		doc.Suites = append(doc.Suites, suite)
	}

	bytes, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	bytes = append(bytes, '\n')

	return os.WriteFile(j.filePath, bytes, 0644) //nolint:gosec
}

// writeAttachments writes a scenario's attachments and returns their links. Distinct IDs can
// sanitize to the same file name, so names already in written get a numeric suffix.
func (j *JUnitTestLogger) writeAttachments(
	id ID,
	attachments []Attachment,
	written map[string]struct{},
) (string, error) {
	if len(attachments) == 0 {
		return "", nil
	}
	dir := filepath.Join(filepath.Dir(j.filePath), attachmentsDirName)
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec
		return "", err
	}
	var links []string
	for i, a := range attachments {
		base := fmt.Sprintf("%s_%d", unsafeFileNameChars.ReplaceAllString(id.String(), "_"), i+1)
		ext := attachmentExtension(a.MediaType)
		name := base + ext
		for n := 2; ; n++ {
			if _, taken := written[name]; !taken {
				break
			}
			name = fmt.Sprintf("%s-%d%s", base, n, ext)
		}
		written[name] = struct{}{}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, a.Data, 0644); err != nil { //nolint:gosec
			return "", err
		}
		links = append(links, fmt.Sprintf("[[ATTACHMENT|%s]]", filepath.Join(attachmentsDirName, name)))
	}
	return strings.Join(links, "\n") + "\n", nil
}

func attachmentExtension(mediaType string) string {
	switch mediaType {
	case ScreenshotMediaType:
		return ".png"
	case "text/plain":
		return ".txt"
	default:
		return ".bin"
	}
}

func stepSummary(steps []StepOutcome) string {
	var b strings.Builder
	for _, s := range steps {
		fmt.Fprintf(&b, "%d. %s: %s\n", s.Index, s.Text, s.Result.Status)
	}
	return b.String()
}

func getTopLevelIDs(allIDs []ID) []string {
	var ret []string
	seen := make(map[string]bool)
	for _, id := range allIDs {
		if len(id) != 0 && !seen[id[0]] {
			ret = append(ret, id[0])
			seen[id[0]] = true
		}
	}
	return ret
}

func jUnitDurationString(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
