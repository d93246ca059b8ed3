package sink

import (
	"testing"

	"github.com/bookstore-qa/ui-test-harness/framework"

	"github.com/stretchr/testify/assert"
)

type reportLines []string

func (r *reportLines) AppendReport(text string) { *r = append(*r, text) }

type brokenReport struct{}

func (brokenReport) AppendReport(string) { panic("report closed") }

func messages(l *framework.CapturingLogger) []string {
	var ret []string
	for _, m := range l.Output() {
		ret = append(ret, m.Message)
	}
	return ret
}

func TestInfoAndPass(t *testing.T) {
	var console framework.CapturingLogger
	var report reportLines
	s := New(&console, &report)

	s.Info("Book store page shown")
	s.Pass("Search box is displayed")
	s.Infof("%d books listed", 8)

	assert.Equal(t, reportLines{
		"&emsp;Book store page shown",
		"&emsp;Search box is displayed",
		"&emsp;8 books listed",
	}, report)
	assert.Equal(t, []string{"Book store page shown", "Search box is displayed", "8 books listed"},
		messages(&console))
}

func TestFailReturnsFailedResult(t *testing.T) {
	var console framework.CapturingLogger
	var report reportLines
	s := New(&console, &report)

	result := s.Fail("Invalid username or password!")
	assert.True(t, result.IsFailed())
	assert.Equal(t, "Invalid username or password!", result.Reason)
	assert.Equal(t, reportLines{"&emsp;Failed: Invalid username or password!"}, report)

	assert.Equal(t, "expected 3, got 2", s.Failf("expected %d, got %d", 3, 2).Reason)
}

func TestReportTextIsEscaped(t *testing.T) {
	var report reportLines
	s := New(nil, &report)
	s.Info("titles:\n\t<b>Git</b> & \"more\"")
	assert.Equal(t, reportLines{
		"&emsp;titles:<br>&emsp;&lt;b&gt;Git&lt;/b&gt; &amp; &#34;more&#34;",
	}, report)
}

func TestMissingOrBrokenReportFallsBackToConsole(t *testing.T) {
	var console framework.CapturingLogger
	New(&console, nil).Info("a")
	assert.Equal(t, []string{ReportFallbackMessage, "a"}, messages(&console))

	var console2 framework.CapturingLogger
	result := New(&console2, brokenReport{}).Fail("b")
	assert.True(t, result.IsFailed())
	assert.Equal(t, []string{ReportFallbackMessage, "b"}, messages(&console2))
}
