package report

type Counts struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Running int `json:"running"`
}

func (c Counts) Total() int {
	return c.Passed + c.Failed + c.Skipped + c.Running
}

// Percent returns n as a share of the total, for the summary bar widths.
func (c Counts) Percent(n int) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

// Summarize counts records by status. Anything that is not passed, failed
// or skipped is still running.
func Summarize(records []Record) Counts {
	var c Counts
	for _, r := range records {
		switch r.Status {
		case StatusPassed:
			c.Passed++
		case StatusFailed:
			c.Failed++
		case StatusSkipped:
			c.Skipped++
		default:
			c.Running++
		}
	}
	return c
}
