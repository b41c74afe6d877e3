package pricing

import (
	"errors"
	"fmt"
	"strings"

	"commission-catalog/models"
	"commission-catalog/utils"
)

const (
	summaryIndent     = "   "
	summaryUnitIndent = "      "
)

// Summary renders the order summary of items, one section per commission in
// cart order followed by a grand total line. Each commission is re-derived
// against the current snapshot; a commission whose service has since
// disappeared keeps its stored name and totals.
//
// The output depends only on items and the snapshot.
func (e *Engine) Summary(items []models.SelectedCommission) []string {
	lines, _ := e.summarize(items)
	return lines
}

// SummaryText joins Summary with newlines, ready for a chat message.
func (e *Engine) SummaryText(items []models.SelectedCommission) string {
	return strings.Join(e.Summary(items), "\n")
}

// Settle renders the summary text of items together with the grand total it
// prints, so a checkout never reports a total its message does not show.
func (e *Engine) Settle(items []models.SelectedCommission) (string, models.Totals) {
	lines, total := e.summarize(items)
	return strings.Join(lines, "\n"), total
}

func (e *Engine) summarize(items []models.SelectedCommission) ([]string, models.Totals) {
	lines := make([]string, 0, len(items)*4+1)
	var grand models.Totals

	for i, item := range items {
		breakdown, totals, err := e.Breakdown(item)
		if err != nil {
			if !errors.Is(err, ErrUnknownService) {
				e.log.Warnf("⚠️ Summary: could not re-derive commission %d: %v", item.LocalID, err)
			}
			lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, item.ServiceName, formatAmount(item.Totals.CLP, item.Totals.USD)))
			grand.CLP += item.Totals.CLP
			grand.USD += item.Totals.USD
			continue
		}

		lines = append(lines, renderSection(i+1, breakdown)...)
		if len(breakdown) > 1 {
			lines = append(lines, summaryIndent+"Subtotal: "+formatAmount(totals.CLP, totals.USD))
		}
		grand.CLP += totals.CLP
		grand.USD += totals.USD
	}

	grand.USD = utils.RoundCents(grand.USD)
	lines = append(lines, "TOTAL: "+formatAmount(grand.CLP, grand.USD))
	return lines, grand
}

func renderSection(position int, breakdown []models.LineItem) []string {
	out := make([]string, 0, len(breakdown))
	for _, line := range breakdown {
		switch line.Kind {
		case models.LineBase:
			out = append(out, fmt.Sprintf("%d. %s: %s", position, line.Label, formatAmount(line.CLP, line.USD)))
		case models.LineVariant:
			out = append(out, fmt.Sprintf("%s+ %s: +%s", summaryIndent, line.Label, formatAmount(line.CLP, line.USD)))
		case models.LineTheme:
			out = append(out, fmt.Sprintf("%sTheme: %s", summaryIndent, line.Label))
		case models.LineCustomTheme:
			out = append(out, fmt.Sprintf("%sCustom theme: %s", summaryIndent, line.Label))
		case models.LineExtra:
			out = append(out, fmt.Sprintf("%s+ %s: +%s", summaryIndent, line.Label, formatAmount(line.CLP, line.USD)))
		case models.LineUnit:
			out = append(out, fmt.Sprintf("%s%s:", summaryIndent, line.Label))
		case models.LineUnitExtra:
			out = append(out, fmt.Sprintf("%s+ %s: +%s", summaryUnitIndent, line.Label, formatAmount(line.CLP, line.USD)))
		case models.LineUnitEmpty:
			out = append(out, summaryUnitIndent+"(no extras)")
		}
	}
	return out
}

func formatAmount(clp int64, usd float64) string {
	return fmt.Sprintf("%s CLP / %s USD", utils.FormatCLP(clp), utils.FormatUSD(usd))
}
