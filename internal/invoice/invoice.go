package invoice

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Line is one invoice row: a bread, how many were sold, and the line
// amount.
type Line struct {
	Bread  string
	Num    int
	Amount float64
}

// DefaultCustomer is used when no customer name was entered.
const DefaultCustomer = "Unknown Customer"

// Render produces a standalone printable HTML document with the
// customer name, date, one row per line and the grand total. The
// output is presentation-only and never read back.
func Render(shop, customer string, at time.Time, lines []Line, total float64) string {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		customer = DefaultCustomer
	}

	var b strings.Builder
	b.WriteString("<html><head><title>Invoice</title></head><body>")
	b.WriteString(`<div style="text-align:center;font-family:Segoe UI,Tahoma;">`)
	fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(shop))
	fmt.Fprintf(&b, "<p><b>Customer:</b> %s</p>", html.EscapeString(customer))
	fmt.Fprintf(&b, "<p><b>Date:</b> %s</p>", at.Format("2006-01-02"))
	b.WriteString(`<table border="1" cellspacing="0" cellpadding="6" style="width:100%;border-collapse:collapse;margin-top:10px;">`)
	b.WriteString(`<tr style="background:#f0f0f0;"><th>Bread</th><th>Number</th><th>Sale Rate</th></tr>`)
	for _, l := range lines {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%s</td></tr>",
			html.EscapeString(l.Bread), l.Num, FormatAmount(l.Amount))
	}
	fmt.Fprintf(&b, `<tr><td colspan="2" style="text-align:right;"><b>Total:</b></td><td><b>%s</b></td></tr>`, FormatAmount(total))
	b.WriteString("</table></div></body></html>")
	return b.String()
}

// FormatAmount renders a currency amount with thousands separators and
// at most two decimals, decimals trimmed when whole.
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var grouped strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}
	out := grouped.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
