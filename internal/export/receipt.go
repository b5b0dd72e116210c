package export

import (
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/nightledger/nightledger/internal/ledger"
	"github.com/nightledger/nightledger/internal/store"
)

// ErrNoShifts is returned when no shifts fall inside the receipt period.
var ErrNoShifts = errors.New("no shifts in receipt period")

// Party identifies one side of a receipt. Empty fields are omitted from
// the client block; provider name and service always render.
type Party struct {
	Name    string
	Service string
	Phone   string
	Email   string
	Address string
	TaxID   string
}

// ReceiptOptions controls everything on a receipt besides the shift
// rows themselves.
type ReceiptOptions struct {
	Title    string // defaults to "Childcare Receipt"
	Number   string
	Provider Party
	Client   Party
	From     time.Time
	To       time.Time
	Notes    string

	MarkPaid      bool
	PaidOn        time.Time
	PaymentMethod string // "Manual" renders an unchecked box with a blank date line

	ProviderSignature bool
	ClientSignature   bool
}

type receiptRow struct {
	Date   string
	Times  string
	Hours  string
	Amount string
}

type receiptView struct {
	Title  string
	Number string

	Provider Party
	Client   Party
	From     string
	To       string

	Rows        []receiptRow
	Rate        string
	TotalHours  string
	ShiftCount  int
	ShiftWord   string
	TotalAmount string

	ShowPaid   bool
	PaidManual bool
	PaidLine   string

	Notes string

	ProviderSignature bool
	ClientSignature   bool
}

// ReceiptHTML renders a printable receipt for the shifts that fall
// within [From, To]. Hours are rounded per shift before summing, the
// same way week totals are computed.
func ReceiptHTML(shifts []store.Shift, rate float64, opts ReceiptOptions) (string, error) {
	from := ledger.Day(opts.From)
	to := ledger.Day(opts.To)

	var inRange []store.Shift
	for _, s := range shifts {
		d := ledger.Day(s.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		inRange = append(inRange, s)
	}
	if len(inRange) == 0 {
		return "", ErrNoShifts
	}
	sort.Slice(inRange, func(i, j int) bool { return inRange[i].Date.Before(inRange[j].Date) })

	view := receiptView{
		Title:             opts.Title,
		Number:            opts.Number,
		Provider:          opts.Provider,
		Client:            opts.Client,
		From:              from.Format("Jan 2, 2006"),
		To:                to.Format("Jan 2, 2006"),
		Rate:              ledger.FormatCurrency(rate),
		Notes:             opts.Notes,
		ProviderSignature: opts.ProviderSignature,
		ClientSignature:   opts.ClientSignature,
	}
	if view.Title == "" {
		view.Title = "Childcare Receipt"
	}

	var totalHours float64
	for _, s := range inRange {
		hours := s.Ledger().BillableHours()
		totalHours += hours
		view.Rows = append(view.Rows, receiptRow{
			Date:   s.Date.Format("Jan 2, 2006"),
			Times:  s.StartTime + " - " + s.EndTime,
			Hours:  fmt.Sprintf("%.2f", hours),
			Amount: ledger.FormatCurrency(hours * rate),
		})
	}

	view.TotalHours = fmt.Sprintf("%.2f", totalHours)
	view.ShiftCount = len(inRange)
	view.ShiftWord = "shifts"
	if view.ShiftCount == 1 {
		view.ShiftWord = "shift"
	}
	view.TotalAmount = ledger.FormatCurrency(totalHours * rate)

	if opts.MarkPaid {
		view.ShowPaid = true
		if opts.PaymentMethod == "Manual" {
			view.PaidManual = true
		} else {
			method := opts.PaymentMethod
			if method == "" {
				method = "Cash"
			}
			view.PaidLine = fmt.Sprintf("Paid on %s via %s", opts.PaidOn.Format("Jan 2, 2006"), method)
		}
	}

	var b strings.Builder
	if err := receiptTmpl.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return b.String(), nil
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, 'Segoe UI', sans-serif; max-width: 800px; margin: 15px auto; padding: 12px; color: #333; }
.header { text-align: center; margin-bottom: 15px; border-bottom: 2px solid #5E5CE6; padding-bottom: 10px; }
.header h1 { margin: 0; color: #5E5CE6; font-size: 22px; }
.header p { margin: 3px 0; color: #666; font-size: 11px; }
.info-box { padding: 8px; background: #f5f5f7; border-radius: 6px; margin-bottom: 8px; }
.info-box h3 { margin: 0 0 6px 0; font-size: 10px; color: #666; text-transform: uppercase; letter-spacing: 0.5px; }
.info-box p { margin: 2px 0; font-size: 11px; }
table { width: 100%; border-collapse: collapse; margin: 10px 0; }
th { background: #5E5CE6; color: white; padding: 6px 8px; text-align: left; font-weight: 600; font-size: 11px; }
th.right, td.right { text-align: right; }
td { padding: 6px 8px; border-bottom: 1px solid #e5e5e7; font-size: 11px; }
.totals { margin-top: 10px; padding: 10px; background: #f5f5f7; border-radius: 6px; }
.total-row { display: flex; justify-content: space-between; margin: 5px 0; font-size: 12px; }
.total-row.grand { font-size: 14px; font-weight: bold; color: #5E5CE6; border-top: 2px solid #5E5CE6; padding-top: 8px; margin-top: 8px; }
.payment-status { margin-top: 10px; padding: 8px; border-radius: 6px; text-align: center; font-size: 12px; font-weight: 600; }
.payment-status.paid { background: #d1fae5; color: #065f46; border: 1px solid #10b981; }
.payment-status.manual { background: #f3f4f6; color: #374151; border: 1px solid #9ca3af; }
.manual-line { display: inline-block; min-width: 120px; border-bottom: 1px solid #374151; margin: 0 4px; }
.notes { margin: 12px 0; padding: 10px; background: #fffbea; border-left: 3px solid #f59e0b; border-radius: 4px; }
.notes h3 { margin: 0 0 6px 0; font-size: 11px; color: #92400e; }
.notes p { margin: 0; color: #78350f; font-size: 10px; white-space: pre-line; }
.signature { margin-top: 15px; display: grid; grid-template-columns: 1fr 1fr; gap: 10px 20px; }
.signature-line .line { border-bottom: 1px solid #333; margin-bottom: 4px; height: 20px; }
.signature-line p { margin: 0; font-size: 9px; color: #666; }
@media print { body { margin: 0; padding: 20px; } }
</style>
</head>
<body>
<div class="header">
<h1>{{.Title}}</h1>
{{if .Number}}<p>Receipt #{{.Number}}</p>{{end}}
</div>

<div class="info-box">
<h3>Service Provider</h3>
<p><strong>Name:</strong> {{.Provider.Name}}</p>
<p><strong>Service:</strong> {{.Provider.Service}}</p>
{{if .Provider.Phone}}<p><strong>Phone:</strong> {{.Provider.Phone}}</p>{{end}}
{{if .Provider.Email}}<p><strong>Email:</strong> {{.Provider.Email}}</p>{{end}}
{{if .Provider.Address}}<p><strong>Address:</strong> {{.Provider.Address}}</p>{{end}}
{{if .Provider.TaxID}}<p><strong>SSN/EIN:</strong> {{.Provider.TaxID}}</p>{{end}}
</div>

<div class="info-box">
<h3>Client</h3>
<p><strong>Name:</strong> {{.Client.Name}}</p>
{{if .Client.Phone}}<p><strong>Phone:</strong> {{.Client.Phone}}</p>{{end}}
{{if .Client.Email}}<p><strong>Email:</strong> {{.Client.Email}}</p>{{end}}
{{if .Client.Address}}<p><strong>Address:</strong> {{.Client.Address}}</p>{{end}}
</div>

<div class="info-box">
<h3>Period</h3>
<p><strong>From:</strong> {{.From}} <strong>To:</strong> {{.To}}</p>
</div>

<table>
<thead>
<tr><th>Date</th><th>Times</th><th class="right">Hours</th><th class="right">Amount</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.Date}}</td><td>{{.Times}}</td><td class="right">{{.Hours}}</td><td class="right">{{.Amount}}</td></tr>
{{end}}</tbody>
</table>

<div class="totals">
<div class="total-row"><span>Hourly Rate:</span><span>{{.Rate}}/hour</span></div>
<div class="total-row"><span>Total Hours:</span><span>{{.TotalHours}} hours</span></div>
<div class="total-row"><span>Number of Shifts:</span><span>{{.ShiftCount}} {{.ShiftWord}}</span></div>
<div class="total-row grand"><span>Total Amount:</span><span>{{.TotalAmount}}</span></div>
{{if .ShowPaid}}{{if .PaidManual}}<div class="payment-status manual"><span>&#9744; Paid on <span class="manual-line">&nbsp;</span></span></div>
{{else}}<div class="payment-status paid"><span>&#10003; {{.PaidLine}}</span></div>
{{end}}{{end}}</div>

{{if .Notes}}<div class="notes">
<h3>Notes</h3>
<p>{{.Notes}}</p>
</div>
{{end}}
{{if or .ProviderSignature .ClientSignature}}<div class="signature">
{{if .ProviderSignature}}<div class="signature-line"><div class="line"></div><p>Provider Signature</p></div>
<div class="signature-line"><div class="line"></div><p>Date</p></div>
{{end}}{{if .ClientSignature}}<div class="signature-line"><div class="line"></div><p>Client Signature</p></div>
<div class="signature-line"><div class="line"></div><p>Date</p></div>
{{end}}</div>
{{end}}</body>
</html>
`))
