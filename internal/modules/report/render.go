package report

import (
	"strings"
	"text/template"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/money"
)

var funcs = template.FuncMap{
	"brl":     money.BRL,
	"percent": money.Percent,
	"date":    dateutil.Format,
}

var (
	occupancyTmpl = template.Must(template.New("occupancy").Funcs(funcs).Parse(
		`*Ocupação* {{date .From}} a {{date .To}} ({{.Days}} dias)
{{range .Units}}
Unidade {{.Unit}}: {{.OccupiedNights}} diárias ocupadas, {{percent .Rate}}{{if .BlockedNights}} ({{.BlockedNights}} bloqueadas){{end}}{{end}}

Média geral: {{percent .AverageRate}}`))

	financialTmpl = template.Must(template.New("financial").Funcs(funcs).Parse(
		`*Financeiro* {{date .From}} a {{date .To}}
{{range .Units}}
Unidade {{.Unit}} ({{.Bookings}} reservas)
  Receita: {{brl .Revenue}} | Recebido: {{brl .Received}} | A receber: {{brl .Pending}}
  Comissão: {{brl .Commission}} | Despesas: {{brl .Expenses}}
  Líquido: {{brl .Net}}{{end}}

Total líquido: {{brl .Totals.Net}} (receita {{brl .Totals.Revenue}}, despesas {{brl .Totals.Expenses}})`))

	movementsTmpl = template.Must(template.New("movements").Funcs(funcs).Parse(
		`*Movimentação* {{date .Day}}

Check-ins:{{range .CheckIns}}
- Unidade {{.Unit}}: {{.GuestName}} ({{.Nights}} noites){{else}} nenhum{{end}}

Check-outs:{{range .CheckOuts}}
- Unidade {{.Unit}}: {{.GuestName}}{{else}} nenhum{{end}}`))
)

func RenderOccupancy(r *OccupancyReport) (string, error) {
	return execute(occupancyTmpl, r)
}

func RenderFinancial(r *FinancialReport) (string, error) {
	return execute(financialTmpl, r)
}

func RenderMovements(r *MovementsReport) (string, error) {
	return execute(movementsTmpl, r)
}

func execute(t *template.Template, data interface{}) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
