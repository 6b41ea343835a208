package contract

import (
	"strings"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/money"
)

// DefaultTemplate is used when a contract is saved without its own template.
const DefaultTemplate = `CONTRATO DE LOCAÇÃO POR TEMPORADA

LOCATÁRIO: {{inquilino}}, documento {{documento}}.
IMÓVEL: unidade {{unidade}}.

1. A locação vigora de {{inicio}} a {{fim}}.
2. O valor do aluguel é de {{aluguel}}, pago na forma combinada entre as partes.
3. A título de caução o locatário entrega {{caucao}}, devolvida ao final da locação
descontados eventuais danos ao imóvel.
4. O locatário se obriga a devolver o imóvel nas condições em que o recebeu.

Data: {{data}}

_______________________________          _______________________________
Locador                                  Locatário`

// Render substitutes the contract placeholders in tmpl. Unknown placeholders
// are left as written.
func Render(tmpl string, c *domain.Contract, today time.Time) string {
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultTemplate
	}
	r := strings.NewReplacer(
		"{{inquilino}}", c.TenantName,
		"{{documento}}", orDash(c.TenantDocument),
		"{{unidade}}", c.Unit,
		"{{inicio}}", dateutil.Format(c.StartDate),
		"{{fim}}", dateutil.Format(c.EndDate),
		"{{aluguel}}", money.BRL(c.MonthlyRent),
		"{{caucao}}", money.BRL(c.Deposit),
		"{{data}}", dateutil.Format(today),
	)
	return r.Replace(tmpl)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
