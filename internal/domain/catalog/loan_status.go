package catalog

// LoanStatus is the availability code of a BookInstance.
type LoanStatus string

const (
	StatusMaintenance LoanStatus = "M" // waiting to be shelved
	StatusOnLoan      LoanStatus = "O"
	StatusAvailable   LoanStatus = "A"
	StatusReserved    LoanStatus = "R" // reserved but not yet taken
)

const DefaultLoanStatus = StatusMaintenance

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var loanStatuses = []Choice{
	{Value: string(StatusMaintenance), Label: "Maintenance"},
	{Value: string(StatusOnLoan), Label: "On Loan"},
	{Value: string(StatusAvailable), Label: "Available"},
	{Value: string(StatusReserved), Label: "Reserved"},
}

// LoanStatuses returns the status choices in display order.
func LoanStatuses() []Choice {
	out := make([]Choice, len(loanStatuses))
	copy(out, loanStatuses)
	return out
}

func (s LoanStatus) Valid() bool {
	for _, c := range loanStatuses {
		if c.Value == string(s) {
			return true
		}
	}
	return false
}

func (s LoanStatus) Label() string {
	for _, c := range loanStatuses {
		if c.Value == string(s) {
			return c.Label
		}
	}
	return string(s)
}
