package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-calc/pkg/affordability"
	"github.com/iwvelando/mortgage-calc/pkg/loans"
	"gopkg.in/yaml.v3"
)

func sampleSummary() loans.Summary {
	return loans.Summary{
		Loan:           loans.Loan{Principal: 300000, AnnualInterestRate: 0.06, Years: 30},
		Months:         360,
		MonthlyPayment: 1798.65,
		TotalPayment:   647514.00,
		TotalInterest:  347514.00,
	}
}

func sampleAssessment() affordability.Assessment {
	return affordability.Assessment{
		Borrower:           affordability.Borrower{MonthlyIncome: 6000, MonthlyDebt: 500},
		AnnualInterestRate: 0.06,
		Years:              30,
		MaxDTI:             0.36,
		CurrentDTI:         500.0 / 6000.0,
		MaxMonthlyPayment:  1660,
		MaxLoanAmount:      276874.08,
	}
}

func TestPrettySummary(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, FromSummary(sampleSummary())); err != nil {
		t.Fatalf("Pretty() unexpected error: %v", err)
	}
	output := buf.String()

	if !strings.HasPrefix(output, "--- Monthly payment ---\n") {
		t.Errorf("Pretty() missing title header, got %q", output)
	}
	for _, want := range []string{
		"Principal            | $300,000.00",
		"Annual interest rate | 6.000%",
		"Term (months)        | 360",
		"Monthly payment      | $1,798.65",
		"Total interest       | $347,514.00",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Pretty() missing line %q in %q", want, output)
		}
	}
}

func TestPrettyAssessment(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, FromAssessment(sampleAssessment())); err != nil {
		t.Fatalf("Pretty() unexpected error: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"--- Affordability ---",
		"| 8.33%",
		"| 36.00%",
		"| $1,660.00",
		"| $276,874.08",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Pretty() missing %q in %q", want, output)
		}
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	report := FromLoanAmount(LoanAmountResult{
		MonthlyPayment:     1800,
		AnnualInterestRate: 0.06,
		Years:              30,
		LoanAmount:         300224.91,
	})
	if err := CSV(&buf, report); err != nil {
		t.Fatalf("CSV() unexpected error: %v", err)
	}

	expected := "field,value\n" +
		"Monthly payment,1800.00\n" +
		"Annual interest rate,0.06\n" +
		"Term (years),30\n" +
		"Loan amount,300224.91\n"
	if buf.String() != expected {
		t.Errorf("CSV() = %q, expected %q", buf.String(), expected)
	}
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := YAML(&buf, FromAssessment(sampleAssessment())); err != nil {
		t.Fatalf("YAML() unexpected error: %v", err)
	}

	var decoded affordability.Assessment
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode YAML output: %v", err)
	}
	if decoded.MaxLoanAmount != 276874.08 {
		t.Errorf("decoded MaxLoanAmount = %v, expected 276874.08", decoded.MaxLoanAmount)
	}
	if !strings.Contains(buf.String(), "maxMonthlyPayment: 1660") {
		t.Errorf("YAML() missing camelCase key, got %q", buf.String())
	}
}

func TestWrite(t *testing.T) {
	report := FromSummary(sampleSummary())

	for _, outputFormat := range []string{"pretty", "csv", "yaml"} {
		var buf bytes.Buffer
		if err := Write(&buf, outputFormat, report); err != nil {
			t.Errorf("Write(%s) unexpected error: %v", outputFormat, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Write(%s) produced no output", outputFormat)
		}
	}

	if err := Write(&bytes.Buffer{}, "xml", report); err == nil {
		t.Error("Write(xml) expected error but got none")
	}
}
