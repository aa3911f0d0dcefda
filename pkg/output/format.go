// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/mortgage-calc/pkg/affordability"
	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/format"
	"github.com/iwvelando/mortgage-calc/pkg/loans"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Unit controls how a field value is rendered.
type Unit int

// Supported field units.
const (
	UnitCurrency Unit = iota
	UnitRate
	UnitPercent
	UnitCount
)

// Field is one labelled value of a report.
type Field struct {
	Name  string
	Value float64
	Unit  Unit
}

// Report is a titled list of fields plus the structured result it was built from.
type Report struct {
	Title  string
	Fields []Field
	Source interface{}
}

// LoanAmountResult is the structured result of a principal-from-payment calculation.
type LoanAmountResult struct {
	MonthlyPayment     float64 `json:"monthlyPayment" yaml:"monthlyPayment"`
	AnnualInterestRate float64 `json:"annualInterestRate" yaml:"annualInterestRate"`
	Years              int     `json:"years" yaml:"years"`
	LoanAmount         float64 `json:"loanAmount" yaml:"loanAmount"`
}

// FromSummary builds the report for a monthly payment calculation.
func FromSummary(s loans.Summary) Report {
	return Report{
		Title: "Monthly payment",
		Fields: []Field{
			{"Principal", s.Loan.Principal, UnitCurrency},
			{"Annual interest rate", s.Loan.AnnualInterestRate, UnitRate},
			{"Term (months)", float64(s.Months), UnitCount},
			{"Monthly payment", s.MonthlyPayment, UnitCurrency},
			{"Total payment", s.TotalPayment, UnitCurrency},
			{"Total interest", s.TotalInterest, UnitCurrency},
		},
		Source: s,
	}
}

// FromLoanAmount builds the report for a loan amount calculation.
func FromLoanAmount(r LoanAmountResult) Report {
	return Report{
		Title: "Loan amount",
		Fields: []Field{
			{"Monthly payment", r.MonthlyPayment, UnitCurrency},
			{"Annual interest rate", r.AnnualInterestRate, UnitRate},
			{"Term (years)", float64(r.Years), UnitCount},
			{"Loan amount", r.LoanAmount, UnitCurrency},
		},
		Source: r,
	}
}

// FromAssessment builds the report for an affordability assessment.
func FromAssessment(a affordability.Assessment) Report {
	return Report{
		Title: "Affordability",
		Fields: []Field{
			{"Monthly income", a.Borrower.MonthlyIncome, UnitCurrency},
			{"Monthly debt", a.Borrower.MonthlyDebt, UnitCurrency},
			{"Current DTI", a.CurrentDTI, UnitPercent},
			{"Maximum DTI", a.MaxDTI, UnitPercent},
			{"Annual interest rate", a.AnnualInterestRate, UnitRate},
			{"Term (years)", float64(a.Years), UnitCount},
			{"Max monthly payment", a.MaxMonthlyPayment, UnitCurrency},
			{"Max loan amount", a.MaxLoanAmount, UnitCurrency},
		},
		Source: a,
	}
}

// Write renders the report in the requested output format.
func Write(w io.Writer, outputFormat string, report Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return Pretty(w, report)
	case constants.OutputFormatCSV:
		return CSV(w, report)
	case constants.OutputFormatYAML:
		return YAML(w, report)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// Pretty outputs a human-readable rather than machine-readable table.
func Pretty(w io.Writer, report Report) error {
	p := message.NewPrinter(language.English)

	width := 0
	for _, field := range report.Fields {
		if len(field.Name) > width {
			width = len(field.Name)
		}
	}

	if _, err := p.Fprintf(w, "--- %s ---\n", report.Title); err != nil {
		return err
	}
	for _, field := range report.Fields {
		var value string
		switch field.Unit {
		case UnitCurrency:
			value = format.Currency(field.Value)
		case UnitRate:
			value = format.Rate(field.Value)
		case UnitPercent:
			value = format.Percent(field.Value)
		case UnitCount:
			value = p.Sprintf("%d", int(field.Value))
		}
		name := fmt.Sprintf("%-*s", width, field.Name)
		if _, err := p.Fprintf(w, "%s | %s\n", name, value); err != nil {
			return err
		}
	}
	return nil
}

// CSV outputs in comma-separated value format with raw numeric values.
func CSV(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"field", "value"}); err != nil {
		return err
	}
	for _, field := range report.Fields {
		var value string
		switch field.Unit {
		case UnitCurrency:
			value = strconv.FormatFloat(field.Value, 'f', 2, 64)
		case UnitCount:
			value = strconv.Itoa(int(field.Value))
		default:
			value = strconv.FormatFloat(field.Value, 'f', -1, 64)
		}
		if err := writer.Write([]string{field.Name, value}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// YAML outputs the structured result the report was built from.
func YAML(w io.Writer, report Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report.Source); err != nil {
		return err
	}
	return encoder.Close()
}
