package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	quotePrefix   = "DEV"
	invoicePrefix = "FAC"
)

// QuoteNumber formats the seq-th quote of the year, e.g. DEV-2026-007.
func QuoteNumber(now time.Time, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", quotePrefix, now.Year(), seq)
}

// InvoiceNumber formats the seq-th invoice of the year, e.g. FAC-2026-012.
func InvoiceNumber(now time.Time, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", invoicePrefix, now.Year(), seq)
}

// YearPrefix is the LIKE pattern matching every number of that year.
func YearPrefix(kind string, now time.Time) string {
	p := quotePrefix
	if kind == "invoice" {
		p = invoicePrefix
	}
	return fmt.Sprintf("%s-%d-%%", p, now.Year())
}

// NextSeq returns one past the highest sequence found in numbers. Gaps left
// by deleted documents are never reused.
func NextSeq(numbers []string) int {
	highest := 0
	for _, n := range numbers {
		i := strings.LastIndexByte(n, '-')
		if i < 0 {
			continue
		}
		seq, err := strconv.Atoi(n[i+1:])
		if err != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	return highest + 1
}

// PaymentTerm is the delay between invoice creation and its due date.
const PaymentTerm = 30 * 24 * time.Hour

func DueDate(issued time.Time) time.Time {
	return issued.Add(PaymentTerm)
}
