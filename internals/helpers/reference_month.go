package helper

import (
	"fmt"
	"time"
)

// Mês de referência no formato "YYYY-MM". O vencimento é sempre dia 10.

const referenceMonthLayout = "2006-01"

const DueDayOfMonth = 10

// ReferenceMonthOf devolve o mês de referência de uma data.
func ReferenceMonthOf(t time.Time) string {
	return t.UTC().Format(referenceMonthLayout)
}

// ValidReferenceMonth valida o formato "YYYY-MM".
func ValidReferenceMonth(s string) bool {
	_, err := time.Parse(referenceMonthLayout, s)
	return err == nil
}

// DueDateFor calcula o vencimento (dia 10, meia-noite UTC) de um mês de referência.
func DueDateFor(referenceMonth string) (time.Time, error) {
	m, err := time.Parse(referenceMonthLayout, referenceMonth)
	if err != nil {
		return time.Time{}, fmt.Errorf("mês de referência inválido %q: %w", referenceMonth, err)
	}
	return time.Date(m.Year(), m.Month(), DueDayOfMonth, 0, 0, 0, 0, time.UTC), nil
}

// DaysLate conta dias completos de atraso; nunca negativo.
func DaysLate(dueDate, now time.Time) int {
	if !now.After(dueDate) {
		return 0
	}
	return int(now.Sub(dueDate).Hours() / 24)
}
