package models

import "fmt"

// EmployeeIDWidth is the number of digits of a zero-padded employee identifier.
const EmployeeIDWidth = 6

// Employee represents a member of the shop roster.
// The identifier is a zero-padded decimal string assigned by the system.
type Employee struct {
	ID       string // Zero-padded identifier, e.g. "000001"
	Nickname string // Display name shown in the calendar views
}

// FormatEmployeeID renders a numeric identifier as a zero-padded employee ID.
func FormatEmployeeID(n int) string {
	return fmt.Sprintf("%0*d", EmployeeIDWidth, n)
}
