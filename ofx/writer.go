package ofx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNoTransactions is returned when asked to write a statement without transactions.
var ErrNoTransactions = errors.New("error - statement has no transactions")

// Shape selects the message set a statement is written into.
type Shape int

const (
	// BankStatement writes BANKMSGSRSV1/STMTTRNRS/STMTRS with BANKACCTFROM.
	BankStatement Shape = iota
	// CreditCardStatement writes CREDITCARDMSGSRSV1/CCSTMTTRNRS/CCSTMTRS with CCACCTFROM.
	CreditCardStatement
)

func (s Shape) String() string {
	switch s {
	case BankStatement:
		return "bank"
	case CreditCardStatement:
		return "creditcard"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

const header = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

`

// Statement is a single account statement to be written as OFX 1.02 SGML.
type Statement struct {
	Shape       Shape
	Currency    string
	BankID      string // BankStatement only.
	AccountID   string
	AccountType string // BankStatement only, e.g. CHECKING.
	ServerTime  time.Time
	// Transactions are written in order; they are never sorted.
	Transactions []Transaction
}

// DateRange returns the earliest and latest posted dates of the statement.
func (s *Statement) DateRange() (start, end time.Time, err error) {
	if len(s.Transactions) == 0 {
		return start, end, ErrNoTransactions
	}
	for i, t := range s.Transactions {
		posted, err := ParseDate(t.Posted, nil)
		if err != nil {
			return start, end, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		if i == 0 || posted.Before(start) {
			start = *posted
		}
		if i == 0 || posted.After(end) {
			end = *posted
		}
	}
	return start, end, nil
}

// Bytes renders the statement.
func (s *Statement) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo renders the statement into w. Nothing is written when the statement is invalid.
func (s *Statement) WriteTo(w io.Writer) (int64, error) {
	start, end, err := s.DateRange()
	if err != nil {
		return 0, err
	}

	var b bytes.Buffer
	b.WriteString(header)
	b.WriteString("<OFX>\n<SIGNONMSGSRSV1>\n<SONRS>\n")
	writeStatus(&b)
	leaf(&b, "DTSERVER", s.ServerTime.Format(DateTimeFormat))
	leaf(&b, "LANGUAGE", "ENG")
	b.WriteString("</SONRS>\n</SIGNONMSGSRSV1>\n")

	msgSet, trnRS, stmtRS := "BANKMSGSRSV1", "STMTTRNRS", "STMTRS"
	if s.Shape == CreditCardStatement {
		msgSet, trnRS, stmtRS = "CREDITCARDMSGSRSV1", "CCSTMTTRNRS", "CCSTMTRS"
	}
	open(&b, msgSet)
	open(&b, trnRS)
	leaf(&b, "TRNUID", "1")
	writeStatus(&b)
	open(&b, stmtRS)
	leaf(&b, "CURDEF", s.Currency)
	switch s.Shape {
	case BankStatement:
		open(&b, "BANKACCTFROM")
		leaf(&b, "BANKID", s.BankID)
		leaf(&b, "ACCTID", s.AccountID)
		leaf(&b, "ACCTTYPE", s.AccountType)
		closing(&b, "BANKACCTFROM")
	case CreditCardStatement:
		open(&b, "CCACCTFROM")
		leaf(&b, "ACCTID", s.AccountID)
		closing(&b, "CCACCTFROM")
	default:
		return 0, fmt.Errorf("error - unknown statement shape %v", s.Shape)
	}

	open(&b, "BANKTRANLIST")
	leaf(&b, "DTSTART", FormatDate(start))
	leaf(&b, "DTEND", FormatDate(end))
	for _, t := range s.Transactions {
		open(&b, "STMTTRN")
		leaf(&b, "TRNTYPE", string(t.Type))
		leaf(&b, "DTPOSTED", t.Posted)
		leaf(&b, "TRNAMT", t.Amount.StringFixed(2))
		leaf(&b, "FITID", t.ID)
		leaf(&b, "NAME", EscapeName(t.Name))
		closing(&b, "STMTTRN")
	}
	closing(&b, "BANKTRANLIST")
	closing(&b, stmtRS)
	closing(&b, trnRS)
	closing(&b, msgSet)
	b.WriteString("</OFX>")

	return b.WriteTo(w)
}

func writeStatus(b *bytes.Buffer) {
	b.WriteString("<STATUS>\n")
	leaf(b, "CODE", "0")
	leaf(b, "SEVERITY", "INFO")
	b.WriteString("</STATUS>\n")
}

func open(b *bytes.Buffer, tag string) {
	b.WriteString("<" + tag + ">\n")
}

func closing(b *bytes.Buffer, tag string) {
	b.WriteString("</" + tag + ">\n")
}

func leaf(b *bytes.Buffer, tag, value string) {
	b.WriteString("<" + tag + ">" + value + "\n")
}
