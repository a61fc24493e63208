package ofx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/golang/glog"
	"github.com/shopspring/decimal"
)

//revive:disable:exported

var (
	txnPattern  = regexp.MustCompile(`<STMTTRN>`)
	datePattern = regexp.MustCompile(`(?P<date>\d{8})(?P<time>\d{4}\d{2}?(?:\.\d{3})?)?(?:\.\d{3})?(?:\[-?\d+:(?P<tz>\S+)])?`)
)

// DateFormat is the OFX date layout used for DTSTART, DTEND and DTPOSTED.
const DateFormat = "20060102"

// DateTimeFormat is the OFX timestamp layout used for DTSERVER.
const DateTimeFormat = "20060102150405"

// TransactionType is a transaction type as per the OFX Spec 2.2 Section 11.4.4.3
// https://www.ofx.net/downloads/OFX%202.2.pdf
type TransactionType string

const (
	// Common Transaction Types
	DEBIT  TransactionType = "DEBIT"
	CREDIT TransactionType = "CREDIT"
	// Uncommon Transaction Types
	INTEREST      TransactionType = "INT"
	DIVIDEND      TransactionType = "DIV"
	FEE           TransactionType = "FEE"
	SERVICECHARGE TransactionType = "SRVCHG"
	DEPOSIT       TransactionType = "DEP"
	ATM           TransactionType = "ATM"
	POS           TransactionType = "POS"
	TRANSFER      TransactionType = "XFER"
	CHECK         TransactionType = "CHECK"
	PAYMENT       TransactionType = "PAYMENT"
	CASH          TransactionType = "CASH"
	DIRECTDEPOSIT TransactionType = "DIRECTDEP"
	DIRECTDEBIT   TransactionType = "DIRECTDEBIT"
	REPEATPAYMENT TransactionType = "REPEATPMT"
	OTHER         TransactionType = "OTHER"
)

type Transaction struct {
	Type   TransactionType `xml:"TRNTYPE"`
	Posted string          `xml:"DTPOSTED"`
	Amount decimal.Decimal `xml:"TRNAMT"`
	ID     string          `xml:"FITID"`
	Name   string          `xml:"NAME,omitempty"`
}

type SignOnResponse struct {
	Code     int    `xml:"STATUS>CODE"`
	Severity string `xml:"STATUS>SEVERITY"`
	Date     string `xml:"DTSERVER"`
	Language string `xml:"LANGUAGE"`
}

type TransactionList struct {
	StartDate    string        `xml:"DTSTART"`
	EndDate      string        `xml:"DTEND"`
	Transactions []Transaction `xml:"STMTTRN"`
}

type StatementResponseSet struct {
	Currency    string          `xml:"CURDEF"`
	BankID      string          `xml:"BANKACCTFROM>BANKID"`
	AccountID   string          `xml:"BANKACCTFROM>ACCTID"`
	AccountType string          `xml:"BANKACCTFROM>ACCTTYPE"`
	List        TransactionList `xml:"BANKTRANLIST"`
}

type StatementTransactionResponseSet struct {
	ID       string               `xml:"TRNUID"`
	Code     int                  `xml:"STATUS>CODE"`
	Severity string               `xml:"STATUS>SEVERITY"`
	RS       StatementResponseSet `xml:"STMTRS"`
}

type BankResponseMessageSet struct {
	TRS StatementTransactionResponseSet `xml:"STMTTRNRS"`
}

type CreditCardStatementResponseSet struct {
	Currency  string          `xml:"CURDEF"`
	AccountID string          `xml:"CCACCTFROM>ACCTID"`
	List      TransactionList `xml:"BANKTRANLIST"`
}

type CreditCardTransactionResponseSet struct {
	ID       string                         `xml:"TRNUID"`
	Code     int                            `xml:"STATUS>CODE"`
	Severity string                         `xml:"STATUS>SEVERITY"`
	RS       CreditCardStatementResponseSet `xml:"CCSTMTRS"`
}

type CreditCardResponseMessageSet struct {
	TRS CreditCardTransactionResponseSet `xml:"CCSTMTTRNRS"`
}

// Document is a parsed OFX/QFX Statement.
// Only the aggregates this package writes are mapped.
type Document struct {
	XMLName          xml.Name                       `xml:"OFX"`
	Response         SignOnResponse                 `xml:"SIGNONMSGSRSV1>SONRS"`
	BRMS             []BankResponseMessageSet       `xml:"BANKMSGSRSV1"`
	CCRMS            []CreditCardResponseMessageSet `xml:"CREDITCARDMSGSRSV1"`
	TransactionCount int                            `xml:"-"`
}

// NewDocumentFromSGML parses the given SGML or XML statement into a Document.
func NewDocumentFromSGML(reader io.Reader, cleaner Cleaner) (*Document, error) {
	document := &Document{}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	data = preprocessOFXData(data)
	if err = cleaner.Init(data); err != nil {
		return nil, err
	}
	cleanXML, err := cleaner.CleanupXML()
	if err != nil {
		return nil, err
	}

	glog.V(3).Infof("cleanXML: %s", cleanXML.String())
	if err = xml.Unmarshal(cleanXML.Bytes(), document); err != nil {
		return nil, err
	}

	matches := txnPattern.FindAllIndex(cleanXML.Bytes(), -1)
	document.TransactionCount = len(matches)
	return document, nil
}

// GetTxns returns all transactions from the OFX document, bank statements first.
func (d *Document) GetTxns() []Transaction {
	txns := make([]Transaction, 0, d.TransactionCount)
	for _, b := range d.BRMS {
		txns = append(txns, b.TRS.RS.List.Transactions...)
	}
	for _, c := range d.CCRMS {
		txns = append(txns, c.TRS.RS.List.Transactions...)
	}
	return txns
}

// Verify parses data and checks that every STMTTRN lands in a transaction list and
// that there are exactly want of them.
func Verify(data []byte, want int) error {
	doc, err := NewDocumentFromSGML(bytes.NewReader(data), NewCleaner())
	if err != nil {
		return fmt.Errorf("error - generated statement does not parse: %w", err)
	}
	got := len(doc.GetTxns())
	if got != doc.TransactionCount {
		return fmt.Errorf("error - generated statement lists %d of its %d transactions", got, doc.TransactionCount)
	}
	if got != want {
		return fmt.Errorf("error - generated statement has %d transactions, want %d", got, want)
	}
	return nil
}

// ParseDate parses the given OFX formatted date string to a time.Time object at midnight.
// When the date carries no timezone, loc is used, defaulting to UTC.
func ParseDate(d string, loc *time.Location) (*time.Time, error) {
	parts := datePattern.FindStringSubmatch(d)
	if len(parts) == 0 {
		return nil, errors.New("error - date string can not be parsed")
	}
	if loc == nil {
		loc = time.UTC
	}
	glog.V(3).Infof("parts:%q format:%s", parts, DateFormat)
	t, err := time.ParseInLocation(DateFormat, parts[1], loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate formats t as an OFX date.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
