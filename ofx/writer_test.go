package ofx_test

import (
	"bytes"
	"strings"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/rockstardevs/wsqfx/ofx"
)

var _ = Describe("Statement", func() {
	var (
		serverTime = time.Date(2024, 1, 8, 9, 5, 7, 0, time.UTC)
		stmt       *ofx.Statement
	)

	BeforeEach(func() {
		stmt = &ofx.Statement{
			Shape:       ofx.BankStatement,
			Currency:    "CAD",
			BankID:      "0000",
			AccountID:   "0000",
			AccountType: "CHECKING",
			ServerTime:  serverTime,
			Transactions: []ofx.Transaction{
				{Type: ofx.DEBIT, Posted: "20240105", Amount: decimal.RequireFromString("-20"), ID: "20240105GROCER2000", Name: "Grocer"},
				{Type: ofx.INTEREST, Posted: "20240103", Amount: decimal.RequireFromString("1.5"), ID: "20240103INTEREST150", Name: "Interest"},
				{Type: ofx.TRANSFER, Posted: "20240107", Amount: decimal.RequireFromString("100.00"), ID: "20240107JANEDOE10000", Name: "A & B <Co>"},
			},
		}
	})

	Describe("Bytes()", func() {
		It("should write the exact bank statement grammar", func() {
			out, err := stmt.Bytes()
			Expect(err).To(BeNil())
			Expect(string(out)).To(Equal(`OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240108090507
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>CAD
<BANKACCTFROM>
<BANKID>0000
<ACCTID>0000
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240103
<DTEND>20240107
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240105
<TRNAMT>-20.00
<FITID>20240105GROCER2000
<NAME>Grocer
</STMTTRN>
<STMTTRN>
<TRNTYPE>INT
<DTPOSTED>20240103
<TRNAMT>1.50
<FITID>20240103INTEREST150
<NAME>Interest
</STMTTRN>
<STMTTRN>
<TRNTYPE>XFER
<DTPOSTED>20240107
<TRNAMT>100.00
<FITID>20240107JANEDOE10000
<NAME>A &amp; B &lt;Co&gt;
</STMTTRN>
</BANKTRANLIST>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`))
		})

		It("should write the credit card shape", func() {
			stmt.Shape = ofx.CreditCardStatement
			out, err := stmt.Bytes()
			Expect(err).To(BeNil())
			s := string(out)
			Expect(s).To(ContainSubstring("<CREDITCARDMSGSRSV1>\n<CCSTMTTRNRS>\n<TRNUID>1\n"))
			Expect(s).To(ContainSubstring("<CCSTMTRS>\n<CURDEF>CAD\n<CCACCTFROM>\n<ACCTID>0000\n</CCACCTFROM>\n<BANKTRANLIST>\n"))
			Expect(s).To(HaveSuffix("</BANKTRANLIST>\n</CCSTMTRS>\n</CCSTMTTRNRS>\n</CREDITCARDMSGSRSV1>\n</OFX>"))
			Expect(s).NotTo(ContainSubstring("BANKACCTFROM"))
			Expect(s).NotTo(ContainSubstring("BANKMSGSRSV1"))
		})

		It("should not depend on transaction order for the date range", func() {
			t := stmt.Transactions
			stmt.Transactions = []ofx.Transaction{t[2], t[0], t[1]}
			out, err := stmt.Bytes()
			Expect(err).To(BeNil())
			Expect(string(out)).To(ContainSubstring("<DTSTART>20240103\n<DTEND>20240107\n"))
		})

		It("should be deterministic", func() {
			a, err := stmt.Bytes()
			Expect(err).To(BeNil())
			b, err := stmt.Bytes()
			Expect(err).To(BeNil())
			Expect(a).To(Equal(b))
		})

		It("should refuse to write an empty statement", func() {
			stmt.Transactions = nil
			var buf bytes.Buffer
			n, err := stmt.WriteTo(&buf)
			Expect(err).To(MatchError(ofx.ErrNoTransactions))
			Expect(n).To(BeZero())
			Expect(buf.Len()).To(BeZero())
		})

		It("should reject malformed posted dates", func() {
			stmt.Transactions[1].Posted = "yesterday"
			_, err := stmt.Bytes()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("20240103INTEREST150"))
		})
	})

	Describe("Verify()", func() {
		It("should read back what was written", func() {
			for _, shape := range []ofx.Shape{ofx.BankStatement, ofx.CreditCardStatement} {
				stmt.Shape = shape
				out, err := stmt.Bytes()
				Expect(err).To(BeNil())
				Expect(ofx.Verify(out, 3)).To(Succeed())

				doc, err := ofx.NewDocumentFromSGML(bytes.NewReader(out), ofx.NewCleaner())
				Expect(err).To(BeNil())
				txns := doc.GetTxns()
				Expect(txns).To(HaveLen(3))
				Expect(txns[2].Name).To(Equal("A & B <Co>"))
				Expect(txns[0].Amount.Equal(decimal.RequireFromString("-20"))).To(BeTrue())
			}
		})

		It("should report transactions outside a transaction list", func() {
			out, err := stmt.Bytes()
			Expect(err).To(BeNil())
			stray := strings.Replace(string(out), "</BANKTRANLIST>\n", "</BANKTRANLIST>\n<STMTTRN>\n<TRNTYPE>DEBIT\n<DTPOSTED>20240103\n<TRNAMT>-1.00\n<FITID>X\n<NAME>Stray\n</STMTTRN>\n", 1)
			err = ofx.Verify([]byte(stray), 4)
			Expect(err).To(MatchError("error - generated statement lists 3 of its 4 transactions"))
		})

		It("should report a transaction count mismatch", func() {
			out, err := stmt.Bytes()
			Expect(err).To(BeNil())
			err = ofx.Verify(out, 4)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("has 3 transactions, want 4"))
		})

		It("should report unparsable output", func() {
			err := ofx.Verify([]byte(strings.Repeat("x", 10)), 0)
			Expect(err).To(HaveOccurred())
		})
	})
})
