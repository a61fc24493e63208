package ofx_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/wsqfx/ofx"
)

var _ = Describe("ofx", func() {
	Describe("EscapeName()", func() {
		DescribeTable("should truncate and escape payee names", func(input, expected string) {
			Expect(ofx.EscapeName(input)).To(Equal(expected))
		},
			Entry("plain", "Coffee Shop", "Coffee Shop"),
			Entry("ampersand and brackets", "A & B <Co>", "A &amp; B &lt;Co&gt;"),
			Entry("existing entity is escaped once", "AT&amp;T", "AT&amp;amp;T"),
			Entry("quotes are left alone", `Joe's "Diner"`, `Joe's "Diner"`),
			Entry("truncated before escaping", "0123456789012345678901234567890&tail", "0123456789012345678901234567890&amp;"),
			Entry("control characters become spaces", "Foo\x0cBar\x01", "Foo Bar"),
			Entry("whitespace collapses", "Tim\n  Hortons\t#12 ", "Tim Hortons #12"),
			Entry("collapsed before truncating", "0123456789\n\n\n\n\n0123456789012345678901", "0123456789 012345678901234567890"),
			Entry("invalid utf-8 is replaced", "Caf\xe9", "Caf\ufffd"),
			Entry("truncated by rune", "ééééééééééééééééééééééééééééééééé", "éééééééééééééééééééééééééééééééé"),
		)
	})
})
