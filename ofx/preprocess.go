package ofx

import "regexp"

var missingAcctFrom = regexp.MustCompile(`(</CURDEF>\s+)(<BANKID>)`)

// preprocessOFXData applies one-off transforms to fix bad data.
// Some banks drop the BANKACCTFROM start tag after an explicitly closed CURDEF.
func preprocessOFXData(content []byte) []byte {
	return missingAcctFrom.ReplaceAll(content, []byte("$1<BANKACCTFROM>$2"))
}
