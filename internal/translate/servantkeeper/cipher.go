package servantkeeper

import (
	"strings"

	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
)

// ServantKeeper stores contribution amounts with each character displaced
// into a letter range, a leftover of its fixed-width binary era. The table
// below is a fixed contract with the source format: do not "improve" it.
// Decoding is a byte-for-byte reverse substitution; bytes outside the
// table pass through unchanged, which keeps already-plain amounts working.
var amountCipher = map[byte]byte{
	'J': '0',
	'K': '1',
	'L': '2',
	'M': '3',
	'N': '4',
	'O': '5',
	'P': '6',
	'Q': '7',
	'R': '8',
	'S': '9',
	'Z': '.',
	'H': '-',
}

// DecodeAmount reverses the substitution cipher and parses the result as
// a monetary amount. Undecodable input degrades to nil like any other
// unparsable amount.
func DecodeAmount(encoded string) *model.Cents {
	if encoded == "" {
		return nil
	}
	var b strings.Builder
	b.Grow(len(encoded))
	for i := 0; i < len(encoded); i++ {
		if plain, ok := amountCipher[encoded[i]]; ok {
			b.WriteByte(plain)
		} else {
			b.WriteByte(encoded[i])
		}
	}
	return coerce.ParseCents(b.String())
}
