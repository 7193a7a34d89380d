package codec

import (
	"math/big"

	"github.com/m-lab/go-multiaddr/maerr"
)

// base58BTCAlphabet is the Bitcoin base58 alphabet (no 0, O, I, l).
const base58BTCAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var base58Decode [256]int8

func init() {
	for i := range base58Decode {
		base58Decode[i] = -1
	}
	for i, c := range base58BTCAlphabet {
		base58Decode[c] = int8(i)
	}
}

// base58BTCEncode encodes b into base58btc text, preserving leading zero
// bytes as leading '1' characters.
func base58BTCEncode(b []byte) string {
	zero := 0
	for zero < len(b) && b[zero] == 0 {
		zero++
	}
	x := new(big.Int).SetBytes(b)
	base := big.NewInt(58)
	mod := new(big.Int)
	var out []byte
	for x.Sign() > 0 {
		x.DivMod(x, base, mod)
		out = append(out, base58BTCAlphabet[mod.Int64()])
	}
	for i := 0; i < zero; i++ {
		out = append(out, base58BTCAlphabet[0])
	}
	// reverse
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if len(out) == 0 {
		return string(base58BTCAlphabet[0])
	}
	return string(out)
}

// base58BTCDecode decodes base58btc text back to bytes.
func base58BTCDecode(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, &maerr.CodecError{Proto: "p2p", Kind: "BadBase58", Detail: "empty string"}
	}
	zero := 0
	for zero < len(s) && s[zero] == base58BTCAlphabet[0] {
		zero++
	}
	x := new(big.Int)
	base := big.NewInt(58)
	for i := 0; i < len(s); i++ {
		d := base58Decode[s[i]]
		if d < 0 {
			return nil, &maerr.CodecError{Proto: "p2p", Kind: "BadBase58", Detail: "invalid character"}
		}
		x.Mul(x, base)
		x.Add(x, big.NewInt(int64(d)))
	}
	decoded := x.Bytes()
	out := make([]byte, zero+len(decoded))
	copy(out[zero:], decoded)
	return out, nil
}
