package gojson

import (
	"math"
	"strconv"
)

// Precision selects how the parser converts a number token's decimal
// text into a binary value.
type Precision int8

const (
	// PrecisionImprecise uses a fast pow10-table multiply; the result
	// may be off by up to a handful of ULPs for exponents far from
	// zero.
	PrecisionImprecise Precision = iota
	// PrecisionExact is correctly rounded (round-to-nearest-even),
	// backed by strconv.ParseFloat.
	PrecisionExact
	// PrecisionNone rejects every number token outright.
	PrecisionNone
)

// pow10Table holds one double per power of ten from 10^-308 to
// 10^+308, indexed as tab[exp+308].
var pow10Table = buildPow10Table()

func buildPow10Table() [617]float64 {
	var tab [617]float64
	for i := range tab {
		exp := i - 308
		tab[i] = math.Pow(10, float64(exp))
	}
	return tab
}

// pow10 returns 10^exp using the lookup table for the in-range case
// and falling back to math.Pow outside it.
func pow10(exp int) float64 {
	if exp >= -308 && exp <= 308 {
		return pow10Table[exp+308]
	}
	return math.Pow(10, float64(exp))
}

// decToFloatImprecise combines a decimal mantissa, exponent and sign
// into a float64 via a single pow10-table multiply: the "imprecise"
// precision mode.
func decToFloatImprecise(mantissa uint64, exp int, neg bool) float64 {
	f := float64(mantissa) * pow10(exp)
	if neg {
		return -f
	}
	return f
}

// NumberResult classifies a parsed number token three ways: it fits
// in an int64, it exceeds the signed range but fits uint64, or it
// must be a double (has a fraction, exponent, or overflowed the fast
// integer path).
type NumberResult struct {
	Kind   Kind // KindInt64, KindUint64 or KindDouble
	I64    int64
	U64    uint64
	F64    float64
}

// maxFastDigits is the number of leading integer digits the fast path
// can accumulate into a uint64 without any chance of overflow (a
// 16-digit value is below 10^16, far under 2^64 ≈ 1.8×10^19); each
// integer digit past it is checked for overflow before it is folded in.
const maxFastDigits = 16

// numberAccumulator performs digit-shifting accumulation: a fast loop
// for up to maxFastDigits integer digits, falling back to a mantissa +
// decimal-exponent-bias representation once that would overflow, a
// fraction, or an exponent is seen.
type numberAccumulator struct {
	neg        bool
	mantissa   uint64
	digits     int  // digits folded into mantissa so far
	decExp     int  // bias from digits dropped off the right during overflow
	sawFrac    bool
	sawExp     bool
	fracSign   bool // sign of the explicit exponent, if any
	explicitExp int
	overflowed bool // mantissa can no longer accept digits losslessly

	// rawDigits records every integer and fraction digit seen, verbatim
	// and without the maxFastDigits cap: once the fast mantissa
	// overflows, this is the only remaining source of full precision,
	// and PrecisionExact's correctly-rounded strconv.ParseFloat path
	// needs the complete decimal, not a mantissa truncated to 16 digits
	// and zero-padded back out.
	rawDigits     []byte
	rawFracDigits int
}

func newNumberAccumulator() *numberAccumulator {
	return &numberAccumulator{}
}

func (n *numberAccumulator) addIntDigit(d byte) {
	n.rawDigits = append(n.rawDigits, '0'+d)

	if n.overflowed {
		n.decExp++
		return
	}
	if n.digits >= maxFastDigits && n.mantissa > (math.MaxUint64-uint64(d))/10 {
		// The digit no longer fits in a uint64: transition to the
		// digit-shifting path, stop accepting into the mantissa, and
		// track how many digits we drop so the decimal exponent can
		// compensate.
		n.overflowed = true
		n.decExp++
		return
	}
	n.mantissa = n.mantissa*10 + uint64(d)
	n.digits++
}

func (n *numberAccumulator) addFracDigit(d byte) {
	n.sawFrac = true
	n.rawDigits = append(n.rawDigits, '0'+d)
	n.rawFracDigits++

	if n.overflowed || n.digits >= maxFastDigits {
		return
	}
	n.mantissa = n.mantissa*10 + uint64(d)
	n.digits++
	n.decExp--
}

// beginExponent marks that an explicit exponent ('e'/'E', optionally
// signed) was seen, before any of its digits are known.
func (n *numberAccumulator) beginExponent(neg bool) {
	n.sawExp = true
	n.fracSign = neg
}

// addExpDigit folds one more exponent digit in, saturating at
// maxExponentMagnitude so a pathologically long exponent ("e" followed
// by a thousand digits) can't overflow explicitExp itself.
func (n *numberAccumulator) addExpDigit(d byte) {
	if n.explicitExp > maxExponentMagnitude {
		return
	}
	n.explicitExp = n.explicitExp*10 + int(d)
}

// maxExponentMagnitude is the implementation limit on exponent
// magnitude: beyond it a number is rejected with exponent-overflow
// rather than silently saturating to 0 or Inf.
const maxExponentMagnitude = 1 << 17

// finish classifies the accumulated digits into int64, uint64 or
// double, honoring the requested Precision. ok is false when the
// token is invalid for that precision; kind then names why.
func (n *numberAccumulator) finish(prec Precision) (res NumberResult, kind ErrorKind, ok bool) {
	if prec == PrecisionNone {
		return NumberResult{}, KindExpectedNumber, false
	}

	totalExp := n.decExp
	if n.sawExp {
		if n.explicitExp > maxExponentMagnitude {
			return NumberResult{}, KindExponentOverflow, false
		}
		if n.fracSign {
			totalExp -= n.explicitExp
		} else {
			totalExp += n.explicitExp
		}
		if totalExp > maxExponentMagnitude || totalExp < -maxExponentMagnitude {
			return NumberResult{}, KindExponentOverflow, false
		}
	}

	needsDouble := n.sawFrac || n.sawExp || n.overflowed
	if !needsDouble {
		if !n.neg {
			if n.mantissa <= math.MaxInt64 {
				return NumberResult{Kind: KindInt64, I64: int64(n.mantissa)}, 0, true
			}
			return NumberResult{Kind: KindUint64, U64: n.mantissa}, 0, true
		}
		if n.mantissa <= 1<<63 {
			return NumberResult{Kind: KindInt64, I64: -int64(n.mantissa)}, 0, true
		}
		needsDouble = true
	}

	if prec == PrecisionImprecise {
		return NumberResult{Kind: KindDouble, F64: decToFloatImprecise(n.mantissa, totalExp, n.neg)}, 0, true
	}

	lit := n.literal(totalExp)
	if n.overflowed || len(n.rawDigits) > n.digits {
		lit = n.literalFromRaw()
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// Out of float64 range entirely; Go reports ±Inf via err in
		// some builds and a plain value in others, so prefer the
		// returned value when available.
		if nerr, ok := err.(*strconv.NumError); ok && nerr.Err == strconv.ErrRange {
			return NumberResult{Kind: KindDouble, F64: f}, 0, true
		}
		return NumberResult{}, KindExpectedNumber, false
	}
	return NumberResult{Kind: KindDouble, F64: f}, 0, true
}

// literal reconstructs a minimal "<mantissa>e<exp>" decimal literal
// for strconv.ParseFloat's correctly-rounded path.
func (n *numberAccumulator) literal(exp int) string {
	sign := ""
	if n.neg {
		sign = "-"
	}
	return sign + strconv.FormatUint(n.mantissa, 10) + "e" + strconv.Itoa(exp)
}

// literalFromRaw reconstructs "<all digits seen>e<exp>" from rawDigits,
// the full-precision fallback for numbers whose integer part overflowed
// the fast mantissa: unlike literal, it loses no digits regardless of
// how many were seen.
func (n *numberAccumulator) literalFromRaw() string {
	exp := -n.rawFracDigits
	if n.sawExp {
		if n.fracSign {
			exp -= n.explicitExp
		} else {
			exp += n.explicitExp
		}
	}

	sign := ""
	if n.neg {
		sign = "-"
	}
	return sign + string(n.rawDigits) + "e" + strconv.Itoa(exp)
}

// --- Emitting path ---

// radix100 is the base-100 two-digit-per-byte-pair lookup table used
// by appendUint100 (behind AppendInt and AppendUint) to peel off two
// decimal digits per iteration instead of one.
var radix100 = buildRadix100()

func buildRadix100() [200]byte {
	var tab [200]byte
	for i := 0; i < 100; i++ {
		tab[i*2] = byte('0' + i/10)
		tab[i*2+1] = byte('0' + i%10)
	}
	return tab
}

// AppendInt appends the shortest decimal representation of v (no
// leading zeros except a lone "0", leading "-" for negatives) to dst.
func AppendInt(dst []byte, v int64) []byte {
	if v < 0 {
		dst = append(dst, '-')
		if v == math.MinInt64 {
			return appendUint100(dst, uint64(math.MaxInt64)+1)
		}
		return appendUint100(dst, uint64(-v))
	}
	return appendUint100(dst, uint64(v))
}

// AppendUint appends the shortest decimal representation of v.
func AppendUint(dst []byte, v uint64) []byte {
	return appendUint100(dst, v)
}

func appendUint100(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, '0')
	}
	var buf [20]byte
	i := len(buf)
	for v >= 100 {
		q := v / 100
		r := v - q*100
		i -= 2
		buf[i] = radix100[r*2]
		buf[i+1] = radix100[r*2+1]
		v = q
	}
	if v < 10 {
		i--
		buf[i] = byte('0' + v)
	} else {
		i -= 2
		buf[i] = radix100[v*2]
		buf[i+1] = radix100[v*2+1]
	}
	return append(dst, buf[i:]...)
}

// FloatFormat selects the output shape for AppendFloat.
type FloatFormat int8

const (
	// FormatGeneral uses fixed notation unless the decimal exponent
	// falls outside ExponentBand, in which case it switches to
	// scientific notation.
	FormatGeneral FloatFormat = iota
	// FormatHex emits the IEEE mantissa and binary exponent, Go's
	// 'x' verb.
	FormatHex
)

// ExponentBand bounds, in decimal-exponent terms, the fixed/scientific
// switch-over for FormatGeneral: by default scientific notation is
// used below 1e-4 or at/above 1e21.
var ExponentBand = struct{ Low, High int }{Low: -4, High: 21}

// AppendFloat appends x in the requested format to dst. precision < 0
// requests the shortest round-trip representation; precision >= 0
// requests exactly that many digits after the decimal point (for
// FormatHex, after the hexadecimal point).
//
// -0.0 preserves its sign, and NaN/Inf are emitted as "nan"/"Infinity"
// (with a leading "-" for negative infinity) only when allowNonFinite
// is true; a caller that sets it false should reject non-finite values
// before calling AppendFloat (the parser-side mirror of this policy is
// Options.AllowNonFiniteNumbers).
func AppendFloat(dst []byte, x float64, format FloatFormat, precision int, allowNonFinite bool) []byte {
	if math.IsNaN(x) {
		if !allowNonFinite {
			return append(dst, "null"...)
		}
		return append(dst, "nan"...)
	}
	if math.IsInf(x, 0) {
		if !allowNonFinite {
			return append(dst, "null"...)
		}
		if x < 0 {
			dst = append(dst, '-')
		}
		return append(dst, "Infinity"...)
	}

	switch format {
	case FormatHex:
		return strconv.AppendFloat(dst, x, 'x', precision, 64)
	default:
		exp := decimalExponent(x)
		if exp < ExponentBand.Low || exp >= ExponentBand.High {
			return strconv.AppendFloat(dst, x, 'e', precision, 64)
		}
		return strconv.AppendFloat(dst, x, 'f', precision, 64)
	}
}

func decimalExponent(x float64) int {
	if x == 0 {
		return 0
	}
	return int(math.Floor(math.Log10(math.Abs(x))))
}
