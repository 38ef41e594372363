package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.English)

// pow10 returns 10^n for the small exponents a currency precision allows.
func pow10(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

// FormatMoneyDecimal converts an integer minor-unit amount to its exact,
// undecorated decimal representation at the currency's precision, e.g.
// -1234 at precision 2 becomes "-12.34". This is the numeric decomposition
// the ParseMoney round-trip guarantee is stated against.
func FormatMoneyDecimal(amount int64, cur Currency) string {
	scale := pow10(cur.Precision)
	abs := amount
	var b strings.Builder
	if amount < 0 {
		b.WriteByte('-')
		abs = -abs
	}
	b.WriteString(strconv.FormatInt(abs/scale, 10))
	if cur.Precision > 0 {
		b.WriteByte('.')
		b.WriteString(fmt.Sprintf("%0*d", cur.Precision, abs%scale))
	}
	return b.String()
}

// FormatMoney renders an integer minor-unit amount as localized currency
// text. Recognized ISO codes get their symbol and digit grouping; anything
// else (crypto-like codes, custom units) falls back to the plain decimal
// followed by the code, e.g. "12.34 BTC". Fraction digits always follow the
// currency's own precision, not the ISO default.
func FormatMoney(amount int64, cur Currency) string {
	unit, err := currency.ParseISO(cur.Code)
	if err != nil {
		return FormatMoneyDecimal(amount, cur) + " " + cur.Code
	}

	scale := pow10(cur.Precision)
	abs := amount
	sign := ""
	if amount < 0 {
		sign = "-"
		abs = -abs
	}

	symbol := moneyPrinter.Sprintf("%v", currency.Symbol(unit))
	grouped := moneyPrinter.Sprintf("%v", number.Decimal(abs/scale))
	if cur.Precision == 0 {
		return sign + symbol + grouped
	}
	return fmt.Sprintf("%s%s%s.%0*d", sign, symbol, grouped, cur.Precision, abs%scale)
}

// ParseMoney converts user-entered money text back to an integer minor-unit
// amount. Every character except digits, a single leading minus sign and
// one decimal point is stripped; the fractional part is truncated or padded
// to exactly the currency's precision. Fails with ErrNoDigits when nothing
// numeric survives.
func ParseMoney(text string, cur Currency) (int64, error) {
	var kept strings.Builder
	seenDigit, seenDot, seenMinus := false, false, false
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			kept.WriteRune(r)
			seenDigit = true
		case r == '.' && !seenDot:
			kept.WriteRune(r)
			seenDot = true
		case r == '-' && !seenMinus && !seenDigit && !seenDot:
			kept.WriteRune(r)
			seenMinus = true
		}
	}
	if !seenDigit {
		return 0, ErrNoDigits
	}

	s := kept.String()
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	if len(fracPart) > cur.Precision {
		fracPart = fracPart[:cur.Precision]
	}
	for len(fracPart) < cur.Precision {
		fracPart += "0"
	}

	units := int64(0)
	if intPart != "" {
		n, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return 0, WrapError(err, "PARSE_MONEY", "integer part out of range")
		}
		units = n
	}

	frac := int64(0)
	if fracPart != "" {
		n, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, WrapError(err, "PARSE_MONEY", "fractional part out of range")
		}
		frac = n
	}

	scale := pow10(cur.Precision)
	if units > (math.MaxInt64-frac)/scale {
		return 0, NewError("PARSE_MONEY", "amount out of range")
	}
	amount := units*scale + frac
	if negative {
		amount = -amount
	}
	return amount, nil
}
