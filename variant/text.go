package variant

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse decodes the GVariant text encoding of a value with the given
// signature. It accepts the encoding used for <default> elements in
// schema documents.
func Parse(sig, text string) (Value, error) {
	p := &parser{sig: sig, input: strings.TrimSpace(text)}

	v, err := p.value(sig)
	if err != nil {
		return Value{}, err
	}

	p.skipSpace()

	if p.pos != len(p.input) {
		return Value{}, p.errorf("trailing data %q", p.input[p.pos:])
	}

	return v, nil
}

// Text encodes the value in canonical GVariant text form. Parse(Text(v))
// round-trips for every supported signature.
func (v Value) Text() string {
	switch v.sig {
	case SigBool:
		return strconv.FormatBool(v.b)
	case SigInt32, SigInt64:
		return strconv.FormatInt(v.i, 10)
	case SigUint32, SigUint64:
		return strconv.FormatUint(v.u, 10)
	case SigDouble:
		return formatDouble(v.f)
	case SigString:
		return quote(v.s)
	case SigStrv:
		if len(v.sv) == 0 {
			return "[]"
		}

		quoted := make([]string, len(v.sv))
		for i, s := range v.sv {
			quoted[i] = quote(s)
		}

		return "[" + strings.Join(quoted, ", ") + "]"
	case SigIntPair:
		return fmt.Sprintf("(%d, %d)", v.pair.X, v.pair.Y)
	default:
		return ""
	}
}

// formatDouble renders a float so it still reads as a double, keeping a
// decimal point for integral values (GVariant text convention).
func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(f, 0) && !math.IsNaN(f) {
		s += ".0"
	}

	return s
}

func quote(s string) string {
	var sb strings.Builder

	sb.WriteByte('\'')

	for _, r := range s {
		switch r {
		case '\'', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}

	sb.WriteByte('\'')

	return sb.String()
}

// parser is a minimal recursive-descent reader over one text value.
type parser struct {
	sig   string
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("parse %q as %q: %s", p.input, p.sig, detail)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n') {
		p.pos++
	}
}

func (p *parser) value(sig string) (Value, error) {
	p.skipSpace()

	switch sig {
	case SigBool:
		return p.boolean()
	case SigInt32:
		n, err := p.signed(math.MinInt32, math.MaxInt32)
		return Value{sig: sig, i: n}, err
	case SigInt64:
		n, err := p.signed(math.MinInt64, math.MaxInt64)
		return Value{sig: sig, i: n}, err
	case SigUint32:
		n, err := p.unsigned(math.MaxUint32)
		return Value{sig: sig, u: n}, err
	case SigUint64:
		n, err := p.unsigned(math.MaxUint64)
		return Value{sig: sig, u: n}, err
	case SigDouble:
		return p.double()
	case SigString:
		s, err := p.quoted()
		return Value{sig: sig, s: s}, err
	case SigStrv:
		return p.strv()
	case SigIntPair:
		return p.intPair()
	default:
		return Value{}, p.errorf("unsupported signature")
	}
}

func (p *parser) boolean() (Value, error) {
	rest := p.input[p.pos:]

	switch {
	case strings.HasPrefix(rest, "true"):
		p.pos += len("true")
		return BoolValue(true), nil
	case strings.HasPrefix(rest, "false"):
		p.pos += len("false")
		return BoolValue(false), nil
	default:
		return Value{}, p.errorf("expected true or false")
	}
}

// number consumes a numeric token (sign, digits, optional fraction and
// exponent) without interpreting it.
func (p *parser) number() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E' || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}

		break
	}

	return p.input[start:p.pos]
}

func (p *parser) signed(min, max int64) (int64, error) {
	tok := p.number()

	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, p.errorf("invalid integer %q", tok)
	}

	if n < min || n > max {
		return 0, p.errorf("integer %d out of range", n)
	}

	return n, nil
}

func (p *parser) unsigned(max uint64) (uint64, error) {
	tok := p.number()

	n, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, p.errorf("invalid unsigned integer %q", tok)
	}

	if n > max {
		return 0, p.errorf("unsigned integer %d out of range", n)
	}

	return n, nil
}

func (p *parser) double() (Value, error) {
	tok := p.number()

	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return Value{}, p.errorf("invalid double %q", tok)
	}

	return DoubleValue(f), nil
}

func (p *parser) quoted() (string, error) {
	if p.pos >= len(p.input) {
		return "", p.errorf("expected string")
	}

	open := p.input[p.pos]
	if open != '\'' && open != '"' {
		return "", p.errorf("expected quoted string")
	}

	p.pos++

	var sb strings.Builder

	for p.pos < len(p.input) {
		c := p.input[p.pos]

		switch c {
		case open:
			p.pos++
			return sb.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.input) {
				return "", p.errorf("unterminated escape")
			}

			switch p.input[p.pos] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(p.input[p.pos])
			}

			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}

	return "", p.errorf("unterminated string")
}

func (p *parser) strv() (Value, error) {
	if err := p.expect('['); err != nil {
		return Value{}, err
	}

	var items []string

	p.skipSpace()

	if p.peek() == ']' {
		p.pos++
		return Value{sig: SigStrv}, nil
	}

	for {
		p.skipSpace()

		s, err := p.quoted()
		if err != nil {
			return Value{}, err
		}

		items = append(items, s)

		p.skipSpace()

		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return Value{sig: SigStrv, sv: items}, nil
		default:
			return Value{}, p.errorf("expected ',' or ']'")
		}
	}
}

func (p *parser) intPair() (Value, error) {
	if err := p.expect('('); err != nil {
		return Value{}, err
	}

	p.skipSpace()

	x, err := p.signed(math.MinInt32, math.MaxInt32)
	if err != nil {
		return Value{}, err
	}

	p.skipSpace()

	if err := p.expect(','); err != nil {
		return Value{}, err
	}

	p.skipSpace()

	y, err := p.signed(math.MinInt32, math.MaxInt32)
	if err != nil {
		return Value{}, err
	}

	p.skipSpace()

	if err := p.expect(')'); err != nil {
		return Value{}, err
	}

	return IntPairValue(int32(x), int32(y)), nil
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}

	return p.input[p.pos]
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q", string(c))
	}

	p.pos++

	return nil
}
