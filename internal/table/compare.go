package table

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Order is the direction of a sort.
type Order int

// Sort orders. Descending is the zero value and the CLI default.
const (
	Descending Order = iota
	Ascending
)

func (o Order) String() string {
	switch o {
	case Descending:
		return "descending"
	case Ascending:
		return "ascending"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder parses "ascending" or "descending".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "descending":
		return Descending, nil
	case "ascending":
		return Ascending, nil
	default:
		return 0, fmt.Errorf("invalid sort order %q (expected ascending or descending)", s)
	}
}

// Method selects how two cells are compared.
type Method int

// Comparison methods. Numerical is the zero value and the CLI default.
const (
	Numerical Method = iota
	Alphabetical
)

func (m Method) String() string {
	switch m {
	case Numerical:
		return "numerical"
	case Alphabetical:
		return "alphabetical"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod parses "numerical" or "alphabetical".
func ParseMethod(s string) (Method, error) {
	switch s {
	case "numerical":
		return Numerical, nil
	case "alphabetical":
		return Alphabetical, nil
	default:
		return 0, fmt.Errorf("invalid sort method %q (expected numerical or alphabetical)", s)
	}
}

var errNaN = errors.New("NaN is not orderable")

// ParseNumber parses a cell as a float64 for numerical comparison.
//
// Plain decimal notation with an optional sign and exponent is accepted, as are
// "inf" and "infinity". Hexadecimal floats, digit separators and NaN are rejected.
// Values beyond the float64 range saturate to ±Inf.
func ParseNumber(s string) (float64, error) {
	if strings.ContainsAny(s, "xX_") {
		return 0, &ValueParseError{Value: s, Err: strconv.ErrSyntax}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &ValueParseError{Value: s, Err: strconv.ErrSyntax}
	}
	if math.IsNaN(f) {
		return 0, &ValueParseError{Value: s, Err: errNaN}
	}
	return f, nil
}

// Compare reports whether a precedes b under the given order and method.
// Equal values never precede each other, in either direction.
func Compare(a, b string, order Order, method Method) (bool, error) {
	switch method {
	case Numerical:
		x, err := ParseNumber(a)
		if err != nil {
			return false, err
		}
		y, err := ParseNumber(b)
		if err != nil {
			return false, err
		}
		return precedes(x, y, order), nil
	case Alphabetical:
		return precedes(a, b, order), nil
	default:
		return false, fmt.Errorf("unknown sort method %v", method)
	}
}

func precedes[T cmp.Ordered](a, b T, order Order) bool {
	if order == Descending {
		return a > b
	}
	return a < b
}

// compareKeys turns the precedes predicate into a three-way comparison
// for the slices sort functions.
func compareKeys[T cmp.Ordered](a, b T, order Order) int {
	switch {
	case precedes(a, b, order):
		return -1
	case precedes(b, a, order):
		return 1
	default:
		return 0
	}
}
