package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit convention for size suffixes. This follows the key-value store's
// own grammar: bare suffixes are decimal, b-suffixed ones are binary.
// The split is deliberate and load-bearing; "64mb" must come out as
// 67108864, not 64000000.
var byteUnits = map[string]int64{
	"k":  1e3,
	"kb": 1 << 10,
	"m":  1e6,
	"mb": 1 << 20,
	"g":  1e9,
	"gb": 1 << 30,
}

// ParseByteSize converts a size value with an optional unit suffix into a
// byte count. Plain integers are accepted as-is, suffixes are matched
// case-insensitively. Negative sizes and unknown suffixes are errors.
func ParseByteSize(raw string) (int64, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	// Split into the leading numeric part and the trailing suffix.
	i := len(s)
	for i > 0 && (s[i-1] < '0' || s[i-1] > '9') {
		i--
	}
	num, suffix := s[:i], s[i:]

	if num == "" {
		return 0, fmt.Errorf("byte size %q has no numeric part", raw)
	}

	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("byte size %q: %w", raw, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("byte size %q is negative", raw)
	}

	if suffix == "" {
		return n, nil
	}

	mult, ok := byteUnits[suffix]
	if !ok {
		return 0, fmt.Errorf("byte size %q has unknown unit suffix %q", raw, suffix)
	}

	if n > math.MaxInt64/mult {
		return 0, fmt.Errorf("byte size %q exceeds the 64-bit range", raw)
	}
	return n * mult, nil
}
