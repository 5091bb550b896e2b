package breach

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// record is one candidate line of a range response.
type record struct {
	suffix  string
	count   uint64
	counted bool
}

// parseRange parses a newline-delimited list of SUFFIX or SUFFIX:COUNT
// records. Blank lines and CR line endings are tolerated; any other
// deviation makes the whole body malformed.
func parseRange(body []byte) ([]record, error) {
	var records []record

	scanner := bufio.NewScanner(bytes.NewReader(body))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		suffix, countText, hasCount := strings.Cut(text, ":")
		if !isHexSuffix(suffix) {
			return nil, fmt.Errorf("line %d: invalid suffix", line)
		}

		rec := record{suffix: strings.ToUpper(suffix)}
		if hasCount {
			count, err := strconv.ParseUint(strings.TrimSpace(countText), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid count: %w", line, err)
			}
			rec.count = count
			rec.counted = true
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan range body: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("range body has no records")
	}

	return records, nil
}

func isHexSuffix(s string) bool {
	if len(s) != suffixLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'A' && c <= 'F', c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
