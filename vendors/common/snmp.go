// Package common holds SNMP value helpers shared by vendor packages.
package common

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// IndexedValues converts walk results keyed by OID suffix into values keyed
// by the integer index. Suffixes that are not a single integer are skipped.
func IndexedValues(results map[string]interface{}) map[int]interface{} {
	out := make(map[int]interface{}, len(results))
	for k, v := range results {
		idx, err := strconv.Atoi(strings.TrimPrefix(k, "."))
		if err != nil {
			continue
		}
		out[idx] = v
	}
	return out
}

// SortedIndexes returns the keys of m in ascending order.
func SortedIndexes(m map[int]interface{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// ParseIntSNMPValue extracts an int64 from various numeric types.
func ParseIntSNMPValue(value interface{}) (int64, bool) {
	if value == nil {
		return 0, false
	}

	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

// ParseStringSNMPValue extracts a string from SNMP result.
// Handles both string and []byte types.
func ParseStringSNMPValue(value interface{}) (string, bool) {
	if value == nil {
		return "", false
	}

	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

// FormatGPONSerial renders a GPON serial number the way the CLI prints it:
// four vendor letters followed by eight upper-case hex digits.
//
// Agents return either the raw 8-byte OctetString, a 16-digit hex string,
// or an already formatted value (sometimes as "ZTEG,C0A1B2C3").
func FormatGPONSerial(value interface{}) (string, error) {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return "", fmt.Errorf("unexpected serial type %T", value)
	}

	if len(raw) == 8 && isVendorID(raw[:4]) {
		return fmt.Sprintf("%s%X", raw[:4], raw[4:]), nil
	}

	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(string(raw)), ",", ""))
	switch {
	case len(s) == 12 && isVendorID([]byte(s[:4])) && isHex(s[4:]):
		return s, nil
	case len(s) == 16 && isHex(s):
		vendor := make([]byte, 4)
		for i := range vendor {
			b, _ := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
			vendor[i] = byte(b)
		}
		if isVendorID(vendor) {
			return string(vendor) + s[8:], nil
		}
	}
	return "", fmt.Errorf("cannot decode serial %q", raw)
}

func isVendorID(b []byte) bool {
	for _, c := range b {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return len(b) == 4
}

func isHex(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune("0123456789ABCDEF", c) {
			return false
		}
	}
	return s != ""
}
