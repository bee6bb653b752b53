// Package infer classifies a column's raw values into a semantic type.
// The rules run once at ingestion, first match wins:
//  1. all numeric after stripping "$" and "," → currency (if any "$") or number
//  2. all parseable as calendar dates → date
//  3. short values with low cardinality → tag
//  4. anything else → text
package infer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gaurav-prasanna/sheetpress/core"
)

// tag heuristic bounds: values shorter than maxTagLen with fewer distinct
// values than half the non-empty count render well as badges.
const maxTagLen = 20

// dateLayouts are tried in order for the date rule. The set is
// locale-independent: numeric forms plus English month names.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
}

// ColumnType infers the type of one column from the raw values found in it
// across all rows. Null-like and empty entries are ignored; a column with
// nothing left is text.
func ColumnType(values []string) core.ColumnType {
	nonEmpty := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}
	if len(nonEmpty) == 0 {
		return core.TypeText
	}

	if allNumeric(nonEmpty) {
		for _, v := range nonEmpty {
			if strings.Contains(v, "$") {
				return core.TypeCurrency
			}
		}
		return core.TypeNumber
	}

	if allDates(nonEmpty) {
		return core.TypeDate
	}

	if isTagLike(nonEmpty) {
		return core.TypeTag
	}

	return core.TypeText
}

func allNumeric(values []string) bool {
	for _, v := range values {
		stripped := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(v))
		if stripped == "" {
			return false
		}
		f, err := strconv.ParseFloat(stripped, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return false
		}
	}
	return true
}

func allDates(values []string) bool {
	for _, v := range values {
		if !parsesAsDate(strings.TrimSpace(v)) {
			return false
		}
	}
	return true
}

func parsesAsDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func isTagLike(values []string) bool {
	distinct := make(map[string]bool, len(values))
	for _, v := range values {
		if len(v) >= maxTagLen {
			return false
		}
		distinct[v] = true
	}
	return len(distinct)*2 < len(values)
}
