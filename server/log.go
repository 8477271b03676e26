// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// AppendLog appends one CSV row of fields to filename, creating it if needed.
func AppendLog(filename string, fields []interface{}) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(formatFields(fields)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// formatFields formats floats with 2 decimals and anything else with fmt.
func formatFields(fields []interface{}) []string {
	record := make([]string, len(fields))
	for i, field := range fields {
		switch v := field.(type) {
		case float32:
			record[i] = strconv.FormatFloat(float64(v), 'f', 2, 32)
		case float64:
			record[i] = strconv.FormatFloat(v, 'f', 2, 64)
		default:
			record[i] = fmt.Sprint(v)
		}
	}
	return record
}
