// Package records loads bulk provisioning input: a CSV of units and a
// parameter file describing where and how to provision them.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/CaioVieiraF/olt-access/types"
)

// ONURecord is one row of the units CSV.
type ONURecord struct {
	Serial        string
	PPPoEUser     string
	PPPoEPassword string
	Model         string
}

const (
	colSerial = iota
	colUser
	colPassword
	colModel
)

var headerAliases = map[string]int{
	"sn":             colSerial,
	"serial":         colSerial,
	"pppoe_user":     colUser,
	"pppoe_password": colPassword,
	"model":          colModel,
	"type":           colModel,
}

// LoadONURecords reads a CSV whose header names the columns sn (or serial),
// pppoe_user, pppoe_password and model, in any order. Only sn is required.
// Any malformed row fails the whole load.
func LoadONURecords(r io.Reader) ([]ONURecord, error) {
	const op = "load onu records"

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, types.Errorf(types.KindSerialize, op, "empty file")
	}
	if err != nil {
		return nil, classify(op, err)
	}

	columns := map[int]int{}
	seen := map[int]bool{}
	for i, name := range header {
		col, ok := headerAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if seen[col] {
			return nil, types.Errorf(types.KindSerialize, op, "duplicate column %q", name)
		}
		seen[col] = true
		columns[i] = col
	}
	if !seen[colSerial] {
		return nil, types.Errorf(types.KindSerialize, op, "missing sn column")
	}

	var out []ONURecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, classify(op, err)
		}
		line, _ := reader.FieldPos(0)

		var fields [4]string
		for i, v := range row {
			if col, ok := columns[i]; ok {
				fields[col] = strings.TrimSpace(v)
			}
		}
		if fields[colSerial] == "" {
			return nil, types.Errorf(types.KindSerialize, op, "line %d: empty sn", line)
		}
		if (fields[colUser] == "") != (fields[colPassword] == "") {
			return nil, types.Errorf(types.KindSerialize, op, "line %d: pppoe_user and pppoe_password must be set together", line)
		}
		out = append(out, ONURecord{
			Serial:        fields[colSerial],
			PPPoEUser:     fields[colUser],
			PPPoEPassword: fields[colPassword],
			Model:         fields[colModel],
		})
	}
	return out, nil
}

func classify(op string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return types.Wrap(types.KindSerialize, op, err)
	}
	return types.Wrap(types.KindIO, op, fmt.Errorf("read: %w", err))
}
