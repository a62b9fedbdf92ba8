// Package datamodel holds column types shared by the GORM repositories.
// Set- and map-valued fields from the document model are persisted as JSON
// text so the same definitions work on postgres and the sqlite test driver.
package datamodel

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Int64Set is an order-insensitive collection of user IDs with set-union
// append semantics.
type Int64Set []int64

func (s Int64Set) Contains(id int64) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id unless already present, mirroring the array-union
// primitive of the original backing store.
func (s Int64Set) Add(id int64) Int64Set {
	if s.Contains(id) {
		return s
	}
	return append(s, id)
}

// Remove drops id from the set if present.
func (s Int64Set) Remove(id int64) Int64Set {
	out := s[:0]
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ContainsAll reports whether every element of other is in s.
func (s Int64Set) ContainsAll(other Int64Set) bool {
	for _, v := range other {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

func (s Int64Set) Value() (driver.Value, error) {
	if s == nil {
		s = Int64Set{}
	}
	b, err := json.Marshal([]int64(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Int64Set) Scan(src interface{}) error {
	return scanJSON(src, (*[]int64)(s))
}

// StringSlice is a JSON-encoded list of strings.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(src interface{}) error {
	return scanJSON(src, (*[]string)(s))
}

// DecimalMap maps a user ID to a decimal share. JSON object keys are
// strings, so IDs are stringified on the way out and parsed on the way in.
type DecimalMap map[int64]decimal.Decimal

func (m DecimalMap) Value() (driver.Value, error) {
	raw := make(map[string]string, len(m))
	for id, d := range m {
		raw[strconv.FormatInt(id, 10)] = d.String()
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *DecimalMap) Scan(src interface{}) error {
	var raw map[string]string
	if err := scanJSON(src, &raw); err != nil {
		return err
	}
	out := make(DecimalMap, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return fmt.Errorf("decimal map key %q: %w", k, err)
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("decimal map value %q: %w", v, err)
		}
		out[id] = d
	}
	*m = out
	return nil
}

// IntMap maps a user ID to a small integer, used for menu ratings.
type IntMap map[int64]int

func (m IntMap) Value() (driver.Value, error) {
	raw := make(map[string]int, len(m))
	for id, v := range m {
		raw[strconv.FormatInt(id, 10)] = v
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *IntMap) Scan(src interface{}) error {
	var raw map[string]int
	if err := scanJSON(src, &raw); err != nil {
		return err
	}
	out := make(IntMap, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return fmt.Errorf("int map key %q: %w", k, err)
		}
		out[id] = v
	}
	*m = out
	return nil
}

// ReactionMap maps an emoji to the set of users who reacted with it.
type ReactionMap map[string]Int64Set

func (m ReactionMap) Value() (driver.Value, error) {
	if m == nil {
		m = ReactionMap{}
	}
	b, err := json.Marshal(map[string]Int64Set(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *ReactionMap) Scan(src interface{}) error {
	return scanJSON(src, (*map[string]Int64Set)(m))
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
