package types

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// DateTimeFormat 接口返回的时间格式
const DateTimeFormat = "2006-01-02 15:04:05"

// 请求中可接受的时间格式
var dateTimeLayouts = []string{DateTimeFormat, time.RFC3339Nano, "2006-01-02T15:04:05"}

// DateTime 按 DateTimeFormat 序列化的时间，零值输出 null
type DateTime time.Time

func (t DateTime) Time() time.Time { return time.Time(t) }

func (t DateTime) IsZero() bool { return t.Time().IsZero() }

func (t DateTime) String() string { return t.Time().Format(DateTimeFormat) }

func (t DateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	buf := make([]byte, 0, len(DateTimeFormat)+2)
	buf = append(buf, '"')
	buf = t.Time().AppendFormat(buf, DateTimeFormat)
	return append(buf, '"'), nil
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" || raw == `""` || raw == "" {
		*t = DateTime{}
		return nil
	}
	if s, err := strconv.Unquote(raw); err == nil {
		raw = s
	}
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			*t = DateTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("无法解析时间: %q", raw)
}

// ToDateTime 零值时间返回 nil
func ToDateTime(t *time.Time) *DateTime {
	if t == nil || t.IsZero() {
		return nil
	}
	dt := DateTime(*t)
	return &dt
}

// FromDeletedAt 未删除时返回 nil
func FromDeletedAt(d gorm.DeletedAt) *DateTime {
	if !d.Valid {
		return nil
	}
	return ToDateTime(&d.Time)
}
