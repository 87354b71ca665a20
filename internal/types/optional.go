package types

import (
	"bytes"

	"github.com/bytedance/sonic"
)

// NullableString 区分 "未传"、"传 null" 与 "传值" 三种情况，用于部分更新
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON 实现json.Unmarshaler接口
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// MarshalJSON 实现json.Marshaler接口
func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return sonic.Marshal(*n.Value)
}
