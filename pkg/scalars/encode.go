// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package scalars

import (
	"bytes"
	"encoding/json"
)

// Marshal encodes v as compact JSON like json.Marshal, but leaves <, > and &
// unescaped so scripts and queries keep their text.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
