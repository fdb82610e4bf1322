/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package intern

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/vmihailenco/msgpack/v5"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encoding writes the canonical value; decoding interns the decoded value in
// the process-wide pool. A handle that already holds a value releases it
// before taking the decoded one. Handles filled by a decoder carry no
// runtime cleanup unless they had one before, so release them explicitly.

// MarshalJSON encodes the canonical value.
func (h *Handle[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Value())
}

// UnmarshalJSON decodes a T and interns it.
func (h *Handle[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	h.assign(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler (gopkg.in/yaml.v2).
func (h *Handle[T]) MarshalYAML() (interface{}, error) {
	return h.Value(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler (gopkg.in/yaml.v2).
func (h *Handle[T]) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v T
	if err := unmarshal(&v); err != nil {
		return err
	}
	h.assign(v)
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (h *Handle[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(h.Value())
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (h *Handle[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	var v T
	if err := dec.Decode(&v); err != nil {
		return err
	}
	h.assign(v)
	return nil
}

// assign points h at the canonical copy of v in the process-wide pool.
func (h *Handle[T]) assign(v T) {
	tracked := h.tracked
	h.Release()

	cfg := std.cfg.Load()
	s := storeFor[T](std, cfg)
	h.owner = s.GetOrInsert(v)
	h.store = s
	h.tracked = false
	h.released.Store(false)
	if tracked {
		h.track()
	}
}

var (
	_ msgpack.CustomEncoder = (*Handle[string])(nil)
	_ msgpack.CustomDecoder = (*Handle[string])(nil)
)
