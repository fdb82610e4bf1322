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

// Package naming derives the labels stores are known by in logs and metrics.
package naming

import (
	"path"
	"reflect"
	"sync"

	"dirpx.dev/intern/apis"
)

var namerType = reflect.TypeFor[apis.Namer]()

// labelCache memoizes labels by type.
var labelCache sync.Map // key: reflect.Type, val: string

// Label returns the label for element type t.
//
// Resolution order:
//  1. If t (not *t) implements apis.Namer, the zero value's EntityName().
//  2. Named types with a package: "<last pkg path segment>.<Name>", keeping
//     instantiation parameters so G[int] and G[string] stay distinct.
//  3. Everything else (builtins, composite literals): t.String().
func Label(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if v, ok := labelCache.Load(t); ok {
		return v.(string)
	}
	name := byType(t)
	labelCache.Store(t, name)
	return name
}

func byType(t reflect.Type) string {
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer && t.Implements(namerType) {
		if n := reflect.Zero(t).Interface().(apis.Namer).EntityName(); n != "" {
			return n
		}
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return path.Base(t.PkgPath()) + "." + t.Name()
	}
	return t.String()
}
